// Package stashconf holds release metadata for the stashconf module.
package stashconf

// Version is the stashconf release version.
const Version = "0.1.0"
