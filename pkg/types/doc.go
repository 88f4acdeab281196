// Package types defines the record model for STASH configuration files:
// record kinds, their declared key tables, tagged field states, CLI
// settings, and the standard error values shared by the parser, the
// mutation operations and the command-line tool.
package types
