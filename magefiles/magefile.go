//go:build mage

// Package main provides build targets for the stashconf project using Mage.
//
// Usage:
//
//	mage build      Compile stashconf binary to bin/
//	mage test       Run all unit tests
//	mage cover      Run tests with a coverage profile in bin/
//	mage lint       Run golangci-lint
//	mage smoke      Build, then check and report every testdata/*.conf
//	mage clean      Remove build artifacts
//	mage install    Install stashconf to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "stashconf"
	binaryDir  = "bin"
	cmdDir     = "./cmd/stashconf"
)

// Build compiles the stashconf binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests and writes a coverage profile to bin/cover.out.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "cover.out")
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Smoke builds the binary and runs check and report over the sample
// configurations in testdata/.
func Smoke() error {
	mg.Deps(Build)
	confs, err := filepath.Glob(filepath.Join("testdata", "*.conf"))
	if err != nil {
		return err
	}
	if len(confs) == 0 {
		return fmt.Errorf("no sample configurations in testdata/")
	}
	bin := filepath.Join(binaryDir, binaryName)
	for _, conf := range confs {
		if err := sh.RunV(bin, "check", conf); err != nil {
			return fmt.Errorf("check %s: %w", conf, err)
		}
		if err := sh.RunV(bin, "report", conf); err != nil {
			return fmt.Errorf("report %s: %w", conf, err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
