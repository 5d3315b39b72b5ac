// Package main provides build targets for the compass project using Mage.
//
// Usage:
//
//	mage build     Compile compass binary to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install compass to GOPATH/bin
//	mage version   Regenerate pkg/compass/version.go

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "compass"
	binaryDir   = "bin"
	cmdDir      = "./cmd/compass"
	versionFile = "pkg/compass/version.go"
)

// Build compiles the compass binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Version regenerates pkg/compass/version.go from the latest git tag,
// falling back to 0.1.0 when no tag exists.
func Version() error {
	version, err := sh.Output("git", "describe", "--tags", "--abbrev=0")
	if err != nil || version == "" {
		version = "0.1.0"
	}
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")

	content := fmt.Sprintf("package compass\n\nconst Version = %q\n", version)
	if err := os.WriteFile(versionFile, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Println("wrote", versionFile, "version", version)
	return nil
}
