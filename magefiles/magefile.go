//go:build mage

// Package main provides build targets for rolodex using Mage.
//
// Usage:
//
//	mage build          Compile the rolodex binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests that need no external services
//	mage test:backends  Run the kv contract tests, including postgres and redis when configured
//	mage test:golden    Regenerate golden export files
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install rolodex to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "rolodex"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rolodex"
	modulePath = "github.com/mesh-intelligence/rolodex"
)

// ldflags stamps the version from $ROLODEX_VERSION, or the git description.
func ldflags() string {
	version := os.Getenv("ROLODEX_VERSION")
	if version == "" {
		out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
		if err != nil || out == "" {
			out = "dev"
		}
		version = out
	}
	return "-X " + modulePath + "/internal/cli.Version=" + version
}

// Build compiles the rolodex binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
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
