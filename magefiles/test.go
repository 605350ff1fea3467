//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Environment variables that enable the service-backed kv tests.
const (
	envPostgresDSN = "ROLODEX_TEST_POSTGRES_DSN"
	envRedisAddr   = "ROLODEX_TEST_REDIS_ADDR"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests that need no external services.
func (Test) Unit() error {
	env := map[string]string{envPostgresDSN: "", envRedisAddr: ""}
	return sh.RunWithV(env, binGo, "test", "./...")
}

// Backends runs the kv contract tests. Postgres and redis run only when their
// variables are set.
func (Test) Backends() error {
	for _, name := range []string{envPostgresDSN, envRedisAddr} {
		if os.Getenv(name) == "" {
			fmt.Printf("%s not set, skipping that backend\n", name)
		}
	}
	return sh.RunV(binGo, "test", "-v", "-run", "Contract", "./internal/kv/...")
}

// Golden rewrites the export golden files from the current output.
func (Test) Golden() error {
	return sh.RunV(binGo, "test", "./internal/store/...", "-run", "Export", "-update")
}
