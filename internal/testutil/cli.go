// Package testutil holds helpers shared by tests.
package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"
)

// ExecResult holds the result of a CLI command execution.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCLI executes the scenefilter binary with the given arguments and
// returns the result. The binary must be built before running tests (use
// make build). It inherits the test's environment, so t.Setenv applies.
func RunCLI(tb testing.TB, args ...string) ExecResult {
	tb.Helper()

	binary, err := findBinary()
	if err != nil {
		tb.Fatalf("scenefilter binary not found - run 'make build' first")
	}

	cmd := exec.Command(binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	exitCode := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		tb.Fatalf("failed to run scenefilter: %v", err)
	}

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// findBinary looks in the project root, either from there or from a
// cmd/<name> test directory two levels down.
func findBinary() (string, error) {
	var lastErr error
	for _, candidate := range []string{"./scenefilter", "../../scenefilter"} {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		lastErr = err
		if err == nil {
			lastErr = errors.New(candidate + " is a directory")
		}
	}
	return "", lastErr
}
