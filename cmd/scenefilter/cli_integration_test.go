//go:build integration

package main

import (
	"strings"
	"testing"

	"github.com/ivoronin/scenefilter/internal/testutil"
)

// Binary-level tests of exit codes and output streams.
// Run with: make build && go test -tags=integration ./cmd/scenefilter

func TestCLIExitCodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name         string
		args         []string
		wantExitCode int
		wantStdout   string
		wantStderr   string
	}{
		{
			name:         "eval clean",
			args:         []string{"eval", roomScene},
			wantExitCode: ExitSuccess,
			wantStdout:   "NODE",
		},
		{
			name:         "eval fail on filtered",
			args:         []string{"eval", "--fail-on-filtered", "--active", "Lights", roomScene},
			wantExitCode: ExitFiltered,
			wantStdout:   "filtered",
		},
		{
			name:         "unknown filter",
			args:         []string{"rules", "Nope"},
			wantExitCode: ExitInputError,
			wantStderr:   "not found",
		},
		{
			name:         "missing scene file",
			args:         []string{"eval", "testdata/missing.yaml"},
			wantExitCode: ExitInputError,
			wantStderr:   "Error:",
		},
		{
			name:         "version",
			args:         []string{"version", "-j"},
			wantExitCode: ExitSuccess,
			wantStdout:   `"version":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, tt.args...)

			if result.ExitCode != tt.wantExitCode {
				t.Errorf("exit code = %d, want %d\nstderr: %s", result.ExitCode, tt.wantExitCode, result.Stderr)
			}
			if !strings.Contains(result.Stdout, tt.wantStdout) {
				t.Errorf("stdout should contain %q, got:\n%s", tt.wantStdout, result.Stdout)
			}
			if !strings.Contains(result.Stderr, tt.wantStderr) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantStderr, result.Stderr)
			}
		})
	}
}

func TestCLIFilteredExitIsSilent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	result := testutil.RunCLI(t, "eval", "--fail-on-filtered", "--active", "Caulk", roomScene)
	if result.ExitCode != ExitFiltered {
		t.Fatalf("exit code = %d, want %d", result.ExitCode, ExitFiltered)
	}
	if strings.Contains(result.Stderr, "Error:") {
		t.Errorf("filtered nodes should not be reported as an error, got:\n%s", result.Stderr)
	}
}
