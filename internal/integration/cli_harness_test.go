//go:build e2e

// cli_harness_test.go provides a test harness for E2E testing of the burndown CLI.
//
// The CLIHarness builds the burndown binary and provides methods for executing
// CLI commands in an isolated test workspace with proper environment setup.
package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thruflo/burndown/internal/testutil"
)

// CLIHarness manages a burndown CLI binary for E2E testing.
// It builds the binary and provides methods to execute commands
// in an isolated workspace with controlled environment variables.
type CLIHarness struct {
	// BinaryPath is the path to the built burndown binary.
	BinaryPath string

	// WorkDir is the working directory where commands will be executed.
	// It starts out holding .burndown/config.yaml from testutil.SetupTestDir.
	WorkDir string

	// EnvVars contains environment variables to set for command execution.
	// These are merged with the test's default environment.
	EnvVars map[string]string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the burndown binary and creates a test workspace.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := testutil.FindProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	binaryPath := filepath.Join(t.TempDir(), "burndown")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/burndown")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build burndown binary: %s", output)

	return &CLIHarness{
		BinaryPath: binaryPath,
		WorkDir:    testutil.SetupTestDir(t),
		EnvVars:    make(map[string]string),
		t:          t,
	}
}

// SetEnv sets an environment variable for subsequent command executions.
func (h *CLIHarness) SetEnv(key, value string) {
	h.EnvVars[key] = value
}

// Run executes a burndown command with default timeout (30 seconds).
// Returns stdout, stderr, and error.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	return h.RunWithTimeout(30*time.Second, args...)
}

// RunWithTimeout executes a burndown command with the specified timeout.
// The command is executed in the workspace directory with the configured
// environment variables.
func (h *CLIHarness) RunWithTimeout(timeout time.Duration, args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return h.RunWithContext(ctx, args...)
}

// RunWithContext executes a burndown command with the given context.
// This provides full control over cancellation and deadlines.
func (h *CLIHarness) RunWithContext(ctx context.Context, args ...string) *CLIResult {
	h.t.Helper()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.WorkDir

	// Set up environment
	cmd.Env = h.buildEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CLIResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		result.Err = err
		// Try to get exit code
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result
}

// buildEnv creates the environment variable slice for command execution:
// the current process environment plus the configured custom variables.
func (h *CLIHarness) buildEnv() []string {
	env := os.Environ()
	for k, v := range h.EnvVars {
		env = append(env, k+"="+v)
	}
	return env
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msgAndArgs ...interface{}) {
	h.t.Helper()
	if !result.Success() {
		msg := "command failed"
		if len(msgAndArgs) > 0 {
			if s, ok := msgAndArgs[0].(string); ok {
				msg = s
			}
		}
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command result indicates success.
func (h *CLIHarness) RequireFailure(result *CLIResult, msgAndArgs ...interface{}) {
	h.t.Helper()
	if result.Success() {
		msg := "expected command to fail"
		if len(msgAndArgs) > 0 {
			if s, ok := msgAndArgs[0].(string); ok {
				msg = s
			}
		}
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}
