// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"depot-cli/pkg/types"

	"mvdan.cc/sh/v3/shell"
)

type (
	// ProcessRunner is the external package-manager capability. Install runs
	// the install command with target (a registry specifier, rewritten VCS
	// URL, or staged file path) as its sole extra argument.
	ProcessRunner interface {
		Install(ctx context.Context, target string) *RunResult
	}

	// RunResult captures one package-manager invocation.
	RunResult struct {
		ExitCode types.ExitCode
		Stdout   string
		Stderr   string
		// Err is set when the process could not be run at all (e.g., the
		// binary is missing); it is nil for an ordinary non-zero exit.
		Err error
	}

	// ExecRunner runs the install command via os/exec with captured output
	// streams. The command is non-interactive: no stdin, no PTY.
	ExecRunner struct {
		argv []string
	}
)

// NewExecRunner builds an ExecRunner from the configured installer command
// string (e.g., "npm install"). The string is split into argv with shell
// field rules, so quoted arguments survive intact.
func NewExecRunner(installerCommand string) (*ExecRunner, error) {
	argv, err := shell.Fields(installerCommand, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid installer command %q: %w", installerCommand, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("installer command must not be empty")
	}
	return &ExecRunner{argv: argv}, nil
}

// Available returns whether the installer binary can be resolved on PATH.
func (r *ExecRunner) Available() bool {
	_, err := exec.LookPath(r.argv[0])
	return err == nil
}

// Install runs the install command against target and captures its output.
func (r *ExecRunner) Install(ctx context.Context, target string) *RunResult {
	args := append(append([]string{}, r.argv[1:]...), target)
	cmd := exec.CommandContext(ctx, r.argv[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Err = err
		}
	}

	return result
}
