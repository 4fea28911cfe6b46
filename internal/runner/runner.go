// Package runner executes opaque shell command lines and captures what they
// print. Profile commands may contain pipelines and substitutions, so they
// always go through the system shell rather than argv splitting.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pkgherald/pkgherald/internal/logging"
)

// MaxOutputSize caps captured stdout/stderr per command.
const MaxOutputSize = 1024 * 1024 // 1MB

// Output is what a finished command produced. A non-zero ExitCode is a
// normal outcome here; several package managers exit non-zero on success.
type Output struct {
	Stdout   string
	ExitCode int
}

// Runner runs one shell command line and captures its standard output.
// Implementations return an error only when the command could not be run to
// completion at all; callers interpret exit codes themselves.
type Runner interface {
	Run(ctx context.Context, command string) (Output, error)
}

// CommandError describes a command that could not be run to completion.
type CommandError struct {
	Cmd        string
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q could not be run", e.Cmd)
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// ShellRunner executes commands through /bin/sh.
type ShellRunner struct {
	// Shell overrides the interpreter, mainly for tests.
	Shell string
}

// New returns a ShellRunner using the default shell.
func New() *ShellRunner {
	return &ShellRunner{}
}

// Run executes command under the shell, capturing stdout regardless of how
// the command exits. The command's stderr is kept only for error reporting.
func (r *ShellRunner) Run(ctx context.Context, command string) (Output, error) {
	shell := r.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: MaxOutputSize}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: MaxOutputSize}

	err := cmd.Run()

	if ctx.Err() != nil {
		return Output{}, &CommandError{Cmd: command, ExitCode: -1, Stderr: stderr.String(), Underlying: ctx.Err()}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			logging.L("runner").Debugw("command exited non-zero", "command", command, "exitCode", code)
			return Output{Stdout: stdout.String(), ExitCode: code}, nil
		}
		return Output{}, &CommandError{Cmd: command, ExitCode: -1, Stderr: stderr.String(), Underlying: err}
	}

	return Output{Stdout: stdout.String(), ExitCode: 0}, nil
}

// limitedWriter wraps a buffer with a size limit.
type limitedWriter struct {
	buf     *bytes.Buffer
	limit   int
	written int
}

func (w *limitedWriter) Write(p []byte) (n int, err error) {
	if w.written >= w.limit {
		// Discard additional data but don't error
		return len(p), nil
	}

	remaining := w.limit - w.written
	if len(p) > remaining {
		p = p[:remaining]
	}

	n, err = w.buf.Write(p)
	w.written += n
	return len(p), err // Return original length to avoid short write errors
}
