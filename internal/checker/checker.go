// Package checker runs a distribution profile's commands and classifies the
// outcome. It owns the two-phase flow: an optional metadata pre-check, then
// the update check itself.
package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgherald/pkgherald/internal/distro"
	"github.com/pkgherald/pkgherald/internal/logging"
	"github.com/pkgherald/pkgherald/internal/runner"
)

// Result is the classified outcome of an update check.
type Result struct {
	// Lines holds one entry per pending update, verbatim from the check
	// command's output.
	Lines []string
	Count int
	Found bool
}

// PreCheckError indicates the metadata refresh failed, so the update check
// never ran.
type PreCheckError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *PreCheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pre-check %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("pre-check %q failed with exit status %d", e.Command, e.ExitCode)
}

func (e *PreCheckError) Unwrap() error {
	return e.Err
}

// UpdateCheckError indicates the update check command could not be run.
type UpdateCheckError struct {
	Command string
	Err     error
}

func (e *UpdateCheckError) Error() string {
	return fmt.Sprintf("update check %q failed: %v", e.Command, e.Err)
}

func (e *UpdateCheckError) Unwrap() error {
	return e.Err
}

// Engine executes profiles against a command runner.
type Engine struct {
	runner runner.Runner
}

// New returns an Engine using the given runner.
func New(r runner.Runner) *Engine {
	return &Engine{runner: r}
}

// Check runs the profile's pre-check (when it has one) and then its update
// check, returning the classified result.
//
// Pre-check exit statuses 0 and 100 both count as success; dnf exits 100
// whenever updates exist, which is exactly the situation this tool reports
// on. Any other status aborts before the update check runs.
//
// The update check's output is captured whatever its exit status; only a
// command that cannot run at all is an error.
func (e *Engine) Check(ctx context.Context, profile distro.Profile) (Result, error) {
	log := logging.L("checker")

	if profile.PreCheck != "" {
		out, err := e.runner.Run(ctx, profile.PreCheck)
		if err != nil {
			return Result{}, &PreCheckError{Command: profile.PreCheck, ExitCode: -1, Err: err}
		}
		if out.ExitCode != 0 && out.ExitCode != 100 {
			return Result{}, &PreCheckError{Command: profile.PreCheck, ExitCode: out.ExitCode}
		}
		log.Debugw("pre-check done", "family", profile.Family, "exitCode", out.ExitCode)
	}

	out, err := e.runner.Run(ctx, profile.Check)
	if err != nil {
		return Result{}, &UpdateCheckError{Command: profile.Check, Err: err}
	}

	result := classify(out.Stdout)
	log.Debugw("update check done", "family", profile.Family, "exitCode", out.ExitCode, "updates", result.Count)
	return result, nil
}

// classify splits captured output into update lines. Output that is empty
// after trailing newlines are stripped means the system is up to date.
func classify(stdout string) Result {
	trimmed := strings.TrimRight(stdout, "\n")
	if trimmed == "" {
		return Result{}
	}

	lines := strings.Split(trimmed, "\n")
	return Result{Lines: lines, Count: len(lines), Found: true}
}
