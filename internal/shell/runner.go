package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result holds the captured output of a finished subprocess
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status 0
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner spawns subprocesses. A non-zero exit is reported through
// Result.ExitCode; only spawn failures are returned as errors.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ProcessError is returned when a subprocess could not be spawned or
// exited with a non-zero status
type ProcessError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("couldn't spawn process `%s`: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("process `%s` exited with error status code %d", e.Command, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExitError builds the ProcessError for a finished process with a bad status
func ExitError(command string, res Result) *ProcessError {
	return &ProcessError{Command: command, ExitCode: res.ExitCode}
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real processes
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir and captures stdout and stderr
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, &ProcessError{Command: name, Err: err}
	}
	return res, nil
}

// Lines splits subprocess output on line feeds, keeping blank lines. A
// single trailing newline does not produce an extra empty line.
func Lines(out []byte) []string {
	text := strings.TrimSuffix(string(out), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
