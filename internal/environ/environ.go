// Package environ captures the process environment the tool depends on
// into a single value built once at startup.
package environ

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Variable names read from the process environment
const (
	VarShell       = "SHELL"
	VarHome        = "HOME"
	VarTmux        = "TMUX"
	VarToken       = "WHAT_TOKEN"
	VarOpenAIToken = "OPENAI_TOKEN"
	VarBaseURL     = "WHAT_BASE_URL"
	VarModel       = "WHAT_MODEL"
)

// ErrMissing is matched by every MissingError
var ErrMissing = errors.New("missing environment")

// MissingError reports an absent variable or execution context
type MissingError struct {
	Name   string
	Reason string
}

func (e *MissingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("environment variable `%s` is not set", e.Name)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Env is the environment capability handed to each component
type Env struct {
	Shell   string // absolute path of the interactive shell
	Home    string
	Tmux    string // multiplexer session marker, empty outside tmux
	WorkDir string
	Token   string // credential supplied through the environment, if any
	BaseURL string
	Model   string
}

// FromOS reads the environment of the running process
func FromOS() Env {
	wd, _ := os.Getwd()
	token := os.Getenv(VarToken)
	if token == "" {
		token = os.Getenv(VarOpenAIToken)
	}
	return Env{
		Shell:   os.Getenv(VarShell),
		Home:    os.Getenv(VarHome),
		Tmux:    os.Getenv(VarTmux),
		WorkDir: wd,
		Token:   token,
		BaseURL: os.Getenv(VarBaseURL),
		Model:   os.Getenv(VarModel),
	}
}

// FromMap builds an Env from explicit values, used by tests
func FromMap(vars map[string]string, workDir string) Env {
	token := vars[VarToken]
	if token == "" {
		token = vars[VarOpenAIToken]
	}
	return Env{
		Shell:   vars[VarShell],
		Home:    vars[VarHome],
		Tmux:    vars[VarTmux],
		WorkDir: workDir,
		Token:   token,
		BaseURL: vars[VarBaseURL],
		Model:   vars[VarModel],
	}
}

// ShellName returns the basename of the configured shell
func (e Env) ShellName() (string, error) {
	if e.Shell == "" {
		return "", &MissingError{Name: VarShell, Reason: "couldn't get the current shell"}
	}
	return filepath.Base(e.Shell), nil
}

// RequireTmux fails unless the process runs inside a tmux session
func (e Env) RequireTmux() error {
	if e.Tmux == "" {
		return &MissingError{Name: VarTmux, Reason: "process must run inside TMUX"}
	}
	return nil
}

// HomeDir returns the home directory or a MissingError
func (e Env) HomeDir() (string, error) {
	if e.Home == "" {
		return "", &MissingError{Name: VarHome}
	}
	return e.Home, nil
}

// Dir returns the working directory subprocesses should start in
func (e Env) Dir() (string, error) {
	if e.WorkDir == "" {
		return "", &MissingError{Name: "working directory", Reason: "couldn't get the current working directory"}
	}
	return e.WorkDir, nil
}
