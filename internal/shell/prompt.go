// Package shell runs subprocesses and probes the user's interactive shell.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/environ"
)

// ErrEmptyPrompt is returned when the shell printed nothing usable
var ErrEmptyPrompt = errors.New("couldn't get last line in terminal prompt output")

// UnsupportedShellError names a shell whose prompt cannot be probed
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell to get prompt from `%s`", e.Shell)
}

// promptArgs returns the one-shot interactive invocation that echoes the
// expanded prompt for the given shell family
func promptArgs(name string) ([]string, bool) {
	switch name {
	case "zsh":
		return []string{"-i", "-c", "print -P $PS1"}, true
	case "bash", "sh":
		return []string{"-i", "-c", `echo -e "${PS1@P}"`}, true
	default:
		return nil, false
	}
}

// PromptDetector derives the literal prompt string of the active shell
type PromptDetector struct {
	env    environ.Env
	runner Runner
}

// NewPromptDetector creates a detector for the shell configured in env
func NewPromptDetector(env environ.Env, runner Runner) *PromptDetector {
	return &PromptDetector{env: env, runner: runner}
}

// Detect spawns the shell interactively in the working directory and
// returns its first rendered prompt with styling removed. The directory
// matters since prompts often embed things like the current git branch.
func (d *PromptDetector) Detect(ctx context.Context) (string, error) {
	name, err := d.env.ShellName()
	if err != nil {
		return "", err
	}
	args, ok := promptArgs(name)
	if !ok {
		return "", &UnsupportedShellError{Shell: d.env.Shell}
	}
	dir, err := d.env.Dir()
	if err != nil {
		return "", err
	}

	res, err := d.runner.Run(ctx, dir, d.env.Shell, args...)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", ExitError(d.env.Shell, res)
	}

	prompt := cleanPrompt(lastLine(string(res.Stdout)))
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	pslog.Ctx(ctx).Debug("shell prompt detected", "shell", name, "prompt", prompt)
	return prompt, nil
}

// lastLine picks the final non-empty line; interactive shells may print a
// banner before the prompt
func lastLine(out string) string {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSuffix(lines[i], "\r")
		if line != "" {
			return line
		}
	}
	return ""
}

// cleanPrompt strips escape sequences so the prompt compares byte-for-byte
// with captured pane text. bash wraps non-printing spans in \x01 \x02.
func cleanPrompt(raw string) string {
	stripped := ansi.Strip(raw)
	return strings.Map(func(r rune) rune {
		if r == '\x01' || r == '\x02' {
			return -1
		}
		return r
	}, stripped)
}
