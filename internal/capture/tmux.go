package capture

import (
	"context"
	"fmt"

	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/environ"
	"github.com/tara-vision/what/internal/shell"
)

const tmuxBinary = "tmux"

// DefaultSnapshotLines is the scrollback depth read when looking for the
// last commands
const DefaultSnapshotLines = 500

// PromptSource yields the literal prompt string of the active shell
type PromptSource interface {
	Detect(ctx context.Context) (string, error)
}

// Terminal reads scrollback from the tmux pane the process runs in
type Terminal struct {
	env    environ.Env
	runner shell.Runner
}

// NewTerminal creates a Terminal bound to env
func NewTerminal(env environ.Env, runner shell.Runner) *Terminal {
	return &Terminal{env: env, runner: runner}
}

// Snapshot returns the trailing count lines of the current pane, oldest
// first. Blank lines are kept; they separate command output.
func (t *Terminal) Snapshot(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("line count must be positive, got %d", count)
	}
	if err := t.env.RequireTmux(); err != nil {
		return nil, err
	}

	res, err := t.runner.Run(ctx, t.env.WorkDir, tmuxBinary,
		"capture-pane", "-T", "-p", "-S", fmt.Sprintf("-%d", count))
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, shell.ExitError(tmuxBinary, res)
	}

	lines := shell.Lines(res.Stdout)
	pslog.Ctx(ctx).Debug("pane captured", "requested", count, "lines", len(lines))
	return lines, nil
}

// Lines captures count raw lines from the pane
func (t *Terminal) Lines(ctx context.Context, count int) (*Capture, error) {
	lines, err := t.Snapshot(ctx, count)
	if err != nil {
		return nil, err
	}
	return &Capture{Source: SourceLines, Lines: lines}, nil
}

// Last captures the output of the commands most recent commands found in
// a snapshot of depth lines, excluding the invocation of this tool
func (t *Terminal) Last(ctx context.Context, prompts PromptSource, commands, depth int) (*Capture, error) {
	prompt, err := prompts.Detect(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := t.Snapshot(ctx, depth)
	if err != nil {
		return nil, err
	}

	seg := Segment(snapshot, prompt, commands)
	if seg.Partial() {
		pslog.Ctx(ctx).Debug("fewer commands in scrollback than requested",
			"requested", commands, "found", len(seg.Blocks))
	}
	return &Capture{Source: SourceLast, Lines: seg.Lines(), Partial: seg.Partial()}, nil
}
