package capture

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/shell"
)

// ErrCommandSucceeded is returned when a command meant for diagnosis
// exited cleanly and the caller did not force the capture
var ErrCommandSucceeded = errors.New("didn't exit with error status code, aborting")

// Command runs argv in dir and captures its stdout followed by its stderr
func Command(ctx context.Context, runner shell.Runner, dir string, argv []string, force bool) (*Capture, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	res, err := runner.Run(ctx, dir, argv[0], argv[1:]...)
	if err != nil {
		return nil, err
	}
	pslog.Ctx(ctx).Debug("command finished", "command", argv[0], "exit_code", res.ExitCode)

	if !force && res.Success() {
		return nil, fmt.Errorf("process `%s` %w", argv[0], ErrCommandSucceeded)
	}

	lines := append(shell.Lines(res.Stdout), shell.Lines(res.Stderr)...)
	return &Capture{Source: SourceCommand, Lines: lines}, nil
}
