package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tara-vision/what/internal/capture"
	"github.com/tara-vision/what/internal/shell"
)

// parseCount parses a strictly positive count argument
func parseCount(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, arg)
	}
	return n, nil
}

func newLastCmd(p *pipeline) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "last COUNT",
		Short: "Capture the output of the last COUNT commands",
		Long: `Capture the output of the last COUNT commands in the current tmux pane.
Commands are found by matching the shell prompt; the prompt is replaced
by ">>> " in the text sent for diagnosis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args[0], "command count")
			if err != nil {
				return err
			}
			if depth <= 0 {
				return fmt.Errorf("--lines must be positive, got %d", depth)
			}
			term := capture.NewTerminal(p.app.Env, p.app.Runner)
			prompts := shell.NewPromptDetector(p.app.Env, p.app.Runner)
			return p.run(cmd.Context(), func(ctx context.Context) (*capture.Capture, error) {
				return term.Last(ctx, prompts, count, depth)
			})
		},
	}
	cmd.Flags().IntVarP(&depth, "lines", "l", capture.DefaultSnapshotLines, "how many lines to read to find those commands")
	return cmd
}

func newLinesCmd(p *pipeline) *cobra.Command {
	return &cobra.Command{
		Use:   "lines COUNT",
		Short: "Capture the last COUNT lines of the current tmux pane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args[0], "line count")
			if err != nil {
				return err
			}
			term := capture.NewTerminal(p.app.Env, p.app.Runner)
			return p.run(cmd.Context(), func(ctx context.Context) (*capture.Capture, error) {
				return term.Lines(ctx, count)
			})
		},
	}
}

// commandArgv accepts either separate arguments or one quoted command line
func commandArgv(args []string) []string {
	if len(args) == 1 {
		return strings.Fields(args[0])
	}
	return args
}

func newExecCmd(p *pipeline) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "exec [--force] -- COMMAND [ARGS...]",
		Aliases: []string{"execute"},
		Short:   "Run a command and capture its output when it fails",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := commandArgv(args)
			return p.run(cmd.Context(), func(ctx context.Context) (*capture.Capture, error) {
				return capture.Command(ctx, p.app.Runner, p.app.Env.WorkDir, argv, force)
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "continue even if the process didn't exit with an error status")
	return cmd
}
