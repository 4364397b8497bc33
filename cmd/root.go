package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/environ"
	"github.com/tara-vision/what/internal/shell"
	"github.com/tara-vision/what/internal/ui"
)

// Version is set at build time
var Version = "dev"

// App carries the process capabilities shared by every subcommand
type App struct {
	Env    environ.Env
	Runner shell.Runner
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
	TTY    bool // stdout is attached to a terminal

	// Confirm asks the user to approve the captured text
	Confirm func(label string) (bool, error)
}

// DefaultApp returns an App bound to the running process
func DefaultApp() *App {
	return &App{
		Env:    environ.FromOS(),
		Runner: shell.NewExecRunner(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		TTY:    ui.IsTerminal(os.Stdout),
		Confirm: func(label string) (bool, error) {
			return ui.Confirm(label, os.Stdin, os.Stdout)
		},
	}
}

type options struct {
	configPath string
	model      string
	quiet      bool
	yes        bool
	attach     string
	noSpinner  bool
	timeout    time.Duration
	verbose    bool
}

// Execute runs the root command against the process environment
func Execute(ctx context.Context) error {
	return NewRootCmd(DefaultApp()).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree around app
func NewRootCmd(app *App) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "what",
		Version: Version,
		Short:   "Diagnose what went wrong in your terminal",
		Long: `what captures recent terminal output from the current tmux pane, or from a
command it runs, and asks a chat-completion model to explain the failure.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)
			if opts.verbose {
				logger = pslog.NewWithOptions(app.Stderr, pslog.Options{
					Mode:     pslog.ModeConsole,
					MinLevel: pslog.DebugLevel,
				})
			}
			logger = logger.With("run", uuid.NewString())
			cmd.SetContext(pslog.ContextWithLogger(ctx, logger))
			return nil
		},
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.what.config.json)")
	flags.StringVar(&opts.model, "model", "", "model used for the diagnosis (default gpt-3.5-turbo)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "don't display captured output (won't ask for confirmation)")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "don't ask for confirmation")
	flags.StringVarP(&opts.attach, "attach", "a", "", "attach extra message to the sent data")
	flags.BoolVar(&opts.noSpinner, "no-spinner", false, "disable spinner animations")
	flags.DurationVar(&opts.timeout, "timeout", 0, "bound each phase of the run (0 waits indefinitely)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs to stderr")

	p := &pipeline{app: app, opts: opts}
	root.AddCommand(newLastCmd(p))
	root.AddCommand(newLinesCmd(p))
	root.AddCommand(newExecCmd(p))
	root.AddCommand(newModelsCmd(p))
	root.AddCommand(newVersionCmd())

	return root
}
