package main

import (
	"context"
	"fmt"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/tara-vision/what/cmd"
	"github.com/tara-vision/what/internal/ui"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	defer ui.SaveState(os.Stdin)()
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("panic error occurred"))
			panic(r)
		}
	}()

	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.InfoLevel}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	if err := cmd.Execute(ctx); err != nil {
		pslog.Ctx(ctx).Debug("command failed", "err", err)
		fmt.Fprintln(os.Stderr, ui.NewRenderer(os.Stderr).ErrorMessage(err))
		return 1
	}
	return 0
}
