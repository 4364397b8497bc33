package cmd

import (
	"context"
	"fmt"

	"pkt.systems/pslog"

	"github.com/tara-vision/what/internal/capture"
	"github.com/tara-vision/what/internal/config"
	"github.com/tara-vision/what/internal/diagnose"
	"github.com/tara-vision/what/internal/provider"
	"github.com/tara-vision/what/internal/ui"
)

const confirmLabel = "confirm output"

// captureFunc produces the text to diagnose
type captureFunc func(ctx context.Context) (*capture.Capture, error)

// pipeline runs capture, preview, confirmation and diagnosis in order
type pipeline struct {
	app  *App
	opts *options
}

func (p *pipeline) renderer() *ui.Renderer {
	return ui.NewRendererWithConfig(p.app.Stdout, &ui.Config{
		EnableSpinner:  p.app.TTY && !p.opts.noSpinner,
		EnableMarkdown: p.app.TTY,
	})
}

// phase bounds a single supervised phase by the configured timeout
func (p *pipeline) phase(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.timeout > 0 {
		return context.WithTimeout(ctx, p.opts.timeout)
	}
	return context.WithCancel(ctx)
}

// provider builds the endpoint from config, with --model taking precedence
func (p *pipeline) provider() (*provider.Provider, error) {
	cfg, err := config.Load(p.opts.configPath, p.app.Env)
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if p.opts.model != "" {
		model = p.opts.model
	}
	return provider.New(cfg.BaseURL, cfg.Token, provider.Model(model)), nil
}

func (p *pipeline) run(ctx context.Context, source captureFunc) error {
	log := pslog.Ctx(ctx)

	prov, err := p.provider()
	if err != nil {
		return err
	}

	r := p.renderer()

	captureCtx, cancel := p.phase(ctx)
	capt, err := ui.Track(captureCtx, r.Spinner(), ui.Messages{
		Progress: "capturing terminal output",
		Success:  "terminal captured",
		Failure:  "capture failed",
	}, source)
	cancel()
	if err != nil {
		return err
	}
	if err := capt.Validate(); err != nil {
		return err
	}
	log.Debug("captured", "source", capt.Source, "lines", len(capt.Lines), "partial", capt.Partial)

	if !p.opts.quiet {
		r.Preview(capt.Lines)
		if capt.Partial {
			fmt.Fprintln(p.app.Stdout, r.WarningMessage("fewer commands in scrollback than requested"))
		}
		if !p.opts.yes {
			ok, err := p.app.Confirm(confirmLabel)
			if err != nil {
				return fmt.Errorf("couldn't read confirmation: %w", err)
			}
			if !ok {
				fmt.Fprintln(p.app.Stdout, ui.ErrorStyle.Render("aborting..."))
				return nil
			}
			fmt.Fprintln(p.app.Stdout, r.SuccessMessage("output confirmed"))
		}
	}

	client := diagnose.NewClient(prov)
	req := diagnose.Request{Output: capt.String(), Note: p.opts.attach}

	diagCtx, cancel := p.phase(ctx)
	defer cancel()
	stream, err := ui.Track(diagCtx, r.Spinner(), ui.Messages{
		Progress: fmt.Sprintf("asking %s", prov.Info().Model.DisplayName()),
		Success:  "connected",
		Failure:  "diagnosis failed",
	}, func(ctx context.Context) (*diagnose.Stream, error) {
		return client.Open(ctx, req)
	})
	if err != nil {
		return err
	}
	if err := stream.Render(r.AnswerWriter()); err != nil {
		fmt.Fprintln(p.app.Stdout)
		return err
	}
	fmt.Fprintln(p.app.Stdout)
	return nil
}
