package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tara-vision/what/internal/provider"
	"github.com/tara-vision/what/internal/ui"
)

func newModelsCmd(p *pipeline) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models available for diagnosis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !remote {
				for _, m := range provider.KnownModels() {
					marker := " "
					if m == provider.DefaultModel {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %-16s %s\n", marker, m, ui.Subtle.Render(m.DisplayName()))
				}
				return nil
			}

			prov, err := p.provider()
			if err != nil {
				return err
			}
			ctx, cancel := p.phase(cmd.Context())
			defer cancel()
			models, err := ui.Track(ctx, p.renderer().Spinner(), ui.Messages{
				Progress: "fetching models",
		Success:  "models fetched",
				Failure:  "couldn't fetch models",
			}, prov.ListModels)
			if err != nil {
				return err
			}
			for _, id := range models {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "query the configured endpoint instead of listing known models")
	return cmd
}
