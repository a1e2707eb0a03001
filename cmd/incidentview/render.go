package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/sznuper/incidentview/internal/runner"
)

var errRenderFailed = errors.New("render failed")

var renderCmd = &cobra.Command{
	Use:   "render [source]",
	Short: "Render a snapshot once",
	Long: "Renders the node card and details for a snapshot source (file://, exec:// or - for stdin). " +
		"Without an argument the configured options.snapshot is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := setupLogger(cfg.Options.LogLevel)

		tmpl, _ := cmd.Flags().GetString("template")
		if tmpl == "" {
			tmpl = cfg.Template
		}

		uri := cfg.Options.Snapshot
		if len(args) == 1 {
			uri = args[0]
		}

		r := runner.New(cfg, logger)
		res := r.RunSource(cmd.Context(), uri, tmpl)

		p := newPrinter(os.Stdout, cfg.Options.Format, useColor(os.Stdout, cfg.Options.Color))
		if err := p.Print(res); err != nil {
			return err
		}
		if res.Err != nil {
			cmd.SilenceErrors = true
			return errRenderFailed
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("template", "", "output template (overrides the config template)")
	rootCmd.AddCommand(renderCmd)
}
