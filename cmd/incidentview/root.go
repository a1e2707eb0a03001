package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sznuper/incidentview/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "incidentview",
	Short: "Render ServiceNow get incidents node snapshots",
	Long: "incidentview maps execution snapshots of a ServiceNow get incidents workflow node " +
		"to the card, status badge and details panel a canvas would show, and prints them.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	registerOptionFlags(rootCmd)
}

// loadConfig resolves the config file, overlays option flags and validates
// the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOptionFlags(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
