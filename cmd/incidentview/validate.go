package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sznuper/incidentview/internal/view"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the incidentview configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Template != "" {
			if _, err := view.Parse(cfg.Template, view.TemplateData{}); err != nil {
				return fmt.Errorf("template: %w", err)
			}
		}
		for name, t := range cfg.Triggers {
			for _, s := range []string{t.Title, t.Subtitle} {
				if _, err := view.Parse(s, view.TemplateData{}); err != nil {
					return fmt.Errorf("triggers.%s: %w", name, err)
				}
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "config ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
