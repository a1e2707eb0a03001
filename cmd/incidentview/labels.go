package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sznuper/incidentview/internal/incidents"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the ServiceNow label tables in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		set := incidents.DefaultLabels().WithOverrides(cfg.Labels.State, cfg.Labels.Urgency, cfg.Labels.Impact)

		w := cmd.OutOrStdout()
		for _, group := range []struct {
			name  string
			table incidents.LabelTable
		}{
			{"state", set.State},
			{"urgency", set.Urgency},
			{"impact", set.Impact},
		} {
			fmt.Fprintf(w, "%s:\n", group.name)
			for _, code := range group.table.Codes() {
				fmt.Fprintf(w, "  %s\t%s\n", code, group.table.Lookup(code))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}
