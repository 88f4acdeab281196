package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>",
		Short: "List the STASH requests of a configuration",
		Long: `Report prints one row per STASH request with its section and item numbers,
its STASH name when a STASHmaster file is configured, and the names of its
domain, time and usage profiles.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel(args[0])
			if err != nil {
				return err
			}
			rows := report.Rows(m)
			if flags.jsonMode {
				return report.WriteJSON(cmd.OutOrStdout(), rows)
			}
			return report.WriteTable(cmd.OutOrStdout(), rows)
		},
	}
}
