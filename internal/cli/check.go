package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/report"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and link a configuration and print record counts",
		Long: `Check parses a rose-app.conf, links every request to its domain, time and
usage profiles and, when a STASHmaster file is configured, resolves every
request's STASH name. Any failure is reported and the command exits non-zero.`,
		Args: exactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	m, _, err := loadModel(args[0])
	if err != nil {
		return err
	}
	if err := m.Verify(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	summary := report.Summarize(m)
	if flags.jsonMode {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
