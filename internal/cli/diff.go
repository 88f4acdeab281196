package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file>",
		Short: "Show how stashconf would rewrite a configuration",
		Long: `Diff prints a unified diff between <file> and the way stashconf writes the
same configuration: quotes dropped, comments removed, one blank line after
each section. Nothing is printed when the file is already canonical.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, raw, err := loadModel(args[0])
			if err != nil {
				return err
			}
			diff, err := unifiedDiff(filepath.Base(args[0]), raw, m.Bytes())
			if err != nil {
				return fmt.Errorf("diff: %w", err)
			}
			if diff == "" {
				logger.Info("already canonical", "file", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}
