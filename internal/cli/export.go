package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/sqlite"
)

// Export formats.
const (
	formatSQLite = "sqlite"
	formatJSONL  = "jsonl"
)

// catalogFileName is the default SQLite catalog under the data directory.
const catalogFileName = "catalog.db"

func newExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a linked configuration to a SQLite catalog or JSONL",
		Long: `Export writes the records and links of a configuration either as a new
snapshot in a SQLite catalog (default <data-dir>/catalog.db) or as one JSON
object per section (default <data-dir>/<file>.jsonl).`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if format != formatSQLite && format != formatJSONL {
				return usageError{fmt.Errorf("unknown format %q (valid: sqlite, jsonl)", format)}
			}

			m, _, err := loadModel(src)
			if err != nil {
				return err
			}

			dest := output
			if dest == "" {
				dataDir, err := resolveDataDir()
				if err != nil {
					return fmt.Errorf("resolve data dir: %w", err)
				}
				dest = filepath.Join(dataDir, catalogFileName)
				if format == formatJSONL {
					base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
					dest = filepath.Join(dataDir, base+".jsonl")
				}
			}

			if format == formatJSONL {
				if err := sqlite.ExportJSONL(dest, m); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dest)
				return nil
			}

			abs, err := filepath.Abs(src)
			if err != nil {
				return err
			}
			id, err := sqlite.Export(dest, m, abs, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatSQLite, "export format (sqlite, jsonl)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	return cmd
}
