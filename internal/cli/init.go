package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/paths"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: `Create the configuration directory with a default config.yaml, and the
data directory that holds catalog exports. Existing files are left alone.`,
		Args: exactArgs(0),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if flags.configDir == "" && os.Getenv(paths.EnvConfigDir) == "" {
		// init creates the project-local directory rather than the platform one.
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		configDir = filepath.Join(cwd, paths.DefaultConfigDirName)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, settings)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger.Info("initialized", "config", configPath, "written", written, "data", dataDir)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "stashconf initialized")
	fmt.Fprintln(out, "  config:", configPath)
	fmt.Fprintln(out, "  data:  ", dataDir)
	return nil
}
