// Package cli implements the stashconf command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/logging"
	"github.com/mesh-intelligence/stashconf/internal/paths"
	"github.com/mesh-intelligence/stashconf/pkg/stashconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	dataDir     string
	jsonMode    bool
	stashMaster string
	logLevel    string
}

var flags rootFlags

// settings and logger are loaded by the root command before any
// subcommand runs.
var (
	settings = types.DefaultSettings()
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// NewRootCmd creates the top-level "stashconf" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:   "stashconf",
		Short: "Inspect and edit UM STASH diagnostics configurations",
		Long: `stashconf reads a Rose app configuration holding STASH requests and their
domain, time and usage profiles, checks that every request resolves, and
removes profiles or requests while keeping the file consistent.`,
		Version:           stashconf.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.stashconf)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stashconf-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.stashMaster, "stashmaster", "", "STASHmaster_A file used to name requests")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "stashconf:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads settings and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	s, err := loadSettings(configDir, cmd.Root())
	if err != nil {
		return err
	}
	cfg, err := logging.FromSettings(s, cmd.ErrOrStderr())
	if err != nil {
		return usageError{err}
	}

	settings = s
	logger = logging.New(cfg).With("cmd", cmd.Name())
	logger.Debug("settings loaded", "config_dir", configDir, "stashmaster", s.StashMaster)
	return nil
}

// resolveConfigDir returns the configuration directory following the
// --config-dir > STASHCONF_CONFIG_DIR > default precedence.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// resolveDataDir returns the data directory following the
// --data-dir > config.yaml data_dir > STASHCONF_DATA_DIR > default precedence.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flags.dataDir, settings.DataDir)
}

// usageError marks an error caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// userErrors are the failures a user fixes by editing input or arguments.
var userErrors = []error{
	types.ErrMalformedHeader,
	types.ErrMalformedSection,
	types.ErrUnknownSectionKind,
	types.ErrDuplicateName,
	types.ErrMissingKey,
	types.ErrInvalidIndex,
	types.ErrUnresolvedReference,
	types.ErrNoDisplayName,
	types.ErrMalformedEntry,
	types.ErrUnknownKey,
	types.ErrNotFound,
	types.ErrLogLevelUnknown,
	types.ErrLogFormatUnknown,
	os.ErrNotExist,
}

// exitCode maps an error to exitUserError or exitSysError.
func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
