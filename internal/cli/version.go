package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/pkg/stashconf"
)

const modulePath = "github.com/mesh-intelligence/stashconf"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stashconf version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stashconf v%s\nmodule: %s\n", stashconf.Version, modulePath)
			return nil
		},
	}
}
