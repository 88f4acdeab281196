package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

func newRemoveCmd() *cobra.Command {
	var output string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "remove <domain|time|use|request> <name> <file>",
		Short: "Remove a profile and its dependent requests, or a request",
		Long: `Remove deletes a domain, time or usage profile by name together with every
request that uses it, or deletes STASH requests. A request is named either by
its section, e.g. namelist:streq(00236_ab12cd34), or by <section>:<item>,
which removes every request for that STASH code.

The result is written back to <file> unless --output names another file.`,
		Example: `  stashconf remove time T6H rose-app.conf
  stashconf remove request 3:236 rose-app.conf --dry-run`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseKind(args[0])
			if err != nil {
				return usageError{fmt.Errorf("unknown record kind %q (valid: domain, time, use, request)", args[0])}
			}
			name, path := args[1], args[2]

			m, raw, err := loadModel(path)
			if err != nil {
				return err
			}
			before := len(m.Requests())
			if err := removeRecord(m, kind, name); err != nil {
				return err
			}
			logger.Info("removed",
				"kind", kind,
				"name", name,
				"requests", before-len(m.Requests()))

			if dryRun {
				diff, err := unifiedDiff(filepath.Base(path), raw, m.Bytes())
				if err != nil {
					return fmt.Errorf("diff: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			}

			dest := path
			if output != "" {
				dest = output
			}
			if err := m.WriteFile(dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s and %d request(s); wrote %s\n",
				kind, name, before-len(m.Requests()), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a unified diff instead of writing")
	return cmd
}

func removeRecord(m *roseconf.Model, kind types.Kind, name string) error {
	if kind != types.KindRequest {
		return m.Remove(kind, name)
	}
	if strings.HasPrefix(name, types.KindRequest.Prefix()) {
		return m.RemoveRequest(name)
	}
	section, item, err := parseStashCode(name)
	if err != nil {
		return err
	}
	return m.RemoveRequests(section, item)
}

// parseStashCode parses "<section>:<item>".
func parseStashCode(s string) (section, item int, err error) {
	sec, it, ok := strings.Cut(s, ":")
	if ok {
		section, err = strconv.Atoi(strings.TrimSpace(sec))
	}
	if ok && err == nil {
		item, err = strconv.Atoi(strings.TrimSpace(it))
	}
	if !ok || err != nil {
		return 0, 0, usageError{fmt.Errorf("invalid request %q (expected <section>:<item> or a namelist:streq section)", s)}
	}
	return section, item, nil
}
