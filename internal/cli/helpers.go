package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/internal/stashmaster"
)

// loadModel reads and parses a rose-app.conf file. When a STASHmaster file
// is configured every request is annotated with its STASH name. The raw
// file contents are returned alongside the model for diffing.
func loadModel(path string) (*roseconf.Model, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := roseconf.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("parsed",
		"file", path,
		"requests", len(m.Requests()),
		"domains", len(m.Domains()),
		"times", len(m.Times()),
		"uses", len(m.Uses()))

	if settings.StashMaster != "" {
		table, err := stashmaster.Load(settings.StashMaster)
		if err != nil {
			return nil, nil, err
		}
		if err := m.Annotate(table); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("annotated", "stashmaster", settings.StashMaster, "entries", table.Len())
	}
	return m, raw, nil
}

// unifiedDiff returns a unified diff from before to after, or "" when the
// two are identical.
func unifiedDiff(name string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}
