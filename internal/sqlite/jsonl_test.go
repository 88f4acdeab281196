package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSections(t *testing.T, path string) []sectionJSON {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []sectionJSON
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var s sectionJSON
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &s))
		out = append(out, s)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestExportJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "stash.jsonl")

	require.NoError(t, ExportJSONL(path, parseModel(t)))

	sections := readSections(t, path)
	require.Len(t, sections, 7)

	d1 := sections[0]
	assert.Equal(t, "namelist:domain(D1)", d1.Section)
	assert.Equal(t, "domain", d1.Kind)
	assert.Equal(t, "D1", d1.Name)
	assert.Equal(t, []fieldJSON{
		{Key: "dom_name", Value: "D1"},
		{Key: "levb", Value: "1", Disabled: true},
	}, d1.Fields)
	assert.Equal(t, []string{"namelist:streq(a)", "namelist:streq(c)"}, d1.Requests)
	assert.Nil(t, d1.Links)

	a := sections[4]
	assert.Equal(t, "request", a.Kind)
	require.NotNil(t, a.Links)
	assert.Equal(t, linksJSON{Domain: "namelist:domain(D1)", Time: "namelist:time(T1)", Use: "namelist:use(U1)"}, *a.Links)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
