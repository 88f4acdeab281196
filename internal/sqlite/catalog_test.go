package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
	"github.com/mesh-intelligence/stashconf/pkg/types"
)

const conf = `meta=um-atmos/vn10.5

[namelist:domain(D1)]
dom_name='D1'
!!levb=1

[namelist:domain(D2)]
dom_name='D2'

[namelist:time(T1)]
tim_name='T1'

[namelist:use(U1)]
use_name='U1'

[namelist:streq(a)]
dom_name='D1'
isec=3
item=236
tim_name='T1'
use_name='U1'

[namelist:streq(b)]
dom_name='D2'
isec=0
item=2
tim_name='T1'
use_name='U1'

[namelist:streq(c)]
dom_name='D1'
isec=3
item=245
tim_name='T1'
use_name='U1'
`

func parseModel(t *testing.T) *roseconf.Model {
	t.Helper()
	m, err := roseconf.Parse(strings.NewReader(conf))
	require.NoError(t, err)
	return m
}

func TestCatalogAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog", "stash.db")
	c, err := Open(path, nil)
	require.NoError(t, err)
	defer c.Close()

	id, err := c.Add(parseModel(t), "rose-app.conf")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	for kind, want := range map[types.Kind]int{
		types.KindRequest: 3,
		types.KindDomain:  2,
		types.KindTime:    1,
		types.KindUse:     1,
	} {
		n, err := c.CountSections(id, kind)
		require.NoError(t, err)
		assert.Equal(t, want, n, kind.String())
	}

	deps, err := c.Dependents(id, types.KindDomain, "D1")
	require.NoError(t, err)
	assert.Equal(t, []string{"namelist:streq(a)", "namelist:streq(c)"}, deps)

	deps, err = c.Dependents(id, types.KindTime, "T1")
	require.NoError(t, err)
	assert.Len(t, deps, 3)

	_, err = c.Dependents(id, types.KindUse, "UX")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCatalogDisabledFieldState(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "stash.db"), nil)
	require.NoError(t, err)
	defer c.Close()

	id, err := c.Add(parseModel(t), "rose-app.conf")
	require.NoError(t, err)

	var state, value string
	err = c.db.QueryRow(
		"SELECT state, value FROM fields WHERE snapshot_id = ? AND section = ? AND key = ?",
		id, "namelist:domain(D1)", "levb",
	).Scan(&state, &value)
	require.NoError(t, err)
	assert.Equal(t, "disabled", state)
	assert.Equal(t, "1", value)
}

func TestCatalogSnapshotsAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash.db")

	m := parseModel(t)
	first, err := Export(path, m, "before.conf", nil)
	require.NoError(t, err)

	require.NoError(t, m.RemoveDomain("D1"))
	second, err := Export(path, m, "after.conf", nil)
	require.NoError(t, err)

	c, err := Open(path, nil)
	require.NoError(t, err)
	defer c.Close()

	snaps, err := c.Snapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, first, snaps[0].ID)
	assert.Equal(t, second, snaps[1].ID)
	assert.Equal(t, "after.conf", snaps[1].Source)
	assert.Equal(t, "um-atmos", snaps[1].Module)

	n, err := c.CountSections(second, types.KindRequest)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCatalogCloseIdempotent(t *testing.T) {
	c, err := Open(filepath.Join(t.TempDir(), "stash.db"), nil)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
