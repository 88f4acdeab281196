package roseconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

func TestRemoveDomainCascades(t *testing.T) {
	m := mustParse(t, sharedConf)

	require.NoError(t, m.RemoveDomain("D1"))
	require.NoError(t, m.Verify())

	_, ok := m.Domain("D1")
	assert.False(t, ok)
	assert.Equal(t, []string{"namelist:domain(D2)"}, ids(m.Domains()))

	// a and c pointed at D1.
	assert.Equal(t, []string{"namelist:streq(b)"}, ids(m.Requests()))
	assert.Equal(t, []string{"namelist:streq(b)"}, ids(m.RequestsFor(3, 236)))
	assert.Empty(t, m.RequestsFor(0, 2))
	assert.Equal(t, []int{3}, m.IndexSections())

	t1, _ := m.Time("T1")
	t2, _ := m.Time("T2")
	u1, _ := m.Use("U1")
	assert.Equal(t, []string{"namelist:streq(b)"}, t1.RequestIDs)
	assert.Empty(t, t2.RequestIDs)
	assert.Equal(t, []string{"namelist:streq(b)"}, u1.RequestIDs)

	for _, id := range []string{"namelist:domain(D1)", "namelist:streq(a)", "namelist:streq(c)"} {
		assert.False(t, m.Store().Has(id), id)
		_, ok := m.Record(id)
		assert.False(t, ok, id)
	}
}

func TestRemoveTimeThenWrite(t *testing.T) {
	m := mustParse(t, scenarioConf)

	require.NoError(t, m.RemoveTime("T1"))
	require.NoError(t, m.Verify())

	out := string(m.Bytes())
	assert.NotContains(t, out, "namelist:time")
	assert.NotContains(t, out, "namelist:streq")
	assert.Contains(t, out, "[namelist:domain(D1)]")
	assert.Contains(t, out, "[namelist:use(U1)]")

	dom, _ := m.Domain("D1")
	assert.Empty(t, dom.RequestIDs)
}

func TestRemoveUseRemovesAllRequests(t *testing.T) {
	m := mustParse(t, sharedConf)

	require.NoError(t, m.RemoveUse("U1"))
	require.NoError(t, m.Verify())
	assert.Empty(t, m.Requests())
	assert.Empty(t, m.IndexSections())
	assert.Len(t, m.Domains(), 2)
	assert.Len(t, m.Times(), 2)
}

func TestRemoveNotFoundLeavesModelUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		remove func(m *Model) error
	}{
		{name: "domain", remove: func(m *Model) error { return m.RemoveDomain("DX") }},
		{name: "time", remove: func(m *Model) error { return m.RemoveTime("TX") }},
		{name: "use", remove: func(m *Model) error { return m.RemoveUse("UX") }},
		{name: "request", remove: func(m *Model) error { return m.RemoveRequest("namelist:streq(zz)") }},
		{name: "request by wrong kind", remove: func(m *Model) error { return m.RemoveRequest("namelist:use(U1)") }},
		{name: "request pair", remove: func(m *Model) error { return m.RemoveRequests(9, 9) }},
		{name: "request kind by name", remove: func(m *Model) error { return m.Remove(types.KindRequest, "a") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, sharedConf)
			before := string(m.Bytes())

			err := tt.remove(m)
			assert.ErrorIs(t, err, types.ErrNotFound)
			assert.Equal(t, before, string(m.Bytes()))
			assert.Len(t, m.Requests(), 3)
			assert.NoError(t, m.Verify())
		})
	}
}

func TestRemoveRequestKeepsSharedBucket(t *testing.T) {
	m := mustParse(t, sharedConf)

	require.NoError(t, m.RemoveRequest("namelist:streq(a)"))
	require.NoError(t, m.Verify())

	assert.Equal(t, []string{"namelist:streq(b)"}, ids(m.RequestsFor(3, 236)))
	d1, _ := m.Domain("D1")
	assert.Equal(t, []string{"namelist:streq(c)"}, d1.RequestIDs)

	// The surviving parent can still be removed.
	require.NoError(t, m.RemoveDomain("D1"))
	require.NoError(t, m.Verify())
	assert.Equal(t, []string{"namelist:streq(b)"}, ids(m.Requests()))
}

func TestRemoveRequestsByPair(t *testing.T) {
	m := mustParse(t, sharedConf)

	require.NoError(t, m.RemoveRequests(3, 236))
	require.NoError(t, m.Verify())
	assert.Equal(t, []string{"namelist:streq(c)"}, ids(m.Requests()))
	assert.Equal(t, []int{0}, m.IndexSections())

	err := m.RemoveRequests(3, 236)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRemoveEverything(t *testing.T) {
	m := mustParse(t, sharedConf)

	for _, name := range []string{"D1", "D2"} {
		require.NoError(t, m.RemoveDomain(name))
	}
	for _, name := range []string{"T1", "T2"} {
		require.NoError(t, m.RemoveTime(name))
	}
	require.NoError(t, m.RemoveUse("U1"))
	require.NoError(t, m.Verify())

	assert.Empty(t, m.Store().Sections())
	assert.Equal(t, "meta=um-atmos/vn10.5\n\n", string(m.Bytes()))
}
