package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stashconf/internal/roseconf"
)

const conf = `meta=um-atmos/vn10.5

[namelist:domain(DIAG)]
dom_name='DIAG'

[namelist:time(T6H)]
tim_name='T6H'

[namelist:use(UPA)]
use_name='UPA'

[namelist:streq(a)]
dom_name='DIAG'
isec=3
item=236
tim_name='T6H'
use_name='UPA'

[namelist:streq(b)]
dom_name='DIAG'
isec=0
item=2
tim_name='T6H'
use_name='UPA'
`

type names map[int]map[int]string

func (n names) Name(s, i int) (string, bool) {
	v, ok := n[s][i]
	return v, ok
}

func parse(t *testing.T) *roseconf.Model {
	t.Helper()
	m, err := roseconf.Parse(strings.NewReader(conf))
	require.NoError(t, err)
	return m
}

func TestRows(t *testing.T) {
	m := parse(t)
	rows := Rows(m)
	assert.Equal(t, []Row{
		{Section: "3", Item: "236", Domain: "DIAG", Time: "T6H", Use: "UPA"},
		{Section: "0", Item: "2", Domain: "DIAG", Time: "T6H", Use: "UPA"},
	}, rows)
}

func TestWriteTableAligned(t *testing.T) {
	m := parse(t)
	require.NoError(t, m.Annotate(names{0: {2: "U WIND"}, 3: {236: "TEMPERATURE AT 1.5M"}}))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Rows(m)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, len(lines[0]), len(lines[1]), "columns are padded to equal width")
	assert.True(t, strings.HasSuffix(lines[1], "DIAG T6H UPA"), lines[1])
	assert.Contains(t, lines[0], "TEMPERATURE AT 1.5M")
	assert.Contains(t, lines[1], "             U WIND")
}

func TestWriteTableWithoutNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Rows(parse(t))))
	assert.Equal(t, " 3 236 DIAG T6H UPA\n 0   2 DIAG T6H UPA\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Rows(parse(t))))

	var got []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "236", got[0].Item)
}

func TestSummarize(t *testing.T) {
	s := Summarize(parse(t))
	assert.Equal(t, Summary{Module: "um-atmos", Version: "vn10.5", Requests: 2, Domains: 1, Times: 1, Uses: 1, Pairs: 2}, s)
	assert.Equal(t, "meta=um-atmos/vn10.5: 2 requests (2 section/items), 1 domains, 1 times, 1 uses", s.String())
}
