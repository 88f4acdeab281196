package roseconf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stashconf/pkg/types"
)

// scenarioConf has one domain, time and use, and one request for (3, 236).
const scenarioConf = `meta=um-atmos/vn10.5

[namelist:domain(D1)]
dom_name='D1'
iopl=1
!!levb=1

[namelist:streq(00003_aaaa0001)]
dom_name='D1'
isec=3
item=236
package=''
tim_name='T1'
use_name='U1'

[namelist:time(T1)]
ityp=1
tim_name='T1'

[namelist:use(U1)]
file_id='pp0'
locn=3
use_name='U1'
`

// sharedConf has two domains, two times and one use. Two requests share
// (3, 236) and point at different domains.
const sharedConf = `meta=um-atmos/vn10.5

[namelist:domain(D1)]
dom_name='D1'

[namelist:domain(D2)]
dom_name='D2'

[namelist:time(T1)]
tim_name='T1'

[namelist:time(T2)]
tim_name='T2'

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
isec=3
item=236
tim_name='T1'
use_name='U1'

[namelist:streq(c)]
dom_name='D1'
isec=0
item=2
tim_name='T2'
use_name='U1'
`

func mustParse(t *testing.T, conf string) *Model {
	t.Helper()
	m, err := Parse(strings.NewReader(conf))
	require.NoError(t, err)
	require.NoError(t, m.Verify())
	return m
}

func ids(records []*types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
