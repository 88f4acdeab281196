package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConf = `meta=um-atmos/vn10.5

[namelist:domain(DIAG)]
dom_name='DIAG'
iopl=1

[namelist:time(T6H)]
tim_name='T6H'
ifre=6

[namelist:use(UPA)]
use_name='UPA'
locn=1

[namelist:streq(a)]
dom_name='DIAG'
isec=3
item=236
package=''
tim_name='T6H'
use_name='UPA'

[namelist:streq(b)]
dom_name='DIAG'
isec=0
item=2
package=''
tim_name='T6H'
use_name='UPA'
`

const testStashMaster = `H1| SUBMODEL_NUMBER=1
1|    1 |    0 |    2 |U COMPNT OF WIND AFTER TIMESTEP      |
2|    2 |    0 |    1 |    1 |    2 |   18 |    2 |    2 |    0 |    0 |    0 |    0 |
1|    1 |    3 |  236 |TEMPERATURE AT 1.5M                 |
1|   -1 |   -1 |   -1 |END OF FILE MARK                    |
`

// Result holds the outcome of one CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// TestEnv is an isolated working directory with its own config and data
// directories.
type TestEnv struct {
	t         *testing.T
	Dir       string
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates a TestEnv and points the STASHCONF_* variables at it.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	dir := t.TempDir()
	env := &TestEnv{
		t:         t,
		Dir:       dir,
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
	t.Setenv("STASHCONF_CONFIG_DIR", env.ConfigDir)
	t.Setenv("STASHCONF_DATA_DIR", env.DataDir)
	t.Setenv("STASHCONF_STASHMASTER", "")
	t.Setenv("STASHCONF_LOG_LEVEL", "")
	t.Setenv("STASHCONF_LOG_FORMAT", "")
	return env
}

// WriteFile writes content to name inside the environment and returns its path.
func (e *TestEnv) WriteFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.Dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the contents of path.
func (e *TestEnv) ReadFile(path string) string {
	e.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(e.t, err)
	return string(data)
}

// Run executes stashconf with args.
func (e *TestEnv) Run(args ...string) Result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// MustRun executes stashconf and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) Result {
	e.t.Helper()
	r := e.Run(args...)
	require.Equal(e.t, exitSuccess, r.ExitCode, "stashconf %v: %s", args, r.Stderr)
	return r
}
