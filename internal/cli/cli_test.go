package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfucache/internal/cache"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, _, err := execute(t, "", "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "DISCARD: D\nTest 3: After adding item E:")
	assert.Contains(t, out, "B: World (usage count: 2)")
	assert.True(t, strings.HasSuffix(out, "A: Hello (usage count: 2)\n"), out)
}

func TestDemoCommand_OldestTieBreak(t *testing.T) {
	out, _, err := execute(t, "", "demo", "--tie-break=oldest")
	require.NoError(t, err)

	// A, C, D tie at 1 when E arrives; A is the oldest.
	assert.Contains(t, out, "DISCARD: A\nTest 3:")
}

func TestRunCommand_Stdin(t *testing.T) {
	script := "put a 1\nput b 2\nput c 3\nget a\nstats\ndump\n"
	out, _, err := execute(t, script, "run", "-", "--capacity=2")
	require.NoError(t, err)

	assert.Contains(t, out, "DISCARD: b\n")
	assert.Contains(t, out, "a: 1\n")
	assert.Contains(t, out, "a: 1 (usage count: 2)")
	assert.Contains(t, out, "evictions=1")
	assert.Contains(t, out, "c: 3 (usage count: 1)")
}

func TestRunCommand_FileAndTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.lfu")
	require.NoError(t, os.WriteFile(path, []byte("put k v\nget k\ndump\n"), 0o600))

	out, _, err := execute(t, "", "run", path, "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "USES")
	assert.Contains(t, out, "k: v\n")
}

func TestRunCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfucache.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  capacity: 1\nlogging:\n  level: debug\n  format: json\n"), 0o600))

	out, errOut, err := execute(t, "put a 1\nput b 2\n", "run", "-", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DISCARD: a\n")
	assert.Contains(t, errOut, `"message":"evict"`)
}

func TestRunCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "explode\n", "run", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, _, err = execute(t, "", "run", filepath.Join(t.TempDir(), "missing.lfu"))
	assert.Error(t, err)

	_, _, err = execute(t, "", "demo", "--capacity=0")
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"tie_break"`)
}

func TestRenderTable(t *testing.T) {
	got := renderTable([]cache.Entry[string, string]{
		{Key: "E", Value: "Battery", Uses: 1},
		{Key: "B", Value: "World", Uses: 2},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	eRow, bRow := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Battery") {
			eRow = i
		}
		if strings.Contains(l, "World") {
			bRow = i
		}
	}
	require.NotEqual(t, -1, eRow)
	assert.Less(t, eRow, bRow, "rows keep snapshot order")
}
