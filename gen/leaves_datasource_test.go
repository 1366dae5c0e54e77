package gen_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/gen"
)

func writeJSON(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDatasource_LiteralPath(t *testing.T) {
	dir := t.TempDir()
	p := writeJSON(t, dir, "users.json", `["a", "b"]`)

	values, err := gen.LoadDatasource(p)
	require.NoError(t, err)
	require.Len(t, values, 2)
	s, _ := values[0].AsString()
	assert.Equal(t, "a", s)
}

func TestLoadDatasource_GlobConcatenatesMatches(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "a.json", `[1]`)
	writeJSON(t, dir, "b.json", `[2, 3]`)

	values, err := gen.LoadDatasource(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, values, 3)
}

func TestLoadDatasource_SymlinkedDuplicateReadOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	dir := t.TempDir()
	target := writeJSON(t, dir, "real.json", `["x"]`)
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "alias.json")))

	// The glob matches both spellings; canonicalization collapses them to
	// one source.
	values, err := gen.LoadDatasource(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestLoadDatasource_NoMatchIsNotFound(t *testing.T) {
	_, err := gen.LoadDatasource(filepath.Join(t.TempDir(), "missing-*.json"))
	require.Error(t, err)
}

func TestLoadDatasource_NonArrayFails(t *testing.T) {
	dir := t.TempDir()
	p := writeJSON(t, dir, "obj.json", `{"not": "an array"}`)

	_, err := gen.LoadDatasource(p)
	require.Error(t, err)
}

func TestDatasource_CycleWrapsExhaustionFails(t *testing.T) {
	dir := t.TempDir()
	p := writeJSON(t, dir, "vals.json", `[1, 2]`)
	values, err := gen.LoadDatasource(p)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(0))

	cycling := gen.Datasource(values, true)
	for i := 0; i < 5; i++ {
		g, err := cycling()
		require.NoError(t, err)
		_, err = gen.Aggregate(g, rng)
		require.NoError(t, err, "cycling datasource must wrap, not exhaust")
	}

	finite := gen.Datasource(values, false)
	for i := 0; i < 2; i++ {
		g, err := finite()
		require.NoError(t, err)
		_, err = gen.Aggregate(g, rng)
		require.NoError(t, err)
	}
	g, err := finite()
	require.NoError(t, err)
	_, err = gen.Aggregate(g, rng)
	require.Error(t, err, "non-cycling datasource must fail once exhausted")
}
