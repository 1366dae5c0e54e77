package location_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvard-io/synthgen/location"
)

func TestNewCanonicalPath_AbsoluteAndClean(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	messy := filepath.Join(dir, ".", "sub", "..", "data.json")
	cp, err := location.NewCanonicalPath(messy)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cp.String()))
	assert.NotContains(t, cp.String(), "..")
	assert.Equal(t, "data.json", cp.Base())
	assert.False(t, cp.IsZero())
}

func TestNewCanonicalPath_SameFileTwoSpellingsOneIdentity(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	direct, err := location.NewCanonicalPath(file)
	require.NoError(t, err)
	indirect, err := location.NewCanonicalPath(filepath.Join(dir, "x", "..", "data.json"))
	require.NoError(t, err)
	assert.Equal(t, direct.String(), indirect.String())
}

func TestNewCanonicalPath_NFCNormalizesFilename(t *testing.T) {
	// "é" decomposed (e + combining acute) vs precomposed must canonicalize
	// to one spelling.
	dir := t.TempDir()
	nfd := "cafe\u0301.json" // e + combining acute
	nfc := "caf\u00e9.json"  // precomposed

	a, err := location.NewCanonicalPath(filepath.Join(dir, nfd))
	require.NoError(t, err)
	b, err := location.NewCanonicalPath(filepath.Join(dir, nfc))
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestNewCanonicalPath_ResolvesSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o600))
	link := filepath.Join(dir, "alias.json")
	require.NoError(t, os.Symlink(target, link))

	viaLink, err := location.NewCanonicalPath(link)
	require.NoError(t, err)
	direct, err := location.NewCanonicalPath(target)
	require.NoError(t, err)
	assert.Equal(t, direct.String(), viaLink.String())
}

func TestNewCanonicalPath_MissingPathIsNotAnError(t *testing.T) {
	cp, err := location.NewCanonicalPath(filepath.Join(t.TempDir(), "not-yet-written.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cp.String(), "not-yet-written.json"))
}

func TestCanonicalPath_SourceID(t *testing.T) {
	cp, err := location.NewCanonicalPath(filepath.Join(t.TempDir(), "a.json"))
	require.NoError(t, err)
	id, err := cp.SourceID()
	require.NoError(t, err)
	assert.Equal(t, cp.String(), id.String())
}

func TestCanonicalPath_ZeroValue(t *testing.T) {
	var cp location.CanonicalPath
	assert.True(t, cp.IsZero())
	assert.Empty(t, cp.Base())
}
