package layoutfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/layout_designer/layoutfile"
)

func TestDigest_returns_sha256(t *testing.T) {
	t.Parallel()

	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		layoutfile.Digest([]byte("hello")),
	)
}

func TestSave_and_Open_roundtrip(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "layoutContent.txt")
	content := "Total: <b>{TotalAmount}</b>\n"

	require.NoError(t, layoutfile.Save(pa, content))

	lay, err := layoutfile.Open(pa)

	require.NoError(t, err)
	assert.Equal(t, content, lay.Content)
	assert.Equal(t, pa, lay.Path)
	assert.True(t, lay.Tracked)
	assert.False(t, lay.Modified)

	stored, err := layoutfile.StoredDigest(pa)
	require.NoError(t, err)
	assert.Equal(t, layoutfile.Digest([]byte(content)), stored)
}

func TestSave_overwrites(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "layout.txt")

	require.NoError(t, layoutfile.Save(pa, "first"))
	require.NoError(t, layoutfile.Save(pa, "second"))

	lay, err := layoutfile.Open(pa)

	require.NoError(t, err)
	assert.Equal(t, "second", lay.Content)
	assert.False(t, lay.Modified)

	entries, err := os.ReadDir(filepath.Dir(pa))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestOpen_detects_external_change(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "layout.txt")

	require.NoError(t, layoutfile.Save(pa, "original"))
	require.NoError(t, os.WriteFile(pa, []byte("tampered"), 0o600))

	lay, err := layoutfile.Open(pa)

	require.NoError(t, err)
	assert.True(t, lay.Modified)

	ok, err := layoutfile.Verify(pa)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_untracked_layout(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "layout.txt")
	require.NoError(t, os.WriteFile(pa, []byte("plain"), 0o600))

	lay, err := layoutfile.Open(pa)

	require.NoError(t, err)
	assert.False(t, lay.Tracked)
	assert.False(t, lay.Modified)

	ok, err := layoutfile.Verify(pa)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_missing_layout(t *testing.T) {
	t.Parallel()

	_, err := layoutfile.Open("/nonexistent/layout.txt")

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "opening layout")
}

func TestSave_missing_directory(t *testing.T) {
	t.Parallel()

	err := layoutfile.Save("/nonexistent/dir/layout.txt", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving layout")
}
