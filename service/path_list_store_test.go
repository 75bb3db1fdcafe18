package service

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathListStore_StoreSortsAndDeduplicates(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "files.txt")
	store := NewPathListStore(nil)

	n, err := store.Store(file, slices.Values([]string{"/b/2", "/a/1", "/b/2", "/a/0"}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "/a/0\n/a/1\n/b/2\n", string(data))
}

func TestPathListStore_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "files.txt")
	store := NewPathListStore(nil)
	paths := []string{"/data/x/report.pdf", "/data/y/report.pdf", "/data/y/notes.txt"}

	_, err := store.Store(file, slices.Values(paths))
	require.NoError(t, err)

	loaded, err := store.Load(file)
	require.NoError(t, err)
	assert.ElementsMatch(t, paths, loaded)
}

func TestPathListStore_LoadSkipsBlankAndComments(t *testing.T) {
	file := filepath.Join(t.TempDir(), "files.txt")
	content := strings.Join([]string{
		"# generated listing",
		"",
		"  /a/b/c.txt  ",
		"/a/d.txt",
		"   ",
	}, "\n")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	loaded, err := NewPathListStore(nil).Load(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/b/c.txt", "/a/d.txt"}, loaded)
}

func TestPathListStore_LoadMakesPathsAbsolute(t *testing.T) {
	file := filepath.Join(t.TempDir(), "files.txt")
	require.NoError(t, os.WriteFile(file, []byte("rel/dir/file.txt\n"), 0o644))

	loaded, err := NewPathListStore(nil).Load(file)
	require.NoError(t, err)

	want, err := filepath.Abs("rel/dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{want}, loaded)
}

func TestPathListStore_LoadMultipleInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "1.txt")
	second := filepath.Join(dir, "2.txt")
	require.NoError(t, os.WriteFile(first, []byte("/z/1\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("/a/2\n"), 0o644))

	loaded, err := NewPathListStore(nil).Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"/z/1", "/a/2"}, loaded)
}

func TestPathListStore_LoadMissing(t *testing.T) {
	_, err := NewPathListStore(nil).Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestPathListStore_StoreIntoUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewPathListStore(nil).Store(filepath.Join(blocker, "files.txt"), slices.Values([]string{"/a/b"}))
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeListingError, domain.ErrorCode(err))
}
