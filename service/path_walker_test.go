package service

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (slash separated, relative to root) with empty content
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func walkAll(t *testing.T, w *PathWalkerImpl, roots []string, include, exclude []string) []string {
	t.Helper()
	return slices.Sorted(w.Walk(context.Background(), roots, include, exclude))
}

func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestPathWalker_Walk(t *testing.T) {
	root := resolvedTempDir(t)
	makeTree(t, root, "a/1.jpg", "a/2.txt", "a/b/3.jpg", "c/4.jpg")

	got := walkAll(t, NewPathWalker(nil), []string{root}, nil, nil)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "1.jpg"),
		filepath.Join(root, "a", "2.txt"),
		filepath.Join(root, "a", "b", "3.jpg"),
		filepath.Join(root, "c", "4.jpg"),
	}, got)
}

func TestPathWalker_Patterns(t *testing.T) {
	root := resolvedTempDir(t)
	makeTree(t, root,
		"photos/1.jpg",
		"photos/raw/2.jpg",
		"photos/notes.txt",
		".git/objects/x.jpg",
		"cache/3.jpg",
	)

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "include by base name",
			include: []string{"*.jpg"},
			exclude: []string{".git"},
			want:    []string{"cache/3.jpg", "photos/1.jpg", "photos/raw/2.jpg"},
		},
		{
			name:    "exclude directory by relative path",
			include: []string{"**/*.jpg"},
			exclude: []string{".git", "photos/raw"},
			want:    []string{"cache/3.jpg", "photos/1.jpg"},
		},
		{
			name:    "exclude files",
			exclude: []string{"*.jpg"},
			want:    []string{"photos/notes.txt"},
		},
	}

	w := NewPathWalker(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want []string
			for _, f := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(f)))
			}
			assert.Equal(t, want, walkAll(t, w, []string{root}, tt.include, tt.exclude))
		})
	}
}

func TestPathWalker_DoesNotFollowSymlinks(t *testing.T) {
	root := resolvedTempDir(t)
	outside := resolvedTempDir(t)
	makeTree(t, root, "real/1.txt")
	makeTree(t, outside, "elsewhere/2.txt")

	if err := os.Symlink(filepath.Join(outside, "elsewhere"), filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "1.txt"), filepath.Join(root, "real", "link.txt")))

	got := walkAll(t, NewPathWalker(nil), []string{root}, nil, nil)
	assert.Equal(t, []string{filepath.Join(root, "real", "1.txt")}, got)
}

func TestPathWalker_ResolvesLinkedRoot(t *testing.T) {
	target := resolvedTempDir(t)
	makeTree(t, target, "d/1.txt")
	link := filepath.Join(resolvedTempDir(t), "root-link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got := walkAll(t, NewPathWalker(nil), []string{link}, nil, nil)
	assert.Equal(t, []string{filepath.Join(target, "d", "1.txt")}, got)
}

func TestPathWalker_StopsEarly(t *testing.T) {
	root := resolvedTempDir(t)
	makeTree(t, root, "a/1", "a/2", "a/3", "b/4")

	n := 0
	for range NewPathWalker(nil).Walk(context.Background(), []string{root, root}, nil, nil) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestPathWalker_Cancelled(t *testing.T) {
	root := resolvedTempDir(t)
	makeTree(t, root, "a/1", "a/2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := slices.Collect(NewPathWalker(nil).Walk(ctx, []string{root}, nil, nil))
	assert.Empty(t, got)
}

func TestPathWalker_ValidateRoots(t *testing.T) {
	root := resolvedTempDir(t)
	makeTree(t, root, "file.txt")
	w := NewPathWalker(nil)

	assert.NoError(t, w.ValidateRoots([]string{root}))

	err := w.ValidateRoots([]string{filepath.Join(root, "missing")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))

	err = w.ValidateRoots([]string{filepath.Join(root, "file.txt")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns([]string{"**/*.jpg"}, []string{".git", "{a,b}/c"}))

	err := ValidatePatterns(nil, []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}
