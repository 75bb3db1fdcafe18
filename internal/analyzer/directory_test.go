package analyzer

import (
	"testing"

	"github.com/ludo-technologies/dupedir/internal/counter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRegistry_GetOrCreate(t *testing.T) {
	r := NewDirectoryRegistry()

	a := r.GetOrCreate("/root/a")
	b := r.GetOrCreate("/root/b")
	again := r.GetOrCreate("/root/a/")

	assert.Same(t, a, again, "equal paths must resolve to the same directory")
	assert.Equal(t, DirID(0), a.ID)
	assert.Equal(t, DirID(1), b.ID)
	assert.Equal(t, 2, r.Len())

	assert.Equal(t, unsetCount, a.DirectFiles)
	assert.Equal(t, unsetCount, a.SubtreeFiles)
	assert.True(t, a.IsRoot())
}

func TestDirectoryRegistry_LookupAndGet(t *testing.T) {
	r := NewDirectoryRegistry()
	d := r.GetOrCreate("/x/y")

	got, ok := r.Lookup("/x/y")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = r.Lookup("/x")
	assert.False(t, ok)

	assert.Same(t, d, r.Get(d.ID))
	assert.Nil(t, r.Get(NoDir))
	assert.Nil(t, r.Get(42))
}

func TestContainsPath(t *testing.T) {
	tests := []struct {
		name     string
		ancestor string
		path     string
		expected bool
	}{
		{name: "same", ancestor: "/a/b", path: "/a/b", expected: true},
		{name: "child", ancestor: "/a/b", path: "/a/b/c", expected: true},
		{name: "deep", ancestor: "/a", path: "/a/b/c/d", expected: true},
		{name: "sibling with common prefix", ancestor: "/a/b", path: "/a/bc", expected: false},
		{name: "parent is not inside child", ancestor: "/a/b", path: "/a", expected: false},
		{name: "filesystem root", ancestor: "/", path: "/a", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsPath(tt.ancestor, tt.path))
		})
	}
}

func TestParentPath(t *testing.T) {
	p, ok := parentPath("/a/b")
	assert.True(t, ok)
	assert.Equal(t, "/a", p)

	p, ok = parentPath("/a")
	assert.True(t, ok)
	assert.Equal(t, "/", p)

	_, ok = parentPath("/")
	assert.False(t, ok)

	_, ok = parentPath("name.txt")
	assert.False(t, ok)
}

func TestDirectoryRegistry_AncestorsAndRelated(t *testing.T) {
	r := NewDirectoryRegistry()
	r.GetOrCreate("/r/a/b")
	AccumulateHierarchy(r, counter.New[string]())

	b, _ := r.Lookup("/r/a/b")
	var paths []string
	for d := range r.Ancestors(b.ID) {
		paths = append(paths, d.Path)
	}
	assert.Equal(t, []string{"/r/a/b", "/r/a", "/r", "/"}, paths)

	a, _ := r.Lookup("/r/a")
	root, _ := r.Lookup("/r")
	other := r.GetOrCreate("/r/ab")
	assert.True(t, r.Related(a.ID, b.ID))
	assert.True(t, r.Related(b.ID, root.ID))
	assert.False(t, r.Related(a.ID, other.ID))
}
