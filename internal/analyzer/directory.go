package analyzer

import (
	"iter"
	"path/filepath"
	"strings"
)

// DirID is the registry-assigned identity of a directory
type DirID int

// NoDir marks the absent parent of a filesystem root
const NoDir DirID = -1

// unsetCount marks file counts that have not been computed yet
const unsetCount int64 = -1

// Directory is a node of the directory forest built from indexed file paths
type Directory struct {
	ID           DirID
	Path         string
	DirectFiles  int64 // files located immediately inside the directory
	SubtreeFiles int64 // DirectFiles plus every descendant's DirectFiles
	Parent       DirID
	Children     []DirID
}

// IsRoot reports whether the directory has no parent
func (d *Directory) IsRoot() bool {
	return d.Parent == NoDir
}

// DirectoryRegistry owns every Directory of one analysis run. Directories are
// stored in an arena indexed by DirID; parent and child links are ids.
type DirectoryRegistry struct {
	dirs   []*Directory
	byPath map[string]DirID
}

// NewDirectoryRegistry creates an empty registry
func NewDirectoryRegistry() *DirectoryRegistry {
	return &DirectoryRegistry{
		byPath: make(map[string]DirID),
	}
}

// GetOrCreate returns the canonical Directory for path, registering it with
// unset counts the first time the path is seen.
func (r *DirectoryRegistry) GetOrCreate(path string) *Directory {
	path = filepath.Clean(path)
	if id, ok := r.byPath[path]; ok {
		return r.dirs[id]
	}

	dir := &Directory{
		ID:           DirID(len(r.dirs)),
		Path:         path,
		DirectFiles:  unsetCount,
		SubtreeFiles: unsetCount,
		Parent:       NoDir,
	}
	r.dirs = append(r.dirs, dir)
	r.byPath[path] = dir.ID
	return dir
}

// Lookup returns the directory registered for path
func (r *DirectoryRegistry) Lookup(path string) (*Directory, bool) {
	id, ok := r.byPath[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return r.dirs[id], true
}

// Get returns the directory with the given id, nil when unknown
func (r *DirectoryRegistry) Get(id DirID) *Directory {
	if id < 0 || int(id) >= len(r.dirs) {
		return nil
	}
	return r.dirs[id]
}

// Len returns the number of registered directories
func (r *DirectoryRegistry) Len() int {
	return len(r.dirs)
}

// All iterates over the directories in id order
func (r *DirectoryRegistry) All() iter.Seq[*Directory] {
	return func(yield func(*Directory) bool) {
		for _, d := range r.dirs {
			if !yield(d) {
				return
			}
		}
	}
}

// Ancestors iterates over id and then each of its ancestors up to the root
func (r *DirectoryRegistry) Ancestors(id DirID) iter.Seq[*Directory] {
	return func(yield func(*Directory) bool) {
		for d := r.Get(id); d != nil; d = r.Get(d.Parent) {
			if !yield(d) {
				return
			}
		}
	}
}

// Related reports whether one directory contains the other (or they are the same)
func (r *DirectoryRegistry) Related(a, b DirID) bool {
	da, db := r.Get(a), r.Get(b)
	if da == nil || db == nil {
		return false
	}
	return containsPath(da.Path, db.Path) || containsPath(db.Path, da.Path)
}

// parentPath returns the parent of a cleaned path; ok is false for roots
func parentPath(path string) (string, bool) {
	parent := filepath.Dir(path)
	if parent == path || parent == "." {
		return "", false
	}
	return parent, true
}

// containsPath reports whether p equals ancestor or lies below it.
// Comparison is per path component, so /a/bc is not inside /a/b.
func containsPath(ancestor, p string) bool {
	if ancestor == p {
		return true
	}
	prefix := ancestor
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
