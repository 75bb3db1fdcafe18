package analyzer

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/ludo-technologies/dupedir/internal/counter"
)

type nameOwner struct {
	name string
	dir  DirID
}

// FileIndex maps file base names to the directories holding a file with that
// name. Ingesting a file registers its parent directory and counts it as a
// direct file of that directory.
type FileIndex struct {
	registry    *DirectoryRegistry
	filesPerDir *counter.Counter[string]
	owners      map[string][]DirID
	seen        map[nameOwner]struct{}
	indexed     int
	rejected    int
}

// NewFileIndex creates an empty index feeding registry and filesPerDir
func NewFileIndex(registry *DirectoryRegistry, filesPerDir *counter.Counter[string]) *FileIndex {
	return &FileIndex{
		registry:    registry,
		filesPerDir: filesPerDir,
		owners:      make(map[string][]DirID),
		seen:        make(map[nameOwner]struct{}),
	}
}

// IndexFile adds one file path to the index. Paths without a parent segment
// (a bare name, or a filesystem root) are rejected and false is returned.
// Ancestors of the parent directory are not registered here.
func (idx *FileIndex) IndexFile(filePath string) bool {
	filePath = filepath.Clean(filePath)
	dirPath, ok := parentPath(filePath)
	if !ok {
		idx.rejected++
		return false
	}
	name := filepath.Base(filePath)

	dir := idx.registry.GetOrCreate(dirPath)
	idx.indexed++

	key := nameOwner{name: name, dir: dir.ID}
	if _, dup := idx.seen[key]; dup {
		return true
	}
	idx.seen[key] = struct{}{}
	idx.owners[name] = append(idx.owners[name], dir.ID)
	idx.filesPerDir.Add(dir.Path)
	return true
}

// Owners returns the directories holding a file called name, in first-seen order
func (idx *FileIndex) Owners(name string) []DirID {
	return idx.owners[name]
}

// Names returns every indexed base name in ascending order
func (idx *FileIndex) Names() []string {
	return slices.Sorted(maps.Keys(idx.owners))
}

// NameCount returns the number of distinct base names
func (idx *FileIndex) NameCount() int {
	return len(idx.owners)
}

// Indexed returns the number of accepted file paths, duplicates included
func (idx *FileIndex) Indexed() int {
	return idx.indexed
}

// Rejected returns the number of paths refused for lacking a parent
func (idx *FileIndex) Rejected() int {
	return idx.rejected
}
