package analyzer

import (
	"iter"

	"github.com/ludo-technologies/dupedir/internal/counter"
)

// Default analysis bounds
const (
	DefaultMinSharedFiles   = 3
	DefaultMaxCandidateDirs = 50
)

// FinderOptions configures one FindDuplicates pass
type FinderOptions struct {
	// AggregateHierarchy propagates shared files up to ancestor pairs and
	// ranks on subtree counts.
	AggregateHierarchy bool

	// MinSharedFiles is the smallest shared count a reported pair may have
	MinSharedFiles int

	// MaxCandidateDirs skips file names held by more directories than this
	MaxCandidateDirs int
}

// DefaultFinderOptions returns the default options
func DefaultFinderOptions() FinderOptions {
	return FinderOptions{
		AggregateHierarchy: false,
		MinSharedFiles:     DefaultMinSharedFiles,
		MaxCandidateDirs:   DefaultMaxCandidateDirs,
	}
}

// Duplicate is one ranked pair of likely duplicate directories
type Duplicate struct {
	Dir1          *Directory
	Dir2          *Directory
	DirectShared  int
	SubtreeShared int
	Overlap       float64
	Score         float64
}

// IndexStats summarizes the state of a Finder's index
type IndexStats struct {
	FilesIndexed  int
	PathsRejected int
	FileNames     int
	Directories   int
}

// FindStats summarizes the last FindDuplicates pass
type FindStats struct {
	CandidatePairs  int
	AggregatedPairs int
	ReportedPairs   int
}

// Finder finds directories sharing many file names. Feed it with Ingest,
// call FinalizeIndex once, then query FindDuplicates.
//
// A Finder is not safe for concurrent use.
type Finder struct {
	registry    *DirectoryRegistry
	filesPerDir *counter.Counter[string]
	index       *FileIndex
	finalized   bool
	lastFind    FindStats
}

// NewFinder creates a Finder with an empty index
func NewFinder() *Finder {
	f := &Finder{}
	f.Reset()
	return f
}

// Reset discards every directory, count and index entry
func (f *Finder) Reset() {
	f.registry = NewDirectoryRegistry()
	f.filesPerDir = counter.New[string]()
	f.index = NewFileIndex(f.registry, f.filesPerDir)
	f.finalized = false
	f.lastFind = FindStats{}
}

// Ingest adds one absolute file path. It returns false when the path has no
// parent directory and was ignored.
func (f *Finder) Ingest(path string) bool {
	f.finalized = false
	return f.index.IndexFile(path)
}

// IngestAll adds every path of seq and returns how many were accepted
func (f *Finder) IngestAll(seq iter.Seq[string]) int {
	accepted := 0
	for p := range seq {
		if f.Ingest(p) {
			accepted++
		}
	}
	return accepted
}

// FinalizeIndex links the directory forest and computes subtree file counts
func (f *Finder) FinalizeIndex() {
	AccumulateHierarchy(f.registry, f.filesPerDir)
	f.finalized = true
}

// FindDuplicates returns the candidate pairs ranked by descending score.
// The index is finalized first if needed; an empty index yields no pairs.
func (f *Finder) FindDuplicates(opts FinderOptions) []Duplicate {
	if !f.finalized {
		f.FinalizeIndex()
	}

	set := GenerateCandidates(f.index, opts.MaxCandidateDirs)
	stats := FindStats{CandidatePairs: set.Len()}

	if opts.AggregateHierarchy {
		AggregateHierarchy(set, f.registry)
		stats.AggregatedPairs = set.Len() - stats.CandidatePairs
	}

	ranked := RankCandidates(set, f.registry, opts.AggregateHierarchy, opts.MinSharedFiles)
	stats.ReportedPairs = len(ranked)
	f.lastFind = stats

	dups := make([]Duplicate, 0, len(ranked))
	for _, c := range ranked {
		dups = append(dups, Duplicate{
			Dir1:          f.registry.Get(c.Dir1),
			Dir2:          f.registry.Get(c.Dir2),
			DirectShared:  c.DirectShared,
			SubtreeShared: c.SubtreeShared,
			Overlap:       c.Overlap,
			Score:         c.Score,
		})
	}
	return dups
}

// Directory returns the directory registered for path
func (f *Finder) Directory(path string) (*Directory, bool) {
	return f.registry.Lookup(path)
}

// Registry exposes the directory registry of the current run
func (f *Finder) Registry() *DirectoryRegistry {
	return f.registry
}

// IndexStats reports the size of the current index
func (f *Finder) IndexStats() IndexStats {
	return IndexStats{
		FilesIndexed:  f.index.Indexed(),
		PathsRejected: f.index.Rejected(),
		FileNames:     f.index.NameCount(),
		Directories:   f.registry.Len(),
	}
}

// LastFindStats reports counters from the most recent FindDuplicates call
func (f *Finder) LastFindStats() FindStats {
	return f.lastFind
}
