package analyzer

// Candidate is an unordered pair of directories under evaluation.
// Dir1 and Dir2 keep the orientation of the first encounter.
type Candidate struct {
	Dir1          DirID
	Dir2          DirID
	DirectShared  int     // file names the two directories share directly
	SubtreeShared int     // shared names aggregated from descendant pairs
	Overlap       float64 // shared count over the smaller relevant file count
	Score         float64
}

type pairKey struct {
	lo, hi DirID
}

func newPairKey(a, b DirID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// CandidateSet holds exactly one Candidate per unordered directory pair.
// Candidates are kept in creation order.
type CandidateSet struct {
	byKey map[pairKey]int
	items []*Candidate
}

// NewCandidateSet creates an empty set
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{byKey: make(map[pairKey]int)}
}

// GetOrCreate returns the candidate for {a, b}, creating it on first use.
// (a, b) and (b, a) resolve to the same candidate.
func (s *CandidateSet) GetOrCreate(a, b DirID) *Candidate {
	key := newPairKey(a, b)
	if i, ok := s.byKey[key]; ok {
		return s.items[i]
	}
	c := &Candidate{Dir1: a, Dir2: b}
	s.byKey[key] = len(s.items)
	s.items = append(s.items, c)
	return c
}

// Lookup returns the candidate for {a, b} if it exists
func (s *CandidateSet) Lookup(a, b DirID) (*Candidate, bool) {
	i, ok := s.byKey[newPairKey(a, b)]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// Len returns the number of candidates
func (s *CandidateSet) Len() int {
	return len(s.items)
}

// Items returns the candidates in creation order
func (s *CandidateSet) Items() []*Candidate {
	return s.items
}

// GenerateCandidates counts, for every pair of directories, the file names
// they share. Names held by a single directory, or by more than
// maxCandidateDirs directories, contribute nothing.
func GenerateCandidates(index *FileIndex, maxCandidateDirs int) *CandidateSet {
	set := NewCandidateSet()

	for _, name := range index.Names() {
		dirs := index.Owners(name)
		if len(dirs) <= 1 || len(dirs) > maxCandidateDirs {
			continue
		}
		for i := 0; i < len(dirs)-1; i++ {
			for j := i + 1; j < len(dirs); j++ {
				set.GetOrCreate(dirs[i], dirs[j]).DirectShared++
			}
		}
	}
	return set
}

// AggregateHierarchy propagates every direct pair's shared count to the pairs
// formed by the two directories and their ancestors. Pairs where one side
// contains the other are skipped. Only the pairs present before the call are
// propagated; pairs created here are never used as a source.
func AggregateHierarchy(set *CandidateSet, registry *DirectoryRegistry) {
	type basePair struct {
		d1, d2 DirID
		shared int
	}

	base := make([]basePair, 0, set.Len())
	for _, c := range set.Items() {
		base = append(base, basePair{d1: c.Dir1, d2: c.Dir2, shared: c.DirectShared})
	}

	for _, p := range base {
		for a1 := range registry.Ancestors(p.d1) {
			for a2 := range registry.Ancestors(p.d2) {
				// Once a2 contains a1 or lies inside it, so do all of a2's ancestors.
				if registry.Related(a1.ID, a2.ID) {
					break
				}
				set.GetOrCreate(a1.ID, a2.ID).SubtreeShared += p.shared
			}
		}
	}
}
