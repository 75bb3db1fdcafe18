package analyzer

import (
	"cmp"
	"math"
	"slices"
)

// ScoreCandidate computes the overlap fraction and score of c.
//
//	overlap = shared / min(files1, files2)   (0 when the minimum is 0)
//	score   = log10(shared) + overlap
//
// With aggregate set, shared is SubtreeShared and the file counts are subtree
// counts; otherwise DirectShared and direct counts.
func ScoreCandidate(c *Candidate, d1, d2 *Directory, aggregate bool) {
	shared := c.DirectShared
	files1, files2 := d1.DirectFiles, d2.DirectFiles
	if aggregate {
		shared = c.SubtreeShared
		files1, files2 = d1.SubtreeFiles, d2.SubtreeFiles
	}

	c.Overlap = 0
	if smallest := min(files1, files2); smallest > 0 {
		c.Overlap = float64(shared) / float64(smallest)
	}
	c.Score = math.Log10(float64(shared)) + c.Overlap
}

// RankCandidates keeps the candidates whose relevant shared count reaches
// minSharedFiles, scores them, and orders them by descending score. Equal
// scores keep creation order. minSharedFiles below 1 is treated as 1 so
// every score is finite.
func RankCandidates(set *CandidateSet, registry *DirectoryRegistry, aggregate bool, minSharedFiles int) []*Candidate {
	minSharedFiles = max(minSharedFiles, 1)

	ranked := make([]*Candidate, 0)
	for _, c := range set.Items() {
		shared := c.DirectShared
		if aggregate {
			shared = c.SubtreeShared
		}
		if shared < minSharedFiles {
			continue
		}
		ScoreCandidate(c, registry.Get(c.Dir1), registry.Get(c.Dir2), aggregate)
		ranked = append(ranked, c)
	}

	slices.SortStableFunc(ranked, func(a, b *Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}
