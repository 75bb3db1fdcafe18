package app

import (
	"context"
	"iter"
	"slices"

	"github.com/ludo-technologies/dupedir/domain"
)

// CollectPaths resolves the files to index: every regular file below roots,
// followed by the paths of every stored listing.
//
// Listings are read eagerly so that a missing or unreadable listing is
// reported before any directory is walked. Directory walking stays lazy and
// happens while the returned sequence is consumed.
func CollectPaths(
	ctx context.Context,
	walker domain.PathWalker,
	store domain.PathListStore,
	roots []string,
	listFiles []string,
	includePatterns []string,
	excludePatterns []string,
) (iter.Seq[string], error) {
	var listed []string
	if len(listFiles) > 0 {
		if store == nil {
			return nil, domain.NewInvalidInputError("files listings given but no listing store configured", nil)
		}
		var err error
		listed, err = store.Load(listFiles...)
		if err != nil {
			return nil, err
		}
	}

	var walked iter.Seq[string]
	if len(roots) > 0 {
		if walker == nil {
			return nil, domain.NewInvalidInputError("directories given but no path walker configured", nil)
		}
		if err := walker.ValidateRoots(roots); err != nil {
			return nil, err
		}
		walked = walker.Walk(ctx, roots, includePatterns, excludePatterns)
	}

	return concat(walked, slices.Values(listed)), nil
}

// concat yields every element of each non-nil sequence in turn
func concat(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			if seq == nil {
				continue
			}
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
