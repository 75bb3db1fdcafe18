package app

import (
	"context"
	"fmt"
	"iter"

	"github.com/ludo-technologies/dupedir/domain"
	svc "github.com/ludo-technologies/dupedir/service"
)

// ListUseCase scans directories and stores the file listing for later runs
type ListUseCase struct {
	walker domain.PathWalker
	store  domain.PathListStore
}

// NewListUseCase creates a new list use case
func NewListUseCase(walker domain.PathWalker, store domain.PathListStore) *ListUseCase {
	return &ListUseCase{walker: walker, store: store}
}

// Execute walks req.Roots and stores every file path in req.OutputPath
func (uc *ListUseCase) Execute(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	if uc.walker == nil || uc.store == nil {
		return nil, fmt.Errorf("list use case requires a path walker and a path list store")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := svc.ValidatePatterns(req.IncludePatterns, req.ExcludePatterns); err != nil {
		return nil, err
	}
	if err := uc.walker.ValidateRoots(req.Roots); err != nil {
		return nil, err
	}

	scanned := 0
	paths := counting(uc.walker.Walk(ctx, req.Roots, req.IncludePatterns, req.ExcludePatterns), &scanned)

	stored, err := uc.store.Store(req.OutputPath, paths)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewListingError(req.OutputPath, err)
	}

	return &domain.ListResponse{
		OutputPath: req.OutputPath,
		Scanned:    scanned,
		Stored:     stored,
	}, nil
}

func counting(seq iter.Seq[string], n *int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for v := range seq {
			*n++
			if !yield(v) {
				return
			}
		}
	}
}
