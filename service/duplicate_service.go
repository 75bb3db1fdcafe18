package service

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/internal/analyzer"
	"github.com/ludo-technologies/dupedir/internal/version"
)

// cancellation and progress are checked once per this many ingested paths
const ingestBatch = 4096

// DuplicateServiceImpl implements domain.DuplicateService on top of analyzer.Finder
type DuplicateServiceImpl struct {
	logger   *slog.Logger
	progress domain.ProgressManager
}

// NewDuplicateService creates a new duplicate service. Both arguments may be nil.
func NewDuplicateService(logger *slog.Logger, progress domain.ProgressManager) *DuplicateServiceImpl {
	if progress == nil {
		progress = NewNoopProgressManager()
	}
	return &DuplicateServiceImpl{
		logger:   loggerOrDiscard(logger),
		progress: progress,
	}
}

// FindDuplicates indexes paths and returns the ranked directory pairs
func (s *DuplicateServiceImpl) FindDuplicates(ctx context.Context, req *domain.DuplicateRequest, paths iter.Seq[string]) (*domain.DuplicateResponse, error) {
	start := time.Now()
	finder := analyzer.NewFinder()

	if err := s.ingest(ctx, finder, paths); err != nil {
		return nil, err
	}

	finder.FinalizeIndex()
	indexStats := finder.IndexStats()
	if indexStats.PathsRejected > 0 {
		s.logger.Debug("Ignored paths without a parent directory", "count", indexStats.PathsRejected)
	}
	s.logger.Info(fmt.Sprintf("Finding duplicates over %s file names in %s directories",
		FormatCount(indexStats.FileNames), FormatCount(indexStats.Directories)))

	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError("duplicate detection cancelled", err)
	}

	found := finder.FindDuplicates(analyzer.FinderOptions{
		AggregateHierarchy: req.AggregateHierarchy,
		MinSharedFiles:     req.MinSharedFiles,
		MaxCandidateDirs:   req.MaxCandidateDirs,
	})
	findStats := finder.LastFindStats()

	ranked := make([]domain.DuplicateDir, 0, len(found))
	for _, d := range found {
		ranked = append(ranked, toDuplicateDir(d))
	}
	if req.MaxResults > 0 && len(ranked) > req.MaxResults {
		ranked = ranked[:req.MaxResults]
	}
	SortDuplicates(ranked, req.SortBy, req.AggregateHierarchy)

	return &domain.DuplicateResponse{
		Duplicates: ranked,
		Statistics: &domain.DuplicateStatistics{
			FilesIndexed:    indexStats.FilesIndexed,
			PathsRejected:   indexStats.PathsRejected,
			FileNames:       indexStats.FileNames,
			Directories:     indexStats.Directories,
			CandidatePairs:  findStats.CandidatePairs,
			AggregatedPairs: findStats.AggregatedPairs,
			RankedPairs:     findStats.ReportedPairs,
			ReportedPairs:   len(ranked),
		},
		AggregateHierarchy: req.AggregateHierarchy,
		MinSharedFiles:     max(req.MinSharedFiles, 1),
		Duration:           time.Since(start).Milliseconds(),
		GeneratedAt:        time.Now().Format(time.RFC3339),
		Version:            version.Short(),
	}, nil
}

func (s *DuplicateServiceImpl) ingest(ctx context.Context, finder *analyzer.Finder, paths iter.Seq[string]) error {
	s.progress.Initialize(-1)
	s.progress.Start()

	n := 0
	for p := range paths {
		if n%ingestBatch == 0 {
			if err := ctx.Err(); err != nil {
				s.progress.Complete(false)
				return domain.NewAnalysisError("duplicate detection cancelled", err)
			}
			s.progress.Update(n, -1)
		}
		if !finder.Ingest(p) {
			s.logger.Debug("Ignoring path without parent directory", "path", p)
		}
		n++
	}

	s.progress.Update(n, -1)
	s.progress.Complete(true)
	return nil
}

func toDuplicateDir(d analyzer.Duplicate) domain.DuplicateDir {
	return domain.DuplicateDir{
		Path1:                d.Dir1.Path,
		Path2:                d.Dir2.Path,
		Files1:               d.Dir1.DirectFiles,
		HierarchyFiles1:      d.Dir1.SubtreeFiles,
		Files2:               d.Dir2.DirectFiles,
		HierarchyFiles2:      d.Dir2.SubtreeFiles,
		CommonFiles:          d.DirectShared,
		CommonFilesHierarchy: d.SubtreeShared,
		Overlap:              d.Overlap,
		Score:                d.Score,
	}
}

// SortDuplicates reorders ranked duplicates by criteria. SortByScore keeps
// the ranking order; the other criteria are stable so equal keys keep it too.
func SortDuplicates(dups []domain.DuplicateDir, criteria domain.SortCriteria, aggregate bool) {
	switch criteria {
	case domain.SortByShared:
		shared := func(d domain.DuplicateDir) int {
			if aggregate {
				return d.CommonFilesHierarchy
			}
			return d.CommonFiles
		}
		slices.SortStableFunc(dups, func(a, b domain.DuplicateDir) int {
			return cmp.Compare(shared(b), shared(a))
		})
	case domain.SortByPath:
		slices.SortStableFunc(dups, func(a, b domain.DuplicateDir) int {
			return cmp.Or(cmp.Compare(a.Path1, b.Path1), cmp.Compare(a.Path2, b.Path2))
		})
	}
}
