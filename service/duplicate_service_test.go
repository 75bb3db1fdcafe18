package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProgress is a ProgressManager remembering how it was driven
type recordingProgress struct {
	initialized []int
	updates     int
	completed   []bool
}

func (p *recordingProgress) Initialize(maxValue int)     { p.initialized = append(p.initialized, maxValue) }
func (p *recordingProgress) Start()                      {}
func (p *recordingProgress) Complete(success bool)       { p.completed = append(p.completed, success) }
func (p *recordingProgress) Update(processed, total int) { p.updates++ }
func (p *recordingProgress) SetWriter(io.Writer)         {}
func (p *recordingProgress) IsInteractive() bool         { return false }
func (p *recordingProgress) Close()                      {}

func loadFixture(t *testing.T, name string) []string {
	t.Helper()
	paths, err := NewPathListStore(nil).Load(filepath.Join("..", "testdata", "lists", name))
	require.NoError(t, err)
	return paths
}

func findRequest(minShared int, aggregate bool) *domain.DuplicateRequest {
	req := domain.DefaultDuplicateRequest()
	req.ListFiles = []string{"fixture"}
	req.MinSharedFiles = minShared
	req.AggregateHierarchy = aggregate
	req.OutputWriter = io.Discard
	return req
}

func pairsOf(dups []domain.DuplicateDir) [][2]string {
	var pairs [][2]string
	for _, d := range dups {
		pairs = append(pairs, [2]string{d.Path1, d.Path2})
	}
	return pairs
}

func TestDuplicateService_FindDuplicates(t *testing.T) {
	svc := NewDuplicateService(nil, nil)

	resp, err := svc.FindDuplicates(context.Background(), findRequest(1, false), slices.Values(loadFixture(t, "test04.txt")))
	require.NoError(t, err)

	require.Len(t, resp.Duplicates, 2)
	first := resp.Duplicates[0]
	assert.Equal(t, "/root/dir1", first.Path1)
	assert.Equal(t, "/root/dir3", first.Path2)
	assert.Equal(t, int64(4), first.Files1)
	assert.Equal(t, int64(4), first.HierarchyFiles2)
	assert.Equal(t, 4, first.CommonFiles)
	assert.InDelta(t, 1.0, first.Overlap, 1e-9)
	assert.InDelta(t, 1.60206, first.Score, 1e-5)

	second := resp.Duplicates[1]
	assert.Equal(t, [2]string{"/root/dir2", "/root/dir4"}, [2]string{second.Path1, second.Path2})
	assert.InDelta(t, 0.5, second.Overlap, 1e-9)

	require.NotNil(t, resp.Statistics)
	assert.Equal(t, 12, resp.Statistics.FilesIndexed)
	assert.Equal(t, 7, resp.Statistics.FileNames)
	assert.Equal(t, 6, resp.Statistics.Directories)
	assert.Equal(t, 2, resp.Statistics.CandidatePairs)
	assert.Equal(t, 2, resp.Statistics.ReportedPairs)
	assert.Equal(t, 1, resp.MinSharedFiles)
	assert.NotEmpty(t, resp.GeneratedAt)
	assert.NotEmpty(t, resp.Version)
}

func TestDuplicateService_Aggregate(t *testing.T) {
	svc := NewDuplicateService(nil, nil)

	resp, err := svc.FindDuplicates(context.Background(), findRequest(1, true), slices.Values(loadFixture(t, "test11.txt")))
	require.NoError(t, err)

	require.NotEmpty(t, resp.Duplicates)
	top := resp.Duplicates[0]
	assert.Equal(t, [2]string{"/root/aaa", "/root/bbb"}, [2]string{top.Path1, top.Path2})
	assert.Equal(t, 2, top.CommonFilesHierarchy)
	assert.True(t, resp.AggregateHierarchy)
	assert.Equal(t, 2, resp.Statistics.CandidatePairs)
	assert.Equal(t, 5, resp.Statistics.AggregatedPairs)
}

func TestDuplicateService_MinSharedFiltersPairs(t *testing.T) {
	svc := NewDuplicateService(nil, nil)
	paths := loadFixture(t, "test04.txt")

	resp, err := svc.FindDuplicates(context.Background(), findRequest(domain.DefaultMinSharedFiles, false), slices.Values(paths))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"/root/dir1", "/root/dir3"}}, pairsOf(resp.Duplicates))

	resp, err = svc.FindDuplicates(context.Background(), findRequest(0, false), slices.Values(paths))
	require.NoError(t, err)
	assert.Len(t, resp.Duplicates, 2)
	assert.Equal(t, 1, resp.MinSharedFiles)
}

// rankingListing makes the score order differ from the path order:
// /p/z1 and /p/z2 share four files, /p/a1 and /p/a2 share one.
var rankingListing = []string{
	"/p/z1/1", "/p/z1/2", "/p/z1/3", "/p/z1/4",
	"/p/z2/1", "/p/z2/2", "/p/z2/3", "/p/z2/4",
	"/p/a1/x", "/p/a1/only-a1",
	"/p/a2/x",
}

func TestDuplicateService_SortAndTop(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   domain.SortCriteria
		top      int
		expected [][2]string
	}{
		{name: "score", sortBy: domain.SortByScore,
			expected: [][2]string{{"/p/z1", "/p/z2"}, {"/p/a1", "/p/a2"}}},
		{name: "shared", sortBy: domain.SortByShared,
			expected: [][2]string{{"/p/z1", "/p/z2"}, {"/p/a1", "/p/a2"}}},
		{name: "path", sortBy: domain.SortByPath,
			expected: [][2]string{{"/p/a1", "/p/a2"}, {"/p/z1", "/p/z2"}}},
		{name: "top keeps best scores before sorting", sortBy: domain.SortByPath, top: 1,
			expected: [][2]string{{"/p/z1", "/p/z2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := findRequest(1, false)
			req.SortBy = tt.sortBy
			req.MaxResults = tt.top

			resp, err := NewDuplicateService(nil, nil).FindDuplicates(context.Background(), req, slices.Values(rankingListing))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pairsOf(resp.Duplicates))
			assert.Equal(t, len(tt.expected), resp.Statistics.ReportedPairs)
		})
	}
}

func TestDuplicateService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	progress := &recordingProgress{}

	_, err := NewDuplicateService(nil, progress).FindDuplicates(ctx, findRequest(1, false), slices.Values(rankingListing))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, domain.ErrCodeAnalysisError, domain.ErrorCode(err))
	assert.Equal(t, []bool{false}, progress.completed)
}

func TestDuplicateService_ReportsProgressAndLogs(t *testing.T) {
	var logs bytes.Buffer
	progress := &recordingProgress{}
	svc := NewDuplicateService(NewLogger(&logs, true), progress)

	_, err := svc.FindDuplicates(context.Background(), findRequest(1, false), slices.Values(append([]string{"orphan"}, rankingListing...)))
	require.NoError(t, err)

	assert.Equal(t, []int{-1}, progress.initialized)
	assert.Equal(t, []bool{true}, progress.completed)
	assert.GreaterOrEqual(t, progress.updates, 2)

	assert.Contains(t, logs.String(), "Finding duplicates over 6 file names in 6 directories")
	assert.Contains(t, logs.String(), "Ignoring path without parent directory")
}

func TestDuplicateService_EmptyInput(t *testing.T) {
	resp, err := NewDuplicateService(nil, nil).FindDuplicates(context.Background(), findRequest(1, false), slices.Values([]string(nil)))
	require.NoError(t, err)
	assert.Empty(t, resp.Duplicates)
	assert.Equal(t, 0, resp.Statistics.FilesIndexed)
}

func TestDefaultsMatchAnalyzer(t *testing.T) {
	assert.Equal(t, analyzer.DefaultMinSharedFiles, domain.DefaultMinSharedFiles)
	assert.Equal(t, analyzer.DefaultMaxCandidateDirs, domain.DefaultMaxCandidateDirs)
}

func TestSortDuplicates_SharedUsesHierarchyWhenAggregated(t *testing.T) {
	dups := []domain.DuplicateDir{
		{Path1: "/a", Path2: "/b", CommonFiles: 5, CommonFilesHierarchy: 1},
		{Path1: "/c", Path2: "/d", CommonFiles: 1, CommonFilesHierarchy: 9},
	}

	SortDuplicates(dups, domain.SortByShared, true)
	assert.Equal(t, "/c", dups[0].Path1)

	SortDuplicates(dups, domain.SortByShared, false)
	assert.Equal(t, "/a", dups[0].Path1)
}
