package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ludo-technologies/dupedir/domain"
)

// duplicateTheme styles the text report
type duplicateTheme struct {
	Score    lipgloss.Style
	Percent  lipgloss.Style
	Counts   lipgloss.Style
	Location lipgloss.Style
	Summary  lipgloss.Style
	Dim      lipgloss.Style
}

// newDuplicateTheme builds styles for w; writers that are not terminals get plain text
func newDuplicateTheme(w io.Writer) duplicateTheme {
	r := lipgloss.NewRenderer(w)
	return duplicateTheme{
		Score:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Percent:  r.NewStyle().Foreground(lipgloss.Color("221")),
		Counts:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Location: r.NewStyle().Foreground(lipgloss.Color("39")),
		Summary:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
		Dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var duplicateCSVHeader = []string{
	"path1", "path2",
	"files1", "hierarchy_files1", "files2", "hierarchy_files2",
	"common_files", "common_files_hierarchy",
	"overlap", "score",
}

// DuplicateFormatter implements domain.DuplicateOutputFormatter
type DuplicateFormatter struct {
	utils *FormatUtils
}

// NewDuplicateFormatter creates a new duplicate formatter
func NewDuplicateFormatter() *DuplicateFormatter {
	return &DuplicateFormatter{utils: NewFormatUtils()}
}

// Write formats response in the requested format
func (f *DuplicateFormatter) Write(response *domain.DuplicateResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatRecord renders one pair on a single line:
//
//	{score} pct% [common / common hierarchy] - [files / hierarchy] path1 - [files / hierarchy] path2
func FormatRecord(d *domain.DuplicateDir) string {
	return formatRecord(d, newDuplicateTheme(io.Discard))
}

func formatRecord(d *domain.DuplicateDir, theme duplicateTheme) string {
	return fmt.Sprintf("%s %s %s - %s %s - %s %s",
		theme.Score.Render("{"+FormatFixed(d.Score)+"}"),
		theme.Percent.Render(FormatFixed(d.Percent())+"%"),
		theme.Counts.Render(countPair(int64(d.CommonFiles), int64(d.CommonFilesHierarchy))),
		theme.Counts.Render(countPair(d.Files1, d.HierarchyFiles1)),
		theme.Location.Render(d.Path1),
		theme.Counts.Render(countPair(d.Files2, d.HierarchyFiles2)),
		theme.Location.Render(d.Path2),
	)
}

func countPair(direct, hierarchy int64) string {
	return "[" + FormatCount(direct) + " / " + FormatCount(hierarchy) + "]"
}

func (f *DuplicateFormatter) writeText(response *domain.DuplicateResponse, writer io.Writer) error {
	theme := newDuplicateTheme(writer)

	var b strings.Builder
	b.WriteString(f.utils.FormatMainHeader("Duplicate Directories"))

	if len(response.Duplicates) == 0 {
		b.WriteString(theme.Dim.Render("No duplicate directories found.") + "\n")
	}
	for i := range response.Duplicates {
		b.WriteString(formatRecord(&response.Duplicates[i], theme) + "\n")
	}
	b.WriteString("\n")

	if stats := response.Statistics; stats != nil {
		b.WriteString(f.utils.FormatSectionHeader("Summary"))
		mode := "direct"
		if response.AggregateHierarchy {
			mode = "hierarchy"
		}
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Mode", mode))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Files indexed", FormatCount(stats.FilesIndexed)))
		if stats.PathsRejected > 0 {
			b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Paths ignored", FormatCount(stats.PathsRejected)))
		}
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "File names", FormatCount(stats.FileNames)))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Directories", FormatCount(stats.Directories)))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Candidate pairs", FormatCount(stats.CandidatePairs+stats.AggregatedPairs)))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Duration", f.utils.FormatDuration(response.Duration)))
		b.WriteString(theme.Summary.Render(fmt.Sprintf("%s pairs reported (min %d shared files)",
			FormatCount(stats.ReportedPairs), response.MinSharedFiles)) + "\n")
	}

	_, err := io.WriteString(writer, b.String())
	if err != nil {
		return domain.NewOutputError("failed to write text report", err)
	}
	return nil
}

func (f *DuplicateFormatter) writeCSV(response *domain.DuplicateResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write(duplicateCSVHeader); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, d := range response.Duplicates {
		record := []string{
			d.Path1,
			d.Path2,
			strconv.FormatInt(d.Files1, 10),
			strconv.FormatInt(d.HierarchyFiles1, 10),
			strconv.FormatInt(d.Files2, 10),
			strconv.FormatInt(d.HierarchyFiles2, 10),
			strconv.Itoa(d.CommonFiles),
			strconv.Itoa(d.CommonFilesHierarchy),
			strconv.FormatFloat(d.Overlap, 'f', 4, 64),
			strconv.FormatFloat(d.Score, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}
