package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/rplmatch/internal/model"
)

// ShortID trims a run ID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RenderRunList renders saved runs as a table, most recent first.
func RenderRunList(runs []model.Run) string {
	if len(runs) == 0 {
		return SubtleStyle.Render("No saved runs.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("ID", "Created", "Source", "Records", "High", "Medium", "Low", "No Match").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return BoldStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, run := range runs {
		source := run.SourceFile
		if source == "" {
			source = "-"
		}
		t.Row(
			ShortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			source,
			strconv.Itoa(run.RecordCount),
			strconv.Itoa(run.TierCounts[model.TierHigh]),
			strconv.Itoa(run.TierCounts[model.TierMedium]),
			strconv.Itoa(run.TierCounts[model.TierLow]),
			strconv.Itoa(run.TierCounts[model.TierNoMatch]),
		)
	}

	return t.Render()
}

// RenderRunDetails renders the header block shown for a single run.
func RenderRunDetails(run *model.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Run:"), run.ID)
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Created:"), run.CreatedAt.Local().Format(time.RFC1123))
	if run.SourceFile != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Source:"), run.SourceFile)
	}
	fmt.Fprintf(&b, "%s %s → %s\n", BoldStyle.Render("Columns:"), run.CustomerField, run.ReferenceField)
	fmt.Fprintf(&b, "%s %d records, %d distinct RPL entries, %s",
		BoldStyle.Render("Size:"), run.RecordCount, run.CandidateCount, run.Duration.Round(time.Millisecond))
	if run.Summary != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", BoldStyle.Render("Summary:"), run.Summary)
	}
	return RenderBox(FolderIcon+" Saved run", b.String())
}

// RenderResults renders up to limit results as a table. A limit of zero
// or less renders all of them.
func RenderResults(results []model.MatchResult, limit int) string {
	if len(results) == 0 {
		return SubtleStyle.Render("No results.")
	}

	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("#", "Customer", "Matched RPL", "Similarity", "Confidence").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return BoldStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range shown {
		t.Row(
			strconv.Itoa(r.SourceIndex+1),
			r.CustomerText,
			r.MatchedReferenceText,
			fmt.Sprintf("%.2f%%", r.SimilarityPercent),
			FormatTier(r.Tier),
		)
	}

	out := t.Render()
	if len(shown) < len(results) {
		out += "\n" + SubtleStyle.Render(fmt.Sprintf("… %d more rows", len(results)-len(shown)))
	}
	return out
}
