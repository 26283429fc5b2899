package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/rplmatch/internal/model"
)

const resultsSheet = "Results"

// Report lays out results as a header and string rows: the dataset's
// columns for each result's source record followed by the match columns.
// Rows follow the order of results.
func Report(ds *Dataset, results []model.MatchResult) ([]string, [][]string) {
	var headers []string
	if ds != nil {
		headers = ds.Headers
	}

	header := make([]string, 0, len(headers)+3)
	header = append(header, headers...)
	header = append(header, ColumnMatched, ColumnSimilarity, ColumnConfidence)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := make([]string, 0, len(header))
		record, ok := sourceRecord(ds, r.SourceIndex)
		for _, h := range headers {
			if ok {
				row = append(row, record.Text(h))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, r.MatchedReferenceText, FormatPercent(r.SimilarityPercent), string(r.Tier))
		rows = append(rows, row)
	}

	return header, rows
}

// FormatPercent renders a similarity percentage with two decimals.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func sourceRecord(ds *Dataset, index int) (model.Record, bool) {
	if ds == nil || index < 0 || index >= len(ds.Records) {
		return model.Record{}, false
	}
	return ds.Records[index], true
}

// ExportFile writes results to path in the format implied by its extension.
func ExportFile(path string, ds *Dataset, results []model.MatchResult) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Export(f, format, ds, results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Export writes the report produced by Report in the given format.
func Export(w io.Writer, format Format, ds *Dataset, results []model.MatchResult) error {
	header, rows := Report(ds, results)

	switch format {
	case FormatCSV, FormatTSV:
		return writeDelimited(w, format, header, rows)
	case FormatXLSX:
		return writeXLSX(w, header, rows)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

func writeDelimited(w io.Writer, format Format, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if format == FormatTSV {
		writer.Comma = '\t'
	}

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := setRow(f, 1, toCells(header, -1)); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(resultsSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	similarityCol := len(header) - 2
	for i, row := range rows {
		if err := setRow(f, i+2, toCells(row, similarityCol)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(resultsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(resultsSheet, axis, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// toCells converts a row for the workbook, storing the similarity column
// as a number.
func toCells(row []string, numericCol int) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
		if i == numericCol {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				cells[i] = n
			}
		}
	}
	return cells
}
