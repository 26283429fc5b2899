package table

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
)

// Format is a supported tabular file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// Columns appended to exported tables.
const (
	ColumnMatched    = "Matched RPL"
	ColumnSimilarity = "Similarity (%)"
	ColumnConfidence = "Confidence"
)

// Dataset is a loaded table: its header row and one record per data row.
type Dataset struct {
	Name    string
	Headers []string
	Records []model.Record
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "tsv", "tab":
		return FormatTSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatTSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, name)
	}
}

// FromResults rebuilds a two-column dataset from stored results, for
// re-exporting a run whose source file is no longer at hand.
func FromResults(customerField, referenceField string, results []model.MatchResult) *Dataset {
	ds := &Dataset{
		Headers: []string{customerField, referenceField},
		Records: make([]model.Record, 0, len(results)),
	}
	if customerField == referenceField {
		ds.Headers = ds.Headers[:1]
	}
	for _, r := range results {
		ds.Records = append(ds.Records, model.NewRecord(
			model.Field{Name: customerField, Value: model.Text(r.CustomerText)},
			model.Field{Name: referenceField, Value: model.Text(r.OriginalReferenceText)},
		))
	}
	return ds
}
