package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/model"
)

// ReadFile loads the first sheet (or the whole file for CSV/TSV) at path.
func ReadFile(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var ds *Dataset
	switch format {
	case FormatXLSX:
		ds, err = readXLSX(path)
	default:
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		defer func() { _ = f.Close() }()
		ds, err = ReadDelimited(f, format)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	ds.Name = filepath.Base(path)
	return ds, nil
}

// ReadDelimited parses CSV or TSV text. A UTF-8 or UTF-16 byte order mark
// is honored and stripped.
func ReadDelimited(r io.Reader, format Format) (*Dataset, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	if format == FormatTSV {
		reader.Comma = '\t'
		reader.LazyQuotes = true
	}
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return build(rows, func(_, _ int, cell string) model.Value {
		return inferValue(cell)
	})
}

func readXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrNoRecords
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	return build(rows, func(row, col int, cell string) model.Value {
		axis, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return inferValue(cell)
		}
		typ, err := f.GetCellType(sheet, axis)
		if err != nil {
			return inferValue(cell)
		}
		switch typ {
		case excelize.CellTypeBool:
			return model.Bool(cell == "1" || strings.EqualFold(cell, "true"))
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			if cell == "" {
				return model.Empty()
			}
			return model.Text(cell)
		case excelize.CellTypeNumber, excelize.CellTypeUnset:
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				return model.Number(n)
			}
			return inferValue(cell)
		default:
			return inferValue(cell)
		}
	})
}

// build turns raw rows into a dataset. The first row is the header; fully
// blank rows are skipped and short rows are padded with empty values.
func build(rows [][]string, cellValue func(row, col int, cell string) model.Value) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, common.ErrNoRecords
	}

	headers := headerNames(rows[0])
	if len(headers) == 0 {
		return nil, errors.New("header row is empty")
	}

	ds := &Dataset{
		Headers: headers,
		Records: make([]model.Record, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		fields := make([]model.Field, len(headers))
		for col, name := range headers {
			value := model.Empty()
			if col < len(row) {
				value = cellValue(i+1, col, row[col])
			}
			fields[col] = model.Field{Name: name, Value: value}
		}
		ds.Records = append(ds.Records, model.NewRecord(fields...))
	}

	return ds, nil
}

// headerNames cleans header cells, names blank ones by position and
// suffixes repeats so every column is addressable.
func headerNames(row []string) []string {
	last := len(row)
	for last > 0 && strings.TrimSpace(row[last-1]) == "" {
		last--
	}

	names := make([]string, 0, last)
	taken := make(map[string]bool, last)
	next := make(map[string]int, last)
	for i, cell := range row[:last] {
		base := norm.NFKC.String(strings.TrimSpace(cell))
		if base == "" {
			base = fmt.Sprintf("Column %d", i+1)
		}
		name := base
		for n := max(next[base], 1); taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
			next[base] = n + 1
		}
		taken[name] = true
		names = append(names, name)
	}
	return names
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// inferValue types a text cell. Only canonical spellings are typed, so
// values coerce back to the exact cell text: "007" and "TRUE" stay text.
func inferValue(cell string) model.Value {
	if cell == "" {
		return model.Empty()
	}

	trimmed := strings.TrimSpace(cell)
	switch trimmed {
	case "true":
		return model.Bool(true)
	case "false":
		return model.Bool(false)
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		if strconv.FormatFloat(n, 'f', -1, 64) == trimmed {
			return model.Number(n)
		}
	}

	return model.Text(cell)
}
