package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/rplmatch/internal/model"
)

func exportFixture() (*Dataset, []model.MatchResult) {
	ds := &Dataset{
		Headers: []string{"Customer", "RPL"},
		Records: []model.Record{
			model.NewRecord(
				model.Field{Name: "Customer", Value: model.Text("jon smith")},
				model.Field{Name: "RPL", Value: model.Text("John Smith Ltd")},
			),
			model.NewRecord(
				model.Field{Name: "Customer", Value: model.Empty()},
				model.Field{Name: "RPL", Value: model.Number(42)},
			),
		},
	}
	results := []model.MatchResult{
		{CustomerText: "jon smith", MatchedReferenceText: "John Smith Ltd", Tier: model.TierMedium, Similarity: 0.642857, SimilarityPercent: 64.29, SourceIndex: 0},
		{CustomerText: "", OriginalReferenceText: "42", MatchedReferenceText: "N/A", Tier: model.TierNoMatch, SourceIndex: 1},
	}
	return ds, results
}

func TestReport(t *testing.T) {
	ds, results := exportFixture()

	header, rows := Report(ds, results)

	assert.Equal(t, []string{"Customer", "RPL", ColumnMatched, ColumnSimilarity, ColumnConfidence}, header)
	assert.Equal(t, [][]string{
		{"jon smith", "John Smith Ltd", "John Smith Ltd", "64.29", "Medium"},
		{"", "42", "N/A", "0.00", "No Match"},
	}, rows)
}

func TestReport_JoinsBySourceIndex(t *testing.T) {
	ds, results := exportFixture()
	reversed := []model.MatchResult{results[1], results[0]}

	_, rows := Report(ds, reversed)

	assert.Equal(t, "42", rows[0][1])
	assert.Equal(t, "jon smith", rows[1][0])
}

func TestReport_MissingSource(t *testing.T) {
	_, results := exportFixture()
	results[0].SourceIndex = 99

	header, rows := Report(nil, results)
	assert.Equal(t, []string{ColumnMatched, ColumnSimilarity, ColumnConfidence}, header)
	assert.Equal(t, "John Smith Ltd", rows[0][0])

	ds, _ := exportFixture()
	_, rows = Report(ds, results)
	assert.Equal(t, []string{"", "", "John Smith Ltd", "64.29", "Medium"}, rows[0])
}

func TestExport_Delimited(t *testing.T) {
	ds, results := exportFixture()

	var csvOut bytes.Buffer
	require.NoError(t, Export(&csvOut, FormatCSV, ds, results))
	lines := strings.Split(strings.TrimSpace(csvOut.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Customer,RPL,Matched RPL,Similarity (%),Confidence", lines[0])
	assert.Equal(t, "jon smith,John Smith Ltd,John Smith Ltd,64.29,Medium", lines[1])

	var tsvOut bytes.Buffer
	require.NoError(t, Export(&tsvOut, FormatTSV, ds, results))
	assert.True(t, strings.HasPrefix(tsvOut.String(), "Customer\tRPL\tMatched RPL\t"))
}

func TestExport_RoundTripCSV(t *testing.T) {
	ds, results := exportFixture()

	var out bytes.Buffer
	require.NoError(t, Export(&out, FormatCSV, ds, results))

	back, err := ReadDelimited(&out, FormatCSV)
	require.NoError(t, err)
	require.Len(t, back.Records, 2)
	assert.Equal(t, "Medium", back.Records[0].Text(ColumnConfidence))
	assert.Equal(t, "64.29", back.Records[0].Text(ColumnSimilarity))
}

func TestExportFile_XLSX(t *testing.T) {
	ds, results := exportFixture()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, ExportFile(path, ds, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{resultsSheet}, f.GetSheetList())

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ColumnConfidence, rows[0][4])
	assert.Equal(t, "jon smith", rows[1][0])

	typ, err := f.GetCellType(resultsSheet, "D2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "similarity is stored as a number")

	raw, err := f.GetCellValue(resultsSheet, "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "64.29", raw)
}

func TestExportFile_UnsupportedExtension(t *testing.T) {
	ds, results := exportFixture()
	require.Error(t, ExportFile(filepath.Join(t.TempDir(), "out.pdf"), ds, results))
}

func TestFromResults(t *testing.T) {
	_, results := exportFixture()

	ds := FromResults("Customer", "RPL", results)
	assert.Equal(t, []string{"Customer", "RPL"}, ds.Headers)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "jon smith", ds.Records[0].Text("Customer"))

	same := FromResults("Name", "Name", results)
	assert.Equal(t, []string{"Name"}, same.Headers)
}
