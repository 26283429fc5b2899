package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/service"
)

// Writer implements service.ReportWriter for Google Sheets. Each Write
// fills one tab named after the report title, replacing earlier contents.
type Writer struct {
	service       *sheets.Service
	logger        *slog.Logger
	spreadsheetID string
	config        Config
}

var _ service.ReportWriter = (*Writer)(nil)

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriterWithService(srv, config, logger), nil
}

func newWriterWithService(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.SpreadsheetName == "" {
		config.SpreadsheetName = DefaultSpreadsheetName
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}
}

// SpreadsheetURL returns the browser URL of the spreadsheet written to,
// or "" before the first successful Write.
func (w *Writer) SpreadsheetURL() string {
	if w.spreadsheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + w.spreadsheetID
}

// Write implements the ReportWriter interface.
func (w *Writer) Write(ctx context.Context, title string, header []string, rows [][]string) error {
	title = sheetTitle(title)

	w.logger.Info("starting sheet export",
		"title", title,
		"rows", len(rows))

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}

	var (
		spreadsheetID string
		sheetID       int64
	)
	err := common.WithRetry(ctx, func() error {
		var prepErr error
		spreadsheetID, sheetID, prepErr = w.prepareSheet(ctx, title)
		return prepErr
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}

	values := w.prepareValues(header, rows)

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, title, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, sheetID, header, len(values))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.spreadsheetID = spreadsheetID
	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"title", title,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// prepareSheet finds or creates the spreadsheet and an empty tab named title.
func (w *Writer) prepareSheet(ctx context.Context, title string) (string, int64, error) {
	if w.config.SpreadsheetID == "" && w.spreadsheetID == "" {
		return w.createSpreadsheet(ctx, title)
	}

	spreadsheetID := w.config.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = w.spreadsheetID
	}

	existing, err := w.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to access spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range existing.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, quoteRange(title, ""), &sheets.ClearValuesRequest{}).
				Context(ctx).
				Do()
			if err != nil {
				return "", 0, fmt.Errorf("unable to clear sheet %q: %w", title, err)
			}
			return spreadsheetID, sheet.Properties.SheetId, nil
		}
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to add sheet %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return "", 0, common.Permanent(fmt.Errorf("add sheet %q: empty reply", title))
	}

	return spreadsheetID, resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (w *Writer) createSpreadsheet(ctx context.Context, title string) (string, int64, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: title,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	var sheetID int64
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		sheetID = created.Sheets[0].Properties.SheetId
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, sheetID, nil
}

// prepareValues converts rows for the API, writing configured numeric
// columns as numbers.
func (w *Writer) prepareValues(header []string, rows [][]string) [][]any {
	numeric := make(map[int]bool)
	for i, h := range header {
		for _, name := range w.config.NumericColumns {
			if h == name {
				numeric[i] = true
			}
		}
	}

	values := make([][]any, 0, len(rows)+1)

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	values = append(values, headerRow)

	for _, row := range rows {
		out := make([]any, len(row))
		for i, cell := range row {
			out[i] = cell
			if numeric[i] {
				if n, err := strconv.ParseFloat(cell, 64); err == nil {
					out[i] = n
				}
			}
		}
		values = append(values, out)
	}

	return values
}

// writeData writes the values in batches to avoid API limits. RAW input
// keeps names that look like formulas as plain text.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := quoteRange(title, fmt.Sprintf("A%d", i+1))
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes the header, formats numeric columns and
// sizes columns to fit.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, header []string, totalRows int) error {
	columns := int64(len(header))

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   columns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   columns,
				},
			},
		},
	}

	for i, h := range header {
		for _, name := range w.config.NumericColumns {
			if h != name {
				continue
			}
			requests = append(requests, &sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    1,
						EndRowIndex:      int64(totalRows),
						StartColumnIndex: int64(i),
						EndColumnIndex:   int64(i) + 1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							NumberFormat: &sheets.NumberFormat{
								Type:    "NUMBER",
								Pattern: "0.00",
							},
						},
					},
					Fields: "userEnteredFormat.numberFormat",
				},
			})
		}
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

// sheetTitle makes title usable as a tab name.
func sheetTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Results"
	}
	title = strings.NewReplacer("[", "(", "]", ")", ":", "-", "*", "", "?", "", "/", "-", `\`, "-").Replace(title)
	if r := []rune(title); len(r) > 100 {
		title = string(r[:100])
	}
	return title
}

// quoteRange builds an A1 range on the named tab.
func quoteRange(title, cell string) string {
	quoted := "'" + strings.ReplaceAll(title, "'", "''") + "'"
	if cell == "" {
		return quoted
	}
	return quoted + "!" + cell
}
