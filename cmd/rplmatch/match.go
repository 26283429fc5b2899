package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/config"
	"github.com/Veraticus/rplmatch/internal/engine"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/service"
	"github.com/Veraticus/rplmatch/internal/sheets"
	"github.com/Veraticus/rplmatch/internal/table"
	"github.com/Veraticus/rplmatch/internal/tui"
)

// previewRows is how many results are printed when nothing else consumes them.
const previewRows = 20

type matchOptions struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	summarizer  service.Summarizer
	store       service.Storage
	reporter    service.ReportWriter
	input       string
	customer    string
	reference   string
	output      string
	workers     int
	noSave      bool
	toSheets    bool
	review      bool
	interactive bool
	summary     bool
}

func matchCmd() *cobra.Command {
	var opts matchOptions

	cmd := &cobra.Command{
		Use:   "match <file>",
		Short: "Match customer names against the restricted party list",
		Long: `Match every customer name in a CSV, TSV or XLSX file against the distinct
entries of its RPL column.

Columns are detected from the header row: the first header containing
"customer" is matched against the first header containing "rpl". Use
--customer and --reference to pick them explicitly, or --interactive to
confirm them at a prompt.

Each run is saved to history unless --no-save is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			if !cmd.Flags().Changed("workers") {
				opts.workers = viper.GetInt("matching.workers")
			}
			return runMatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.customer, "customer", "", "customer name column (default: auto-detect)")
	cmd.Flags().StringVar(&opts.reference, "reference", "", "RPL column (default: auto-detect)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write results to a .csv, .tsv or .xlsx file")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "records matched concurrently")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not save the run to history")
	cmd.Flags().BoolVar(&opts.toSheets, "sheets", false, "publish results to Google Sheets")
	cmd.Flags().BoolVar(&opts.review, "review", false, "browse results in an interactive table")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "confirm the matching columns before running")
	cmd.Flags().BoolVar(&opts.summary, "summary", true, "ask the configured LLM for a data quality note")

	return cmd
}

func runMatch(ctx context.Context, opts matchOptions) error {
	ds, err := table.ReadFile(opts.input)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read %s", opts.input), err)
	}
	if len(ds.Records) == 0 {
		fmt.Fprintln(opts.stderr, cli.FormatWarning(fmt.Sprintf("%s has no data rows", ds.Name)))
	}

	selector, err := resolveSelector(ds.Headers, opts.customer, opts.reference)
	if err != nil {
		return err
	}

	if opts.interactive {
		prompter := cli.NewCLIPrompter(opts.stdin, opts.stderr)
		selector, err = prompter.ConfirmColumns(ctx, ds.Headers, selector)
		if err != nil {
			return common.NewUserError("column selection failed", err)
		}
	}

	fmt.Fprintln(opts.stderr, cli.FormatInfo(fmt.Sprintf("Matching %s → %s in %s (%d records)",
		selector.CustomerField, selector.ReferenceField, ds.Name, len(ds.Records))))

	interrupts := cli.NewInterruptHandler(opts.stderr)
	runCtx := interrupts.HandleInterrupts(ctx, !opts.noSave)
	defer interrupts.Stop()

	session := engine.NewSession(ds.Records, selector)
	matcher := engine.New(engine.Options{
		Workers:            opts.workers,
		CheckpointInterval: viper.GetInt("matching.checkpoint_interval"),
	})

	progress := cli.NewProgress(opts.stderr, "Matching")
	err = matcher.Run(runCtx, session, progress.Update)
	progress.Finish()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return common.NewUserError("matching was interrupted", err)
		}
		return common.NewUserError("matching failed", err)
	}

	results := session.Results
	counts := engine.Tally(results)
	fmt.Fprintln(opts.stdout, cli.RenderTierSummary(ds.Name, counts, len(results)))

	var summary string
	if opts.summary {
		summary = summarize(ctx, opts.summarizer, results)
		if summary != "" {
			fmt.Fprintln(opts.stdout, cli.RenderBox(cli.InfoIcon+" Data quality", summary))
		}
	}

	if !opts.noSave {
		run := &model.Run{
			ID:             session.ID,
			SourceFile:     ds.Name,
			CustomerField:  selector.CustomerField,
			ReferenceField: selector.ReferenceField,
			RecordCount:    len(results),
			CandidateCount: session.Candidates.Len(),
			Summary:        summary,
			Duration:       session.Duration(),
		}
		if err := saveRun(ctx, opts.store, run, results); err != nil {
			return err
		}
		fmt.Fprintln(opts.stderr, cli.FormatSuccess(fmt.Sprintf("Saved run %s", cli.ShortID(run.ID))))
	}

	if opts.output != "" {
		if err := table.ExportFile(opts.output, ds, results); err != nil {
			return common.NewUserError(fmt.Sprintf("could not write %s", opts.output), err)
		}
		fmt.Fprintln(opts.stderr, cli.FormatSuccess(fmt.Sprintf("Wrote %s", opts.output)))
	}

	if opts.toSheets {
		if err := publishToSheets(ctx, opts, ds, results); err != nil {
			return err
		}
	}

	if opts.review {
		return tui.Review(ctx, results, []tui.Option{tui.WithTitle(cli.MatchIcon + " " + ds.Name)})
	}

	if opts.output == "" && !opts.toSheets {
		fmt.Fprintln(opts.stdout, cli.RenderResults(results, previewRows))
	}

	return nil
}

// summarize asks s for a note on the weaker matches. A nil s means the
// feature is not configured and yields no text.
func summarize(ctx context.Context, s service.Summarizer, results []model.MatchResult) string {
	if s == nil {
		var err error
		s, err = newSummarizer()
		if err != nil {
			slog.Warn("LLM summarizer unavailable", "error", err)
			return ""
		}
		if s == nil {
			return ""
		}
	}
	return s.Summarize(ctx, engine.SummarySamples(results))
}

// saveRun persists run to store, opening the configured database when
// store is nil.
func saveRun(ctx context.Context, store service.Storage, run *model.Run, results []model.MatchResult) error {
	if store == nil {
		db, err := initStorage(ctx)
		if err != nil {
			return common.NewUserError("could not open run history", err)
		}
		defer closeStorage(db)
		store = db
	}

	if err := store.SaveRun(ctx, run, results); err != nil {
		return common.NewUserError("could not save run to history", err)
	}
	return nil
}

// publishToSheets writes the result report to Google Sheets, building a
// writer from configuration unless one was injected.
func publishToSheets(ctx context.Context, opts matchOptions, ds *table.Dataset, results []model.MatchResult) error {
	reporter := opts.reporter
	var writer *sheets.Writer

	if reporter == nil {
		cfg, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return common.NewUserError("Google Sheets is not configured; run 'rplmatch auth sheets' first", err)
		}
		cfg.NumericColumns = []string{table.ColumnSimilarity}

		writer, err = sheets.NewWriter(ctx, *cfg, slog.Default())
		if err != nil {
			return common.NewUserError("could not connect to Google Sheets", err)
		}
		reporter = writer
	}

	header, rows := table.Report(ds, results)
	if err := reporter.Write(ctx, reportTitle(ds.Name, time.Now()), header, rows); err != nil {
		return common.NewUserError("could not write to Google Sheets", err)
	}

	msg := "Published results to Google Sheets"
	if writer != nil && writer.SpreadsheetURL() != "" {
		msg += ": " + writer.SpreadsheetURL()
	}
	fmt.Fprintln(opts.stderr, cli.FormatSuccess(msg))
	return nil
}

// reportTitle names a published sheet after its source file and the time of the run.
func reportTitle(source string, at time.Time) string {
	name := strings.TrimSuffix(source, filepath.Ext(source))
	if name == "" {
		name = "Results"
	}
	return fmt.Sprintf("%s %s", name, at.Format("2006-01-02 15:04"))
}
