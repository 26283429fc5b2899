package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/storage"
	"github.com/Veraticus/rplmatch/internal/table"
	"github.com/Veraticus/rplmatch/internal/tui"
)

type showOptions struct {
	export string
	limit  int
	review bool
}

func showCmd() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a saved run",
		Long: `Show a saved run and its results. The run ID may be shortened to any
unique prefix, such as the eight characters printed by history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return common.NewUserError("could not open run history", err)
			}
			defer closeStorage(store)

			return runShow(cmd.Context(), cmd.OutOrStdout(), store, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.export, "export", "e", "", "write the run's results to a .csv, .tsv or .xlsx file")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 50, "number of results to print (0 for all)")
	cmd.Flags().BoolVar(&opts.review, "review", false, "browse results in an interactive table")

	return cmd
}

func runShow(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, idOrPrefix string, opts showOptions) error {
	run, results, err := loadRun(ctx, store, idOrPrefix)
	if err != nil {
		return err
	}

	if opts.export != "" {
		ds := table.FromResults(run.CustomerField, run.ReferenceField, results)
		if err := table.ExportFile(opts.export, ds, results); err != nil {
			return common.NewUserError(fmt.Sprintf("could not write %s", opts.export), err)
		}
		_, err = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Wrote %s", opts.export)))
		return err
	}

	if opts.review {
		return tui.Review(ctx, results, []tui.Option{
			tui.WithTitle(fmt.Sprintf("%s Run %s · %s", cli.MatchIcon, cli.ShortID(run.ID), run.SourceFile)),
		})
	}

	fmt.Fprintln(w, cli.RenderRunDetails(run))
	fmt.Fprintln(w, cli.RenderTierSummary("Tiers", run.TierCounts, run.RecordCount))
	_, err = fmt.Fprintln(w, cli.RenderResults(results, opts.limit))
	return err
}
