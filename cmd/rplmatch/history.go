package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/storage"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved match runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return common.NewUserError("could not open run history", err)
			}
			defer closeStorage(store)

			return runHistory(cmd.Context(), cmd.OutOrStdout(), store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return common.NewUserError("could not open run history", err)
			}
			defer closeStorage(store)

			return runHistoryDelete(cmd.Context(), cmd.OutOrStdout(), store, args[0])
		},
	}
}

func runHistory(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, limit int) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, cli.RenderRunList(runs))
	return err
}

func runHistoryDelete(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, idOrPrefix string) error {
	run, _, err := loadRun(ctx, store, idOrPrefix)
	if err != nil {
		return err
	}

	if err := store.DeleteRun(ctx, run.ID); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Deleted run %s", cli.ShortID(run.ID))))
	return err
}
