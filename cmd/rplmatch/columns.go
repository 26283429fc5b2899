package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/rplmatch/internal/cli"
	"github.com/Veraticus/rplmatch/internal/common"
	"github.com/Veraticus/rplmatch/internal/table"
)

func columnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <file>",
		Short: "List a file's columns and the ones match would use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd.OutOrStdout(), args[0])
		},
	}
}

func runColumns(w io.Writer, path string) error {
	ds, err := table.ReadFile(path)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read %s", path), err)
	}

	selector, err := resolveSelector(ds.Headers, "", "")
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, h := range ds.Headers {
		role := ""
		switch {
		case h == selector.CustomerField && h == selector.ReferenceField:
			role = cli.StyleWarning("customer + reference")
		case h == selector.CustomerField:
			role = cli.StyleSuccess("customer")
		case h == selector.ReferenceField:
			role = cli.StyleInfo("reference")
		}
		fmt.Fprintf(&b, "%2d. %-30s %s\n", i+1, h, role)
	}
	fmt.Fprintf(&b, "\n%d data rows", len(ds.Records))

	_, err = fmt.Fprintln(w, cli.RenderBox(cli.FolderIcon+" "+ds.Name, b.String()))
	return err
}
