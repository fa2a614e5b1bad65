/* Copyright (c) 2021 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/spf13/cobra"
)

var output string

func init() {
	exportCmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"csv", "download"},
		Short:   "Export reservations as CSV",
		Long: `Export all reservations as CSV

The file is UTF-8 with a byte order mark so spreadsheet tools pick the right
encoding. Without --output the file is written to the current directory under
a name carrying the export time. Use --output - to write to standard output.
`,
		Args: cobra.NoArgs,
		RunE: export,
	}

	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output filename or - for stdout")

	RootCmd.AddCommand(exportCmd)
}

func export(cmd *cobra.Command, args []string) error {
	exp, err := sess.Export(now())
	if errors.Is(err, session.ErrNothingToExport) {
		return errors.New(sess.Messages().NothingToExport)
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(exp.Body)
		return err
	}

	filename := output
	if filename == "" {
		filename = exp.Filename
	}

	if err := os.WriteFile(filename, exp.Body, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", filename)

	return nil
}
