package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brightfield/csvcodec"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Report detected encoding, delimiter, and header presence",
	Long: `Info opens the file with HeaderInfer so the reader's own inference
decides whether row 0 looks like a header, reports the scheme Detect chose,
and walks the whole file to report row/column counts.

Example:
  csvcodec info data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer file.Close()

		cfg, err := resolveConfig(csvcodec.HeaderInfer)
		if err != nil {
			return err
		}

		r, err := csvcodec.NewReader(bufio.NewReader(file), cfg)
		if err != nil {
			return fmt.Errorf("error constructing reader: %w", err)
		}

		rowCount := 0
		for {
			_, err := r.ReadRow()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("error reading row: %w", err)
			}
			rowCount++
		}

		_, fieldsPerRow := r.Count()
		fmt.Fprintf(cmd.OutOrStdout(), "File: %s\n", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Encoding: %s\n", r.Encoding())
		fmt.Fprintf(cmd.OutOrStdout(), "Delimiter: %q\n", delimiter)
		fmt.Fprintf(cmd.OutOrStdout(), "Rows: %d\n", rowCount)
		fmt.Fprintf(cmd.OutOrStdout(), "Columns: %d\n", fieldsPerRow)

		if headers := r.Headers(); len(headers) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Header: detected")
			for i, h := range headers {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, h)
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Header: none")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
