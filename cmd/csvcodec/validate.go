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

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Run the reader to completion and report the first failure",
	Long: `Validate drives a Reader over the whole file, checking the row-width
invariant the way Reader.checkWidth does internally. On success it reports
row and field counts; on failure it reports the first CodecError's kind and
coding context.

Example:
  csvcodec validate data.csv
  csvcodec validate --header=none data.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		header, err := cmd.Flags().GetString("header")
		if err != nil {
			return err
		}
		policy, err := parseHeaderPolicy(header)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer file.Close()

		cfg, err := resolveConfig(policy)
		if err != nil {
			return err
		}

		r, err := csvcodec.NewReader(bufio.NewReader(file), cfg)
		if err != nil {
			return fmt.Errorf("error constructing reader: %w", err)
		}

		for {
			_, err := r.ReadRow()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				var cerr *csvcodec.CodecError
				if errors.As(err, &cerr) {
					fmt.Fprintf(cmd.OutOrStdout(), "invalid at row %d: %s\n", r.RowIndex(), cerr.Kind)
					return fmt.Errorf("validation failed: %w", err)
				}
				return err
			}
		}

		rowsRead, expectedFields := r.Count()
		fmt.Fprintf(cmd.OutOrStdout(), "File: %s\n", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Rows: %d\n", rowsRead)
		fmt.Fprintf(cmd.OutOrStdout(), "Fields per row: %d\n", expectedFields)
		fmt.Fprintln(cmd.OutOrStdout(), "Validation successful")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("header", "first-line", "header policy: first-line|none|infer")
}
