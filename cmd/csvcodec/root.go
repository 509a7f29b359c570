package main

import (
	"github.com/spf13/cobra"
)

var (
	delimiter string
	quote     string
	trim      bool
)

// rootCmd is the entry point every subcommand registers against in its
// init, following ooyeku/csv_parser's cmd package convention.
var rootCmd = &cobra.Command{
	Use:   "csvcodec",
	Short: "Stream, validate, and inspect CSV data through the container tree",
	Long: `csvcodec reads and writes CSV through the same Reader/Writer and
container tree the library exposes, instead of a separate CLI-only parser.

Example:
  csvcodec decode data.csv
  csvcodec encode data.csv < rows.jsonl
  csvcodec validate data.csv
  csvcodec info data.csv`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&delimiter, "delimiter", "d", ",", "field delimiter character")
	rootCmd.PersistentFlags().StringVarP(&quote, "quote", "q", "\"", "quote/escape character")
	rootCmd.PersistentFlags().BoolVarP(&trim, "trim", "t", false, "trim whitespace from unquoted fields")
}
