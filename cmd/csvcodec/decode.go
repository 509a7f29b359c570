package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/brightfield/csvcodec"
	"github.com/brightfield/csvcodec/container"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Stream a CSV file as JSON lines",
	Long: `Decode walks the file through the container tree's unkeyed iteration
(FileDecoder.Next -> RecordDecoder.Next) and writes one JSON line per row
to stdout. When the file has a header row, object keys are header names;
otherwise rows are emitted as JSON arrays.

Example:
  csvcodec decode data.csv
  csvcodec decode --header=none data.csv`,
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

		src, err := csvcodec.NewSource(bufio.NewReader(file), cfg)
		if err != nil {
			return fmt.Errorf("error constructing source: %w", err)
		}

		headers := src.Headers()
		fd := container.NewFileDecoder(src)
		enc := json.NewEncoder(cmd.OutOrStdout())

		for {
			rec, err := fd.Next()
			if container.IsAtEnd(err) {
				break
			}
			if err != nil {
				return fmt.Errorf("error decoding row: %w", err)
			}

			values, err := decodeRecordValues(rec)
			if err != nil {
				return fmt.Errorf("error decoding row: %w", err)
			}

			if len(headers) == len(values) {
				obj := make(map[string]string, len(values))
				for i, h := range headers {
					obj[h] = values[i]
				}
				if err := enc.Encode(obj); err != nil {
					return fmt.Errorf("error writing JSON line: %w", err)
				}
				continue
			}
			if err := enc.Encode(values); err != nil {
				return fmt.Errorf("error writing JSON line: %w", err)
			}
		}
		return nil
	},
}

func decodeRecordValues(rec *container.RecordDecoder) ([]string, error) {
	var values []string
	for {
		field, err := rec.Next()
		if container.IsAtEnd(err) {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := field.Get()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

func parseHeaderPolicy(s string) (csvcodec.HeaderPolicy, error) {
	switch s {
	case "", "first-line":
		return csvcodec.HeaderFirstLine, nil
	case "none":
		return csvcodec.HeaderNone, nil
	case "infer":
		return csvcodec.HeaderInfer, nil
	default:
		return 0, fmt.Errorf("unknown --header value %q, want first-line|none|infer", s)
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("header", "first-line", "header policy: first-line|none|infer")
}
