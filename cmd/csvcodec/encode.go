package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brightfield/csvcodec"
	"github.com/brightfield/csvcodec/container"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Write CSV from JSON lines read on stdin",
	Long: `Encode reads one JSON value per line from stdin and writes it through
the container tree's unkeyed write cursor (FileEncoder.Next) into file. Each
line must be either a JSON array of field values, or a JSON object - in
which case --headers names the column order, since JSON object key order
is not preserved by Go's decoder.

Example:
  csvcodec decode --header=none in.csv | csvcodec encode out.csv
  csvcodec encode --headers=name,age out.csv < rows.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headersFlag, err := cmd.Flags().GetString("headers")
		if err != nil {
			return err
		}
		var headers []string
		if headersFlag != "" {
			headers = strings.Split(headersFlag, ",")
		}

		out, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("error creating file: %w", err)
		}
		defer out.Close()

		cfg, err := resolveConfig(csvcodec.HeaderNone)
		if err != nil {
			return err
		}

		sink, err := csvcodec.NewSink(out, cfg, headers)
		if err != nil {
			return fmt.Errorf("error constructing sink: %w", err)
		}
		fe := container.NewFileEncoder(sink)

		dec := json.NewDecoder(bufio.NewReader(cmd.InOrStdin()))
		for {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("error reading JSON line: %w", err)
			}

			values, err := decodeJSONRow(raw, headers)
			if err != nil {
				return err
			}

			rec := fe.Next()
			for _, v := range values {
				field := rec.Next()
				if err := field.Set(v); err != nil {
					return fmt.Errorf("error writing field: %w", err)
				}
			}
		}

		if err := fe.Complete(); err != nil {
			return fmt.Errorf("error completing encoding: %w", err)
		}
		return nil
	},
}

// decodeJSONRow accepts either a JSON array of strings or a JSON object,
// resolved against headers (required for the object form, since map key
// order isn't stable).
func decodeJSONRow(raw json.RawMessage, headers []string) ([]string, error) {
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr, nil
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("line is neither a JSON array nor a JSON object: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("JSON object rows require --headers to fix the column order")
	}
	values := make([]string, len(headers))
	for i, h := range headers {
		values[i] = obj[h]
	}
	return values, nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("headers", "", "comma-separated header row to write and/or resolve JSON object keys against")
}
