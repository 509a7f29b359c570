package main

import (
	"fmt"

	"github.com/brightfield/csvcodec"
)

// resolveConfig turns the persistent delimiter/quote/trim flags into a
// csvcodec.Config, the way ooyeku/csv_parser's parseCmd builds a pkg.Config
// from the same three flags.
func resolveConfig(header csvcodec.HeaderPolicy) (csvcodec.Config, error) {
	delimRunes := []rune(delimiter)
	if len(delimRunes) != 1 {
		return csvcodec.Config{}, fmt.Errorf("--delimiter must be exactly one character, got %q", delimiter)
	}
	quoteRunes := []rune(quote)
	if len(quoteRunes) != 1 {
		return csvcodec.Config{}, fmt.Errorf("--quote must be exactly one character, got %q", quote)
	}

	cfg := csvcodec.Config{
		FieldDelimiter: delimRunes,
		EscapeScalar:   quoteRunes[0],
		Header:         header,
	}
	if trim {
		cfg.Trim = csvcodec.TrimWhitespace
	}
	return cfg, nil
}
