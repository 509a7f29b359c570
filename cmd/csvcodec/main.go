// Command csvcodec exposes the decode/encode/validate/info subcommands
// described in SPEC_FULL.md's external-interfaces section, mirroring
// ooyeku/csv_parser's cmd/ package shape.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
