package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// runCLI executes rootCmd with args, resetting the persistent flags each
// time since cobra/pflag state is package-global.
func runCLI(t *testing.T, stdin string, args ...string) (stdout string, err error) {
	t.Helper()

	delimiter = ","
	quote = "\""
	trim = false

	rootCmd.SetArgs(args)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))

	err = rootCmd.Execute()
	return out.String(), err
}

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
