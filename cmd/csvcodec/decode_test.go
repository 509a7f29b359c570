package main

import (
	"strings"
	"testing"
)

func TestDecodeWithHeaderEmitsObjects(t *testing.T) {
	path := writeTempCSV(t, "name,age\nava,30\nben,25\n")

	out, err := runCLI(t, "", "decode", "--header=first-line", path)
	if err != nil {
		t.Fatalf("decode error = %v, output=%s", err, out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], `"name":"ava"`) || !strings.Contains(lines[0], `"age":"30"`) {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestDecodeWithoutHeaderEmitsArrays(t *testing.T) {
	path := writeTempCSV(t, "a,b\nc,d\n")

	out, err := runCLI(t, "", "decode", "--header=none", path)
	if err != nil {
		t.Fatalf("decode error = %v, output=%s", err, out)
	}

	want := "[\"a\",\"b\"]\n[\"c\",\"d\"]\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}
