package csvcodec

import (
	"errors"
	"strings"
	"testing"
)

func writeRows(w *Writer, rows [][]string) error {
	for _, row := range rows {
		for _, field := range row {
			if err := w.WriteField(field); err != nil {
				return err
			}
		}
		if err := w.EndRow(); err != nil {
			return err
		}
	}
	return w.EndEncoding()
}

func TestWriterWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]string
		cfg  Config
		want string
	}{
		{
			name: "basic",
			rows: [][]string{{"a", "b", "c"}},
			want: "a,b,c\n",
		},
		{
			name: "multipleRows",
			rows: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: "alpha,beta\ngamma,delta\n",
		},
		{
			name: "emptyField",
			rows: [][]string{{"", "b"}},
			want: ",b\n",
		},
		{
			name: "commaForcesQuote",
			rows: [][]string{{"alpha,beta"}},
			want: "\"alpha,beta\"\n",
		},
		{
			name: "quoteEscaping",
			rows: [][]string{{"he said \"hello\"", "plain"}},
			want: "\"he said \"\"hello\"\"\",plain\n",
		},
		{
			name: "newlineForcesQuote",
			rows: [][]string{{"multi\nline", "z"}},
			want: "\"multi\nline\",z\n",
		},
		{
			name: "customComma",
			rows: [][]string{{"a;b", "c"}},
			cfg:  Config{FieldDelimiter: []rune{';'}},
			want: "\"a;b\";c\n",
		},
		{
			name: "customQuote",
			rows: [][]string{{"alpha'beta", "plain"}},
			cfg:  Config{EscapeScalar: '\''},
			want: "'alpha''beta',plain\n",
		},
		{
			name: "useCRLF",
			rows: [][]string{{"a"}, {"b"}},
			cfg:  Config{RowDelimiter: []rune("\r\n")},
			want: "a\r\nb\r\n",
		},
		{
			name: "leadingWhitespaceForcesQuoteWhenTrimmed",
			rows: [][]string{{" a", "b"}},
			cfg:  Config{Trim: TrimWhitespace},
			want: "\" a\",b\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			w, err := NewWriter(&buf, tc.cfg, nil)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if err := writeRows(w, tc.rows); err != nil {
				t.Fatalf("writeRows() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestWriterHeaderRow(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	w, err := NewWriter(&buf, Config{}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := writeRows(w, [][]string{{"1", "2"}}); err != nil {
		t.Fatalf("writeRows() error = %v", err)
	}
	want := "a,b\n1,2\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output got %q want %q", got, want)
	}
}

func TestWriterFieldCountMismatchFails(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	w, err := NewWriter(&buf, Config{}, nil)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.WriteField("a"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := w.WriteField("b"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := w.EndRow(); err != nil {
		t.Fatalf("first EndRow() error = %v", err)
	}

	if err := w.WriteField("c"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	err = w.EndRow()
	var cerr *CodecError
	if !errors.As(err, &cerr) || cerr.Kind != KindInvalidFieldCount {
		t.Fatalf("EndRow() error = %v, want KindInvalidFieldCount", err)
	}
	if w.Status() != StatusFailed {
		t.Fatalf("Status() = %v, want StatusFailed", w.Status())
	}
}

type flushFailWriter struct {
	fail error
}

func (f *flushFailWriter) Write([]byte) (int, error) {
	return 0, f.fail
}

func TestWriterFlushError(t *testing.T) {
	t.Parallel()

	exp := errors.New("flush failed")
	w, err := NewWriter(&flushFailWriter{fail: exp}, Config{}, nil)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.WriteField("a"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := w.EndRow(); err != nil {
		t.Fatalf("EndRow() error = %v", err)
	}
	if err := w.EndEncoding(); !errors.Is(err, exp) {
		t.Fatalf("expected flush error %v, got %v", exp, err)
	}
	if err := w.WriteField("b"); !errors.Is(err, exp) {
		t.Fatalf("WriteField() should return stored error %v, got %v", exp, err)
	}
}
