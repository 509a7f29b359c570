package csvcodec

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/brightfield/csvcodec/rowbuffer"
)

func readAll(t *testing.T, r *Reader) [][]string {
	t.Helper()
	var rows [][]string
	for {
		row, err := r.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadRow() returned unexpected error: %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestReaderReadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cfg   Config
		want  [][]string
	}{
		{
			name:  "basicRecords",
			input: "one,two\nthree,four\n",
			want:  [][]string{{"one", "two"}, {"three", "four"}},
		},
		{
			name:  "finalRecordWithoutTerminator",
			input: "alpha,beta,gamma",
			want:  [][]string{{"alpha", "beta", "gamma"}},
		},
		{
			name:  "windowsLineEndings",
			input: "a,b\r\nc,d\r\n",
			cfg:   Config{RowDelimiter: []rune("\r\n")},
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "quotedComma",
			input: "a,\"b,b\",c\n",
			want:  [][]string{{"a", "b,b", "c"}},
		},
		{
			name:  "escapedQuote",
			input: "a,\"b\"\"c\",d\n",
			want:  [][]string{{"a", "b\"c", "d"}},
		},
		{
			name:  "embeddedNewline",
			input: "a,\"b\nc\",d\n",
			want:  [][]string{{"a", "b\nc", "d"}},
		},
		{
			name:  "emptyFields",
			input: ",,\n",
			want:  [][]string{{"", "", ""}},
		},
		{
			name:  "customComma",
			input: "left;right\nup;down\n",
			cfg:   Config{FieldDelimiter: []rune{';'}},
			want:  [][]string{{"left", "right"}, {"up", "down"}},
		},
		{
			name:  "customQuote",
			input: "alpha,'beta''gamma',delta\n",
			cfg:   Config{EscapeScalar: '\''},
			want:  [][]string{{"alpha", "beta'gamma", "delta"}},
		},
		{
			name:  "quotedEOF",
			input: "\"quoted\"",
			want:  [][]string{{"quoted"}},
		},
		{
			name:  "multiScalarDelimiters",
			input: "a::b||c::d||e::f||",
			cfg:   Config{FieldDelimiter: []rune("::"), RowDelimiter: []rune("||")},
			want:  [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name:  "bomIsConsumed",
			input: "\xEF\xBB\xBF" + "α,β\n",
			want:  [][]string{{"α", "β"}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader(tc.input), tc.cfg)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}

			rows := readAll(t, r)
			if !reflect.DeepEqual(rows, tc.want) {
				t.Fatalf("rows mismatch:\n got: %#v\nwant: %#v", rows, tc.want)
			}
		})
	}
}

func TestReaderTrim(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("  a  , b,c \n"), Config{Trim: TrimWhitespace})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	rows := readAll(t, r)
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("trimmed rows = %#v, want %#v", rows, want)
	}
}

func TestReaderTrimNeverAppliesInsideQuotes(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("\" a \",b\n"), Config{Trim: TrimWhitespace})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	rows := readAll(t, r)
	want := [][]string{{" a ", "b"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %#v, want %#v", rows, want)
	}
}

func TestReaderHeaderFirstLine(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a,b,c\n1,2,3\n"), Config{Header: HeaderFirstLine})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	rows := readAll(t, r)
	if !reflect.DeepEqual(r.Headers(), []string{"a", "b", "c"}) {
		t.Fatalf("Headers() = %#v, want [a b c]", r.Headers())
	}
	if !reflect.DeepEqual(rows, [][]string{{"1", "2", "3"}}) {
		t.Fatalf("rows = %#v", rows)
	}
}

func TestReaderHeaderInfer(t *testing.T) {
	t.Parallel()

	t.Run("plausibleHeaderIsExcluded", func(t *testing.T) {
		t.Parallel()
		r, err := NewReader(strings.NewReader("name,age\nbob,30\n"), Config{Header: HeaderInfer})
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		rows := readAll(t, r)
		if r.Headers() == nil {
			t.Fatalf("expected inferred headers")
		}
		if !reflect.DeepEqual(rows, [][]string{{"bob", "30"}}) {
			t.Fatalf("rows = %#v", rows)
		}
	})

	t.Run("duplicateFieldsTreatedAsData", func(t *testing.T) {
		t.Parallel()
		r, err := NewReader(strings.NewReader("a,a\n1,2\n"), Config{Header: HeaderInfer})
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		rows := readAll(t, r)
		if r.Headers() != nil {
			t.Fatalf("expected no inferred headers, got %#v", r.Headers())
		}
		if !reflect.DeepEqual(rows, [][]string{{"a", "a"}, {"1", "2"}}) {
			t.Fatalf("rows = %#v", rows)
		}
	})

	t.Run("emptyFieldTreatedAsData", func(t *testing.T) {
		t.Parallel()
		r, err := NewReader(strings.NewReader("a,\n1,2\n"), Config{Header: HeaderInfer})
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		readAll(t, r)
		if r.Headers() != nil {
			t.Fatalf("expected no inferred headers")
		}
	})
}

func TestReaderWidthInvariant(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a,b\nc\n"), Config{})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if _, err := r.ReadRow(); err != nil {
		t.Fatalf("first ReadRow() error = %v", err)
	}
	_, err = r.ReadRow()
	var cerr *CodecError
	if !errors.As(err, &cerr) || cerr.Kind != KindInvalidInput {
		t.Fatalf("ReadRow() error = %v, want KindInvalidInput", err)
	}
	if got, _ := cerr.Context["row_index"].(int); got != 1 {
		t.Fatalf("error context row_index = %v, want 1", cerr.Context["row_index"])
	}
	if r.Status() != StatusFailed {
		t.Fatalf("Status() = %v, want StatusFailed", r.Status())
	}
	if _, err2 := r.ReadRow(); err2 != err {
		t.Fatalf("reader should return the same error once failed")
	}
}

func TestReaderUnterminatedQuote(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("\"unterminated,a\n"), Config{})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	_, err = r.ReadRow()
	var cerr *CodecError
	if !errors.As(err, &cerr) || cerr.Kind != KindInvalidInput {
		t.Fatalf("ReadRow() error = %v, want KindInvalidInput", err)
	}
}

func TestReaderBareQuoteAfterClose(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("\"a\"b,c\n"), Config{})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	_, err = r.ReadRow()
	var cerr *CodecError
	if !errors.As(err, &cerr) || cerr.Kind != KindInvalidInput {
		t.Fatalf("ReadRow() error = %v, want KindInvalidInput", err)
	}
}

func TestReaderSequentialBufferExpiredCache(t *testing.T) {
	t.Parallel()

	input := "1\n2\n3\n4\n5\n6\n"
	src, err := NewSource(strings.NewReader(input), Config{ReadBuffer: rowbuffer.ReadSequential})
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	for i := 0; i < 6; i++ {
		if _, err := src.Field(i, 0); err != nil {
			t.Fatalf("Field(%d,0) error = %v", i, err)
		}
	}
	if _, err := src.Field(2, 0); err == nil {
		t.Fatalf("Field(2,0) expected ExpiredCache error after sequential eviction")
	}
}
