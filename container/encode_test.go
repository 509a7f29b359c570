package container_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/brightfield/csvcodec"
	"github.com/brightfield/csvcodec/container"
)

func TestFileEncoderUnkeyedWrite(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := csvcodec.NewSink(&sb, csvcodec.Config{}, nil)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	file := container.NewFileEncoder(sink)

	rows := [][]string{{"a", "b"}, {"c", "d"}}
	for _, row := range rows {
		rec := file.Next()
		for _, v := range row {
			if err := rec.Next().Set(v); err != nil {
				t.Fatalf("field.Set(%q) error = %v", v, err)
			}
		}
	}
	if err := file.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := "a,b\nc,d\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
}

func TestFieldEncoderSetTwiceFailsAlreadyParsed(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := csvcodec.NewSink(&sb, csvcodec.Config{}, nil)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	rec := container.NewFileEncoder(sink).Next()
	field := rec.Next()
	if err := field.Set("1"); err != nil {
		t.Fatalf("first Set() error = %v", err)
	}
	err = field.Set("2")
	var cerr *csvcodec.CodecError
	if !errors.As(err, &cerr) || cerr.Kind != csvcodec.KindAlreadyParsed {
		t.Fatalf("second Set() error = %v, want KindAlreadyParsed", err)
	}
}

func TestFieldEncoderCannotNest(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := csvcodec.NewSink(&sb, csvcodec.Config{}, nil)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	field := container.NewFileEncoder(sink).Next().Next()
	_, err = field.Next()
	var cerr *csvcodec.CodecError
	if !errors.As(err, &cerr) || cerr.Kind != csvcodec.KindInvalidNestedContainer {
		t.Fatalf("Next() on a field container error = %v, want KindInvalidNestedContainer", err)
	}
}

func TestFileEncoderSingleValue(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := csvcodec.NewSink(&sb, csvcodec.Config{}, nil)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	field, err := container.NewFileEncoder(sink).SingleValue()
	if err != nil {
		t.Fatalf("SingleValue() error = %v", err)
	}
	if err := field.Set("onlyvalue"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := sink.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := "onlyvalue\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
}
