package csvcodec

import (
	"strings"
	"testing"

	"github.com/brightfield/csvcodec/rowbuffer"
)

func TestSinkPutInOrderFlushesImmediately(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := NewSink(&sb, Config{WriteBuffer: rowbuffer.WriteAssembled}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.Put(0, 0, "1"); err != nil {
		t.Fatalf("Put(0,0) error = %v", err)
	}
	if err := sink.Put(0, 1, "2"); err != nil {
		t.Fatalf("Put(0,1) error = %v", err)
	}
	if err := sink.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := "a,b\n1,2\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
}

func TestSinkPutOutOfOrderBuffersUntilAssembled(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := NewSink(&sb, Config{WriteBuffer: rowbuffer.WriteAssembled}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	// Stage row 1 before row 0 is complete; nothing should flush yet.
	if err := sink.Put(1, 1, "y"); err != nil {
		t.Fatalf("Put(1,1) error = %v", err)
	}
	if err := sink.Put(1, 0, "x"); err != nil {
		t.Fatalf("Put(1,0) error = %v", err)
	}
	if err := sink.Put(0, 0, "1"); err != nil {
		t.Fatalf("Put(0,0) error = %v", err)
	}
	if err := sink.Put(0, 1, "2"); err != nil {
		t.Fatalf("Put(0,1) error = %v", err)
	}
	if err := sink.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := "a,b\n1,2\nx,y\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
}

func TestSinkPutBehindFocusFailsUnderSequential(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := NewSink(&sb, Config{WriteBuffer: rowbuffer.WriteSequential}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.Put(0, 0, "1"); err != nil {
		t.Fatalf("Put(0,0) error = %v", err)
	}
	if err := sink.Put(0, 1, "2"); err != nil {
		t.Fatalf("Put(0,1) error = %v", err)
	}
	if err := sink.Put(0, 0, "stale"); err == nil {
		t.Fatalf("Put(0,0) after row 0 flushed expected KindWritingSurpassed")
	}
}

func TestSinkCompletePadsMissingFields(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sink, err := NewSink(&sb, Config{WriteBuffer: rowbuffer.WriteKeepAll}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.Put(0, 0, "1"); err != nil {
		t.Fatalf("Put(0,0) error = %v", err)
	}
	// Field (0,1) is never staged; Complete must pad it empty.
	if err := sink.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	want := "a,b\n1,\n"
	if sb.String() != want {
		t.Fatalf("output = %q, want %q", sb.String(), want)
	}
}
