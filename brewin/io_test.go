package brewin

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(strings.NewReader("one\r\ntwo\n"))
	for _, want := range []string{"one", "two"} {
		got, err := src.ReadLine()
		if err != nil || got != want {
			t.Fatalf("expected %q, got %q (%v)", want, got, err)
		}
	}
	if _, err := src.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	_ = sink.WriteLine("a")
	_ = sink.WriteLine("")
	if buf.String() != "a\n\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBufferSink(t *testing.T) {
	sink := &BufferSink{}
	_ = sink.WriteLine("x")
	_ = sink.WriteLine("y")
	if sink.String() != "x\ny" {
		t.Fatalf("unexpected buffer %q", sink.String())
	}
	sink.Reset()
	if len(sink.Lines()) != 0 {
		t.Fatalf("expected empty buffer after reset")
	}
}
