package brewin

import (
	"bufio"
	"io"
	"strings"
)

// OutputSink receives one formatted line per print statement.
type OutputSink interface {
	WriteLine(line string) error
}

// InputSource supplies lines to inputi and inputs. ReadLine returns io.EOF
// once the input is exhausted.
type InputSource interface {
	ReadLine() (string, error)
}

type writerSink struct {
	w io.Writer
}

// NewWriterSink writes each line followed by a newline to w.
func NewWriterSink(w io.Writer) OutputSink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

// BufferSink collects printed lines in memory.
type BufferSink struct {
	lines []string
}

func (s *BufferSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)
	return nil
}

func (s *BufferSink) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *BufferSink) String() string {
	return strings.Join(s.lines, "\n")
}

func (s *BufferSink) Reset() {
	s.lines = nil
}

type readerSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource reads newline-separated input from r.
func NewReaderSource(r io.Reader) InputSource {
	return &readerSource{scanner: bufio.NewScanner(r)}
}

func (s *readerSource) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return strings.TrimRight(s.scanner.Text(), "\r"), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type lineSource struct {
	lines []string
	next  int
}

// NewLineSource serves the given lines in order.
func NewLineSource(lines []string) InputSource {
	return &lineSource{lines: lines}
}

func (s *lineSource) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}
