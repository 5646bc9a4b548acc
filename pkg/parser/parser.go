package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// StdinName is the file name that selects standard input.
const StdinName = "-"

// MaxLineSize is the longest line a source can return.
const MaxLineSize = 1024 * 1024

// FileSource implements LineSource for reading log files in order.
type FileSource struct {
	files []string
	stdin io.Reader

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// SourceOption configures a FileSource.
type SourceOption func(*FileSource)

// WithStdin sets the reader used for files named StdinName (default os.Stdin).
func WithStdin(r io.Reader) SourceOption {
	return func(s *FileSource) {
		if r != nil {
			s.stdin = r
		}
	}
}

// NewFileSource creates a LineSource that reads the given files one after
// another. A file named StdinName reads standard input.
func NewFileSource(files []string, opts ...SourceOption) *FileSource {
	s := &FileSource{
		files:     files,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewReaderSource creates a LineSource over a single reader, typically
// standard input.
func NewReaderSource(r io.Reader) *FileSource {
	return &FileSource{
		files:     []string{StdinName},
		stdin:     r,
		fileIndex: -1,
	}
}

// Next returns the next log line. Every line is returned, including empty ones.
// Returns io.EOF when all inputs have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNext(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			return &LogLine{
				Content: s.currentScanner.Text(),
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.displayName(), err)
		}

		// Current input exhausted, try next
		if err := s.closeCurrent(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrent()
}

func (s *FileSource) openNext() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	var r io.Reader
	if path == StdinName {
		r = s.stdin
	} else {
		f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", path, err)
		}
		s.currentFile = f
		r = f
	}

	s.currentScanner = bufio.NewScanner(r)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrent() error {
	s.currentScanner = nil
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		return err
	}
	return nil
}

func (s *FileSource) displayName() string {
	if s.currentSource == StdinName {
		return "standard input"
	}
	return s.currentSource
}
