// Package payloads reads scanned boarding pass payloads, one per line.
package payloads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineBytes bounds a single payload line. Real BCBP payloads stay well
// under 1 KiB even with a security section.
const maxLineBytes = 64 * 1024

var (
	ErrLineTooLong  = errors.New("payload line too long")
	ErrInvalidBytes = errors.New("payload is not valid UTF-8 text")
)

// Line is one payload and its 1-based line number in the source file.
type Line struct {
	Number  int64
	Payload string
	// Oversized is set when the line exceeded maxLineBytes; Payload then
	// holds only its first maxLineBytes bytes.
	Oversized bool
}

// Validate reports whether the line can be stored as text: it must fit in
// maxLineBytes, be valid UTF-8 and contain no NUL byte.
func (l Line) Validate() error {
	if l.Oversized {
		return fmt.Errorf("%w: over %d bytes", ErrLineTooLong, maxLineBytes)
	}
	if !utf8.ValidString(l.Payload) {
		return ErrInvalidBytes
	}
	if strings.IndexByte(l.Payload, 0) >= 0 {
		return fmt.Errorf("%w: contains NUL", ErrInvalidBytes)
	}
	return nil
}

// Reader streams payload lines. Blank lines and lines starting with "#"
// are skipped. A trailing CR is stripped; other whitespace is kept since
// payload fields are space-padded.
type Reader struct {
	closer io.Closer
	br     *bufio.Reader
	line   int64
}

// Open opens a payload file for streaming.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payload file: %w", err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// NewReader wraps an io.Reader. Close is a no-op for readers built this way.
func NewReader(in io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(in, 4096)}
}

// Read fills lines with up to len(lines) payloads. It returns the number
// read and io.EOF once the input is exhausted. An oversized line is
// returned with Oversized set rather than failing the read.
func (r *Reader) Read(lines []Line) (int, error) {
	n := 0
	for n < len(lines) {
		text, oversized, err := r.readLine()
		if err == io.EOF {
			return n, io.EOF
		}
		if err != nil {
			return n, fmt.Errorf("read payload line %d: %w", r.line+1, err)
		}
		r.line++
		text = strings.TrimSuffix(text, "\r")
		if !oversized && skip(text) {
			continue
		}
		lines[n] = Line{Number: r.line, Payload: text, Oversized: oversized}
		n++
	}
	return n, nil
}

// readLine returns the next line without its terminator, keeping at most
// maxLineBytes bytes and discarding the rest.
func (r *Reader) readLine() (string, bool, error) {
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := r.br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if room := maxLineBytes - len(buf); len(chunk) > room {
			oversized = true
			chunk = chunk[:max(room, 0)]
		}
		buf = append(buf, chunk...)
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func skip(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
