package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
)

// EOF is returned by Reader.Next and Reader.Peek at the end of input.
const EOF rune = -1

var ErrOpen = errors.New("lexer: unable to open input")

// Reader supplies one logical character at a time. Carriage returns are
// collapsed into newlines and lines are counted as newlines are consumed.
type Reader struct {
	src    *bufio.Reader
	closer io.Closer
	line   int

	peeked  rune
	hasPeek bool
}

// NewReader wraps an in-memory or already open source.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{src: bufio.NewReader(r), line: 1}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// OpenFile opens path for scanning. The caller must Close the reader.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	return NewReader(f), nil
}

// Close releases the underlying source, if it has one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Line is the 1-based line of the next character to be consumed.
func (r *Reader) Line() int {
	return r.line
}

// Peek returns the next character without consuming it.
func (r *Reader) Peek() rune {
	if !r.hasPeek {
		r.peeked = r.read()
		r.hasPeek = true
	}
	return r.peeked
}

// Next consumes and returns the next character.
func (r *Reader) Next() rune {
	ch := r.Peek()
	r.hasPeek = false
	if ch == '\n' {
		r.line++
	}
	return ch
}

func (r *Reader) read() rune {
	ch, _, err := r.src.ReadRune()
	if err != nil {
		return EOF
	}
	if ch != '\r' {
		return ch
	}

	log.LogVf("collapsing carriage return on line %d", r.line)
	if next, _, err := r.src.ReadRune(); err == nil && next != '\n' {
		_ = r.src.UnreadRune()
	}
	return '\n'
}
