package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/log"

	"github.com/agenthands/tib/pkg/config"
)

var (
	ErrTooLarge = errors.New("output: size limit exceeded")
	ErrClosed   = errors.New("output: sink closed")
)

// Sink receives everything a run prints: statement results, the token dump
// and the failure message. In write mode it collects the text and stores it
// in the <input>-out.txt file on Close; otherwise it echoes to the console
// unless quiet is set.
type Sink struct {
	cfg     config.Config
	console io.Writer

	buf    bytes.Buffer
	closed bool
}

func New(cfg config.Config, console io.Writer) *Sink {
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = config.DefaultMaxOutputBytes
	}
	return &Sink{cfg: cfg, console: console}
}

// Write implements io.Writer so the token dump can stream into the sink.
func (s *Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.cfg.Write {
		if s.buf.Len()+len(p) > s.cfg.MaxOutputBytes {
			return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, s.cfg.MaxOutputBytes)
		}
		return s.buf.Write(p)
	}
	if s.cfg.Quiet || s.console == nil {
		return len(p), nil
	}
	return s.console.Write(p)
}

// Println writes one line.
func (s *Sink) Println(line string) error {
	_, err := io.WriteString(s, line+"\n")
	return err
}

// Path is the result file, or "" when the sink echoes to the console.
func (s *Sink) Path() string {
	if !s.cfg.Write {
		return ""
	}
	return s.cfg.OutputPath()
}

// Close flushes the collected text to disk in write mode. It is safe to
// call more than once.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.cfg.Write {
		return nil
	}

	path := s.cfg.OutputPath()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	log.LogVf("writing %d bytes to %s", s.buf.Len(), path)
	if err := os.WriteFile(path, s.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
