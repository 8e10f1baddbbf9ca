package lexer_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agenthands/tib/pkg/compiler/lexer"
)

func TestReaderCollapsesCarriageReturns(t *testing.T) {
	r := lexer.NewReader(strings.NewReader("a\r\nb\rc"))
	var got []rune
	for ch := r.Next(); ch != lexer.EOF; ch = r.Next() {
		got = append(got, ch)
	}
	if string(got) != "a\nb\nc" {
		t.Errorf("got %q", string(got))
	}
	if r.Line() != 3 {
		t.Errorf("Line() = %d, want 3", r.Line())
	}
}

func TestReaderPeek(t *testing.T) {
	r := lexer.NewReader(strings.NewReader("xy"))
	if r.Peek() != 'x' || r.Peek() != 'x' {
		t.Fatal("Peek must not consume")
	}
	if r.Next() != 'x' || r.Next() != 'y' {
		t.Fatal("unexpected Next sequence")
	}
	if r.Peek() != lexer.EOF || r.Next() != lexer.EOF {
		t.Error("expected EOF at end of input")
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := lexer.OpenFile(filepath.Join(t.TempDir(), "missing.tib"))
	if !errors.Is(err, lexer.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}
