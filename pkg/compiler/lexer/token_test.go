package lexer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agenthands/tib/pkg/compiler/lexer"
)

func TestKindClass(t *testing.T) {
	tests := []struct {
		kind lexer.Kind
		want lexer.Class
	}{
		{lexer.KindNum, lexer.ClassValue},
		{lexer.KindVar, lexer.ClassValue},
		{lexer.KindLParen, lexer.ClassValue},
		{lexer.KindLCurly, lexer.ClassValue},
		{lexer.KindPlus, lexer.ClassOperator},
		{lexer.KindRParen, lexer.ClassOperator},
		{lexer.KindStore, lexer.ClassOperator},
		{lexer.KindFunc, lexer.ClassFunction},
		{lexer.KindDisp, lexer.ClassKeyword},
		{lexer.KindEOL, lexer.ClassKeyword},
		{lexer.KindEOF, lexer.ClassKeyword},
		{lexer.KindUndefined, lexer.ClassKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Class(); got != tt.want {
				t.Errorf("Class() = %v, want %v", got, tt.want)
			}
			if tok := lexer.NewToken(tt.kind, "x", 1); tok.Class != tt.want {
				t.Errorf("NewToken class = %v, want %v", tok.Class, tt.want)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  lexer.Token
		want string
	}{
		{lexer.NewToken(lexer.KindNum, "3", 1), `NUM/VALUE with value "3" on line 1`},
		{lexer.NewToken(lexer.KindEOL, "\n", 2), `EOL/KEYWORD with value "/n" on line 2`},
		{lexer.NewToken(lexer.KindFunc, "abs(", 4), `FUNC/FUNCTION with value "abs(" on line 4`},
		{lexer.NewToken(lexer.KindStore, "->", 5), `STO/OPERATOR with value "->" on line 5`},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestWriteTokens(t *testing.T) {
	tokens, _ := scan("1+2")
	var buf bytes.Buffer
	if err := lexer.WriteTokens(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		`NUM/VALUE with value "1" on line 1`,
		`PLUS/OPERATOR with value "+" on line 1`,
		`NUM/VALUE with value "2" on line 1`,
		`EOF/KEYWORD with value "" on line 1`,
		`Total Tokens = 4`,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
