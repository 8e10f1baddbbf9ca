package lexer

import (
	"fmt"
	"strings"

	"fortio.org/log"

	"github.com/agenthands/tib/pkg/config"
)

// FunctionNames lists the built-in function tokens, opening paren included.
var FunctionNames = []string{
	"abs(", "int(", "iPart(", "fPart(", "round(", "sqrt(", "√(",
	"min(", "max(", "dim(", "sum(", "prod(", "mean(",
	"length(", "sub(", "inString(", "remainder(", "gcd(", "lcm(",
}

// lowerWords are matched when a lowercase letter starts a token.
var lowerWords = map[string]Kind{
	"and":  KindAnd,
	"or":   KindOr,
	"xor":  KindXor,
	"not(": KindNot,
}

// upperWords are matched when an uppercase letter is followed by a
// lowercase one that continues a known word.
var upperWords = map[string]Kind{
	"Ans":    KindVar,
	"Theta":  KindVar,
	"Disp":   KindDisp,
	"If":     KindIf,
	"Then":   KindThen,
	"Else":   KindElse,
	"End":    KindEnd,
	"While":  KindWhile,
	"Repeat": KindRepeat,
	"For(":   KindFor,
	"Lbl":    KindLbl,
	"Goto":   KindGoto,
}

func init() {
	for _, name := range FunctionNames {
		if name[0] >= 'a' && name[0] <= 'z' {
			lowerWords[name] = KindFunc
		}
	}
}

// Diagnostic is a non-fatal scanner warning.
type Diagnostic struct {
	Line int
	Text string
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s %q", d.Line, d.Msg, d.Text)
}

// Scanner turns a character stream into the complete token sequence.
type Scanner struct {
	in  *Reader
	cfg config.Config

	tokens []Token
	diags  []Diagnostic
}

// NewScanner creates a scanner over r. The scanner does not close r.
func NewScanner(r *Reader, cfg config.Config) *Scanner {
	return &Scanner{in: r, cfg: cfg}
}

// Scan reads the whole input. The result always ends with exactly one EOF
// token; unrecognised input becomes UNDEFINED tokens plus diagnostics.
func (s *Scanner) Scan() ([]Token, []Diagnostic) {
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		s.emit(tok)
	}
	s.emit(NewToken(KindEOF, "", s.in.Line()))
	return s.tokens, s.diags
}

func (s *Scanner) emit(tok Token) {
	if s.cfg.Debug {
		log.LogVf("scanned %s", tok)
	}
	s.tokens = append(s.tokens, tok)
}

// next returns the next token, or false at the end of input.
func (s *Scanner) next() (Token, bool) {
	s.skipWhitespace()

	line := s.in.Line()
	ch := s.in.Next()

	switch {
	case ch == EOF:
		return Token{}, false
	case ch == '\n':
		return NewToken(KindEOL, "\n", line), true
	case ch == '#':
		s.skipComment()
		return s.next()
	case ch == '"':
		return s.scanString(line), true
	case isDigit(ch) || ch == '.':
		return s.scanNumber(ch, line), true
	case isUpper(ch) || ch == 'θ':
		return s.scanUpper(ch, line), true
	case isLower(ch):
		return s.scanWord(string(ch), lowerWords, line), true
	}
	return s.scanOperator(ch, line), true
}

func (s *Scanner) skipWhitespace() {
	for {
		ch := s.in.Peek()
		if ch != ' ' && ch != '\t' && ch != '\f' && ch != '\v' {
			return
		}
		s.in.Next()
	}
}

func (s *Scanner) skipComment() {
	for ch := s.in.Peek(); ch != '\n' && ch != EOF; ch = s.in.Peek() {
		s.in.Next()
	}
}

func (s *Scanner) scanString(line int) Token {
	var sb strings.Builder
	for {
		ch := s.in.Peek()
		if ch == '\n' || ch == EOF {
			break
		}
		s.in.Next()
		if ch == '"' {
			break
		}
		sb.WriteRune(ch)
	}
	return NewToken(KindString, sb.String(), line)
}

func (s *Scanner) scanNumber(first rune, line int) Token {
	var sb strings.Builder
	sb.WriteRune(first)
	dot := first == '.'

	for {
		ch := s.in.Peek()
		if isDigit(ch) {
			sb.WriteRune(s.in.Next())
		} else if ch == '.' && !dot {
			dot = true
			sb.WriteRune(s.in.Next())
		} else {
			break
		}
	}

	text := sb.String()
	switch {
	case text == ".":
		return s.undefined(text, line, "dangling decimal point")
	case dot:
		return NewToken(KindNum, floatMarker+text, line)
	}
	return NewToken(KindNum, text, line)
}

func (s *Scanner) scanUpper(first rune, line int) Token {
	if first == 'θ' {
		return NewToken(KindVar, "θ", line)
	}
	next := s.in.Peek()
	if !isLower(next) || !hasWordPrefix(upperWords, string(first)+string(next)) {
		return NewToken(KindVar, string(first), line)
	}

	word := s.longest(string(first), upperWords)
	kind, ok := upperWords[word]
	if !ok {
		// Not a keyword after all: the capital is a variable and the
		// lowercase letters already read start a word of their own.
		s.emit(NewToken(KindVar, string(first), line))
		return s.scanWord(strings.TrimPrefix(word, string(first)), lowerWords, line)
	}
	if kind == KindVar && word == "Theta" {
		return NewToken(KindVar, "θ", line)
	}
	return NewToken(kind, word, line)
}

// scanWord reads the longest word in words that continues prefix, whose
// characters have already been consumed.
func (s *Scanner) scanWord(prefix string, words map[string]Kind, line int) Token {
	buf := s.longest(prefix, words)
	kind, ok := words[buf]
	if !ok {
		return s.undefined(buf, line, "unrecognised word")
	}
	return NewToken(kind, buf, line)
}

// longest consumes characters one at a time while they extend buf towards
// some word in words.
func (s *Scanner) longest(buf string, words map[string]Kind) string {
	for {
		ch := s.in.Peek()
		if ch == EOF || !hasWordPrefix(words, buf+string(ch)) {
			return buf
		}
		buf += string(s.in.Next())
	}
}

func (s *Scanner) scanOperator(ch rune, line int) Token {
	switch ch {
	case '+':
		return NewToken(KindPlus, "+", line)
	case '*':
		return NewToken(KindTimes, "*", line)
	case '/':
		return NewToken(KindDivide, "/", line)
	case '^':
		return NewToken(KindPow, "^", line)
	case '(':
		return NewToken(KindLParen, "(", line)
	case ')':
		return NewToken(KindRParen, ")", line)
	case '{':
		return NewToken(KindLCurly, "{", line)
	case '}':
		return NewToken(KindRCurly, "}", line)
	case ',':
		return NewToken(KindComma, ",", line)
	case '=':
		return NewToken(KindEqual, "=", line)
	case ':':
		return NewToken(KindColon, ":", line)
	case '→':
		return NewToken(KindStore, "->", line)
	case '≠':
		return NewToken(KindNotEqual, "!=", line)
	case '≥':
		return NewToken(KindGreaterEq, ">=", line)
	case '≤':
		return NewToken(KindLessEq, "<=", line)
	case '√':
		if s.in.Peek() == '(' {
			s.in.Next()
			return NewToken(KindFunc, "√(", line)
		}
		return s.undefined("√", line, "expected ( after")
	case '-':
		if s.in.Peek() == '>' {
			s.in.Next()
			return NewToken(KindStore, "->", line)
		}
		return NewToken(KindMinus, "-", line)
	case '>':
		if s.in.Peek() == '=' {
			s.in.Next()
			return NewToken(KindGreaterEq, ">=", line)
		}
		return NewToken(KindGreater, ">", line)
	case '<':
		if s.in.Peek() == '=' {
			s.in.Next()
			return NewToken(KindLessEq, "<=", line)
		}
		return NewToken(KindLess, "<", line)
	case '!':
		if s.in.Peek() == '=' {
			s.in.Next()
			return NewToken(KindNotEqual, "!=", line)
		}
		return s.undefined("!", line, "expected = after")
	}
	return s.undefined(string(ch), line, "unrecognised character")
}

func (s *Scanner) undefined(text string, line int, msg string) Token {
	d := Diagnostic{Line: line, Text: text, Msg: msg}
	log.Warnf("%s", d)
	s.diags = append(s.diags, d)
	return NewToken(KindUndefined, text, line)
}

func hasWordPrefix(words map[string]Kind, prefix string) bool {
	for w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isUpper(ch rune) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isLower(ch rune) bool {
	return ch >= 'a' && ch <= 'z'
}
