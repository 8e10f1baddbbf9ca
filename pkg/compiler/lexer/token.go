package lexer

import (
	"fmt"
	"strings"
)

// Kind represents the type of token identified by the scanner.
// The order matters: the category markers split the kinds into classes.
type Kind uint8

const (
	categoryValues Kind = iota
	KindNum
	KindString
	KindVar
	KindLParen
	KindLCurly

	categoryOperators
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindPow
	KindOr
	KindAnd
	KindXor
	KindNot // not(
	KindEqual
	KindNotEqual
	KindGreater
	KindGreaterEq
	KindLess
	KindLessEq
	KindRParen
	KindRCurly
	KindComma
	KindStore // ->

	categoryFunctions
	KindFunc

	categoryKeywords
	KindDisp
	KindIf
	KindThen
	KindElse
	KindEnd
	KindWhile
	KindRepeat
	KindFor
	KindLbl
	KindGoto
	KindColon
	KindEOL
	KindEOF
	KindUndefined

	kindCount
)

var kindNames = [kindCount]string{
	categoryValues:    "__CATEGORY_VALUES",
	KindNum:           "NUM",
	KindString:        "STRING",
	KindVar:           "VAR",
	KindLParen:        "L_PAREN",
	KindLCurly:        "L_CURLY",
	categoryOperators: "__CATEGORY_OPERATORS",
	KindPlus:          "PLUS",
	KindMinus:         "MINUS",
	KindTimes:         "TIMES",
	KindDivide:        "DIVIDE",
	KindPow:           "POW",
	KindOr:            "OR",
	KindAnd:           "AND",
	KindXor:           "XOR",
	KindNot:           "NOT",
	KindEqual:         "EQUAL",
	KindNotEqual:      "N_EQUAL",
	KindGreater:       "GREATER",
	KindGreaterEq:     "GREQ",
	KindLess:          "LESS",
	KindLessEq:        "LESSEQ",
	KindRParen:        "R_PAREN",
	KindRCurly:        "R_CURLY",
	KindComma:         "COMMA",
	KindStore:         "STO",
	categoryFunctions: "__CATEGORY_FUNCTIONS",
	KindFunc:          "FUNC",
	categoryKeywords:  "__CATEGORY_KEYWORDS",
	KindDisp:          "DISP",
	KindIf:            "IF",
	KindThen:          "THEN",
	KindElse:          "ELSE",
	KindEnd:           "END",
	KindWhile:         "WHILE",
	KindRepeat:        "REPEAT",
	KindFor:           "FOR",
	KindLbl:           "LBL",
	KindGoto:          "GOTO",
	KindColon:         "COLON",
	KindEOL:           "EOL",
	KindEOF:           "EOF",
	KindUndefined:     "UNDEFINED",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Class is the coarse category of a token kind.
type Class uint8

const (
	ClassValue Class = iota
	ClassOperator
	ClassFunction
	ClassKeyword
)

func (c Class) String() string {
	switch c {
	case ClassValue:
		return "VALUE"
	case ClassOperator:
		return "OPERATOR"
	case ClassFunction:
		return "FUNCTION"
	default:
		return "KEYWORD"
	}
}

// Class derives the token class from the kind's position in the enumeration.
func (k Kind) Class() Class {
	switch {
	case k < categoryOperators:
		return ClassValue
	case k < categoryFunctions:
		return ClassOperator
	case k < categoryKeywords:
		return ClassFunction
	default:
		return ClassKeyword
	}
}

// floatMarker prefixes the text of float literals so the parser can tell
// them from integers without looking at the digits again.
const floatMarker = "f"

// Token represents a lexical unit. Tokens are immutable once built.
type Token struct {
	Kind  Kind
	Class Class
	Text  string
	Line  int
}

// NewToken builds a token, fixing its class from the kind.
func NewToken(kind Kind, text string, line int) Token {
	return Token{Kind: kind, Class: kind.Class(), Text: text, Line: line}
}

// IsFloat reports whether a NUM token holds a float literal.
func (t Token) IsFloat() bool {
	return t.Kind == KindNum && strings.HasPrefix(t.Text, floatMarker)
}

// Literal returns the token text without the internal float marker.
func (t Token) Literal() string {
	if t.IsFloat() {
		return strings.TrimPrefix(t.Text, floatMarker)
	}
	return t.Text
}

// String renders the token for dumps and error messages.
func (t Token) String() string {
	text := t.Text
	if text == "\n" {
		text = "/n"
	}
	return fmt.Sprintf("%s/%s with value \"%s\" on line %d", t.Kind, t.Class, text, t.Line)
}
