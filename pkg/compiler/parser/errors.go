package parser

import (
	"errors"

	"github.com/agenthands/tib/pkg/compiler/lexer"
)

// ErrSyntax marks structural failures: a token the grammar did not expect.
var ErrSyntax = errors.New("ERR:SYNTAX")

// Error is a fatal parse or evaluation failure tied to the token where it
// was detected. Err is ErrSyntax for structural mismatches, otherwise a
// value or stdlib sentinel.
type Error struct {
	Token    lexer.Token
	Expected string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Expected != "" {
		msg += ": expected " + e.Expected
	}
	return msg + "\n  " + e.Token.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
