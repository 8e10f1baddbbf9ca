package lexer

import (
	"fmt"
	"io"
)

// WriteTokens writes the diagnostic token listing, one token per line and a
// trailing count. It is not meant to be scanned again.
func WriteTokens(w io.Writer, tokens []Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total Tokens = %d\n", len(tokens))
	return err
}
