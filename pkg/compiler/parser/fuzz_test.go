package parser_test

import (
	"io"
	"strings"
	"testing"

	"github.com/agenthands/tib/pkg/compiler/lexer"
	"github.com/agenthands/tib/pkg/compiler/parser"
	"github.com/agenthands/tib/pkg/config"
	"github.com/agenthands/tib/pkg/core/variable"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("1+2", false)
	f.Add("{1,2}+{3,4,5}", true)
	f.Add("(1+2", true)
	f.Add(`"ab"+"cd"->A:Disp A,Ans`, false)
	f.Add("not(1 and 0 or xor", false)
	f.Add("2^-1^-2(3", false)
	f.Add("sub(\"abc\",2,1)\r\n√(-1", true)
	f.Add("$!=→≠θ.", false)

	f.Fuzz(func(t *testing.T, src string, strict bool) {
		cfg := config.Default()
		cfg.Strict = strict
		cfg.Emulate = strict

		tokens, _ := lexer.NewScanner(lexer.NewReader(strings.NewReader(src)), cfg).Scan()
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.KindEOF {
			t.Fatalf("token stream must end with EOF: %v", tokens)
		}
		// Errors are expected for most inputs; panics are not.
		_ = parser.New(tokens, cfg, variable.NewStore(), io.Discard).Run()
	})
}
