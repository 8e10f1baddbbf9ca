package interpreter

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/tib/pkg/compiler/lexer"
	"github.com/agenthands/tib/pkg/compiler/parser"
	"github.com/agenthands/tib/pkg/config"
	"github.com/agenthands/tib/pkg/core/variable"
)

// Session evaluates REPL input one line at a time. Variables and Ans
// survive between lines but not between sessions.
type Session struct {
	cfg  config.Config
	vars *variable.Store
	out  io.Writer
}

func NewSession(cfg config.Config, out io.Writer) *Session {
	return &Session{cfg: cfg, vars: variable.NewStore(), out: out}
}

// Eval runs every statement on line, printing results to the session
// output. An error leaves earlier statements of the line applied.
func (s *Session) Eval(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	tokens, _ := lexer.NewScanner(lexer.NewReader(strings.NewReader(line)), s.cfg).Scan()
	if s.cfg.WriteTokens {
		if err := lexer.WriteTokens(s.out, tokens); err != nil {
			return err
		}
	}
	return parser.New(tokens, s.cfg, s.vars, s.out).Run()
}

// Variables lists the names read or written so far.
func (s *Session) Variables() []string {
	return s.vars.Names()
}
