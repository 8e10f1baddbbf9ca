// Package interpreter wires the scanner, the parser and the output sink
// into a single program run.
package interpreter

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/log"

	"github.com/agenthands/tib/pkg/compiler/lexer"
	"github.com/agenthands/tib/pkg/compiler/parser"
	"github.com/agenthands/tib/pkg/config"
	"github.com/agenthands/tib/pkg/core/variable"
	"github.com/agenthands/tib/pkg/output"
)

var (
	ErrFailed   = errors.New("interpreter: run failed")
	ErrInternal = errors.New("interpreter: internal error")
)

// Result summarises a finished run.
type Result struct {
	Tokens      int
	Diagnostics []lexer.Diagnostic
	OutputPath  string
}

// ConfigureLogging selects verbose tracing in debug mode and warnings
// otherwise.
func ConfigureLogging(cfg config.Config) {
	if cfg.Debug {
		log.SetLogLevel(log.Verbose)
		return
	}
	log.SetLogLevel(log.Warning)
}

// Run interprets the file named by cfg.Input. Scanner warnings, results, the
// optional token dump and the failure message go to the sink selected by cfg;
// console receives them when the sink echoes. A failing statement stops the run
// and the returned error wraps ErrFailed together with the cause.
func Run(cfg config.Config, console io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	in, err := lexer.OpenFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	tokens, diags := lexer.NewScanner(in, cfg).Scan()
	res := &Result{Tokens: len(tokens), Diagnostics: diags}

	sink := output.New(cfg, console)
	res.OutputPath = sink.Path()

	runErr := reportDiagnostics(sink, diags)
	if runErr == nil {
		runErr = execute(cfg, tokens, sink)
	}
	if runErr != nil {
		log.Errf("%s: %v", cfg.Input, runErr)
		if _, err := fmt.Fprintf(sink, "Failure!\n%v\n", runErr); err != nil {
			log.Errf("could not report failure: %v", err)
		}
		runErr = fmt.Errorf("%w: %w", ErrFailed, runErr)
	}
	if err := sink.Close(); err != nil {
		return res, errors.Join(runErr, err)
	}
	return res, runErr
}

// reportDiagnostics repeats the scanner warnings in the sink so they land
// wherever the results do.
func reportDiagnostics(sink *output.Sink, diags []lexer.Diagnostic) error {
	for _, d := range diags {
		if err := sink.Println("Warning: " + d.String()); err != nil {
			return err
		}
	}
	return nil
}

func execute(cfg config.Config, tokens []lexer.Token, sink io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if cfg.WriteTokens {
		if err := lexer.WriteTokens(sink, tokens); err != nil {
			return err
		}
	}
	return parser.New(tokens, cfg, variable.NewStore(), sink).Run()
}
