package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/agenthands/tib/pkg/config"
	"github.com/agenthands/tib/pkg/interpreter"
)

const (
	version     = "0.3.0"
	historyFile = ".tib_history"
	prompt      = "tib> "
)

const usage = `Usage:
  tib run <file> [-debug] [-quiet] [-write] [-write-tokens] [-emulate] [-strict] [-config file.yaml]
  tib repl [-debug] [-emulate] [-strict] [-config file.yaml]
  tib version

With no arguments tib starts the REPL.
`

func main() {
	os.Exit(dispatch(os.Args[1:], os.Stdout, os.Stderr))
}

func dispatch(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return cmdRepl(nil, stdout, stderr)
	}
	switch args[0] {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "tib %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	}
	if strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(stderr, "unknown flag %s\n%s", args[0], usage)
		return 2
	}
	// tib <file> [flags] behaves like tib run.
	return cmdRun(args, stdout, stderr)
}

// flags holds the command line switches. Only the ones actually given
// override the configuration file.
type flags struct {
	set        *flag.FlagSet
	configPath string
	cfg        config.Config
}

func newFlags(name string, stderr io.Writer) *flags {
	f := &flags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.set.SetOutput(stderr)
	f.set.StringVar(&f.configPath, "config", "", "YAML configuration file")
	f.set.BoolVar(&f.cfg.Debug, "debug", false, "enable verbose tracing")
	f.set.BoolVar(&f.cfg.Quiet, "quiet", false, "do not echo results to standard output")
	f.set.BoolVar(&f.cfg.Write, "write", false, "write results to <file>-out.txt")
	f.set.BoolVar(&f.cfg.WriteTokens, "write-tokens", false, "dump the token list before the results")
	f.set.BoolVar(&f.cfg.Emulate, "emulate", false, "reject non-numeric list elements like the calculator")
	f.set.BoolVar(&f.cfg.Strict, "strict", false, "require closing parentheses and braces")
	return f
}

// resolve loads the configuration file, if any, and applies the flags the
// user passed on top of it.
func (f *flags) resolve() (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.Debug = f.cfg.Debug
		case "quiet":
			cfg.Quiet = f.cfg.Quiet
		case "write":
			cfg.Write = f.cfg.Write
		case "write-tokens":
			cfg.WriteTokens = f.cfg.WriteTokens
		case "emulate":
			cfg.Emulate = f.cfg.Emulate
		case "strict":
			cfg.Strict = f.cfg.Strict
		}
	})
	return cfg, nil
}

// parseRunArgs accepts the input file before or after the flags.
func parseRunArgs(args []string, stderr io.Writer) (config.Config, error) {
	f := newFlags("run", stderr)
	var input string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		input, args = args[0], args[1:]
	}
	if err := f.set.Parse(args); err != nil {
		return config.Config{}, err
	}
	if input == "" {
		input = f.set.Arg(0)
	} else if f.set.NArg() > 0 {
		return config.Config{}, fmt.Errorf("unexpected argument %q", f.set.Arg(0))
	}

	cfg, err := f.resolve()
	if err != nil {
		return cfg, err
	}
	cfg.Input = input
	return cfg, cfg.Validate()
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseRunArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%v\n%s", err, usage)
		return 2
	}
	interpreter.ConfigureLogging(cfg)

	res, err := interpreter.Run(cfg, stdout)
	if err != nil {
		if !errors.Is(err, interpreter.ErrFailed) {
			log.Errf("%v", err)
		}
		return 1
	}
	if res.OutputPath != "" && !cfg.Quiet {
		fmt.Fprintf(stdout, "results written to %s\n", res.OutputPath)
	}
	return 0
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	f := newFlags("repl", stderr)
	if err := f.set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := f.resolve()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	// Results always go to the terminal in the REPL.
	cfg.Write, cfg.Quiet = false, false
	interpreter.ConfigureLogging(cfg)

	fmt.Fprintf(stdout, "tib %s, :quit or Ctrl+D to exit\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if hf, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(hf)
		_ = hf.Close()
	}
	defer func() {
		if hf, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(hf)
			_ = hf.Close()
		}
	}()

	session := interpreter.NewSession(cfg, stdout)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(stdout)
			return 0
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit":
			return 0
		case ":vars":
			fmt.Fprintln(stdout, strings.Join(session.Variables(), " "))
			continue
		}

		ln.AppendHistory(line)
		if err := session.Eval(line); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
}
