package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxOutputBytes caps the size of the <input>-out.txt file.
const DefaultMaxOutputBytes = 5 * 1024 * 1024

// OutputSuffix is appended to the input path to name the result file.
const OutputSuffix = "-out.txt"

var ErrNoInput = errors.New("config: no input file given")

// Config carries the run options shared by the scanner, the parser and the
// output sink. It is passed by value; nothing in the interpreter mutates it.
type Config struct {
	Input string `yaml:"-"`

	Debug       bool `yaml:"debug"`
	Quiet       bool `yaml:"quiet"`
	Write       bool `yaml:"write"`
	WriteTokens bool `yaml:"write_tokens"`
	Emulate     bool `yaml:"emulate"`
	Strict      bool `yaml:"strict"`

	MaxOutputBytes int `yaml:"max_output_bytes"`
}

// Default returns the permissive configuration used when no file or flag
// says otherwise.
func Default() Config {
	return Config{MaxOutputBytes: DefaultMaxOutputBytes}
}

// Load decodes a YAML configuration file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return cfg, nil
}

// OutputPath names the sibling file results are written to in write mode.
func (c Config) OutputPath() string {
	return c.Input + OutputSuffix
}

// Validate checks the options needed for a file run.
func (c Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	return nil
}
