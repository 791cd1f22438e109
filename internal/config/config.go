// Package config assembles the run configuration from defaults, an optional
// turtle.toml file, TURTLE_* environment variables and command line flags,
// each layer overriding the previous one.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read from the working directory when -config is not given
const DefaultFile = "turtle.toml"

// Config holds everything needed for one run
type Config struct {
	Verbose  bool   `toml:"verbose"`   // debug logging and instruction tracing
	NoColor  bool   `toml:"no-color"`  // plain terminal output
	Listing  bool   `toml:"listing"`   // print the built program before running
	Encoding string `toml:"encoding"`  // source text encoding
	MaxSteps int    `toml:"max-steps"` // instruction budget, 0 = unlimited
	DumpFile string `toml:"dump"`      // CBOR program snapshot destination

	Help       bool   `toml:"-"`
	OutputFile string `toml:"-"` // image destination, derived from SourceFile when empty
	ConfigFile string `toml:"-"` // turtle.toml path actually loaded, if any
	SourceFile string `toml:"-"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{Encoding: "utf-8"}
}

// Parse builds a Config from args (without the program name). getenv is
// consulted for TURTLE_* overrides; pass os.Getenv in production.
func Parse(args []string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	var flags Config
	var configPath string
	fs := newFlagSet(&flags, &configPath)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return nil, err
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(getenv); err != nil {
		return nil, err
	}

	// only flags given explicitly override the file and the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "h":
			cfg.Help = flags.Help
		case "v":
			cfg.Verbose = flags.Verbose
		case "n":
			cfg.NoColor = flags.NoColor
		case "d":
			cfg.Listing = flags.Listing
		case "o":
			cfg.OutputFile = flags.OutputFile
		case "e":
			cfg.Encoding = flags.Encoding
		case "max-steps":
			cfg.MaxSteps = flags.MaxSteps
		case "dump":
			cfg.DumpFile = flags.DumpFile
		}
	})

	if fs.NArg() > 0 {
		cfg.SourceFile = fs.Arg(0)
	}

	cfg.Encoding = strings.ToLower(cfg.Encoding)
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must be non-negative, got %d", cfg.MaxSteps)
	}

	return cfg, nil
}

// PrintUsage writes the flag summary to w
func PrintUsage(w io.Writer, program string) {
	var flags Config
	var configPath string
	fs := newFlagSet(&flags, &configPath)
	fs.SetOutput(w)

	fmt.Fprintf(w, "Usage: %s [options] <file>\n", program)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TURTLE_VERBOSE, TURTLE_NO_COLOR, TURTLE_LISTING, TURTLE_ENCODING, TURTLE_MAX_STEPS, TURTLE_DUMP")
}

func newFlagSet(c *Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("turtle", flag.ContinueOnError)

	fs.BoolVar(&c.Help, "h", false, "Show help")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose mode (trace every instruction)")
	fs.BoolVar(&c.NoColor, "n", false, "No color")
	fs.BoolVar(&c.Listing, "d", false, "Print the program listing before running")
	fs.StringVar(&c.OutputFile, "o", "", "Output image name (default: input with .bmp extension)")
	fs.StringVar(&c.Encoding, "e", "utf-8", "Source encoding (utf-8, shift-jis, euc-jp, latin1)")
	fs.IntVar(&c.MaxSteps, "max-steps", 0, "Abort after this many instructions (0 = unlimited)")
	fs.StringVar(&c.DumpFile, "dump", "", "Write a CBOR snapshot of the built program to this file")
	fs.StringVar(configPath, "config", "", "Configuration file (default: ./"+DefaultFile+" if present)")

	return fs
}

// loadFile decodes a TOML file over c. A missing default file is not an
// error, a missing explicit one is.
func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.ConfigFile = path
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"TURTLE_VERBOSE", &c.Verbose},
		{"TURTLE_NO_COLOR", &c.NoColor},
		{"TURTLE_LISTING", &c.Listing},
	} {
		if v := getenv(b.name); v != "" {
			*b.dst = v == "1" || strings.ToLower(v) == "true"
		}
	}

	if v := getenv("TURTLE_ENCODING"); v != "" {
		c.Encoding = v
	}
	if v := getenv("TURTLE_DUMP"); v != "" {
		c.DumpFile = v
	}
	if v := getenv("TURTLE_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TURTLE_MAX_STEPS %q: %w", v, err)
		}
		c.MaxSteps = n
	}

	return nil
}

// boolFlags take no value, so the argument after them is positional
var boolFlags = map[string]bool{"h": true, "v": true, "n": true, "d": true}

// reorderArgs moves flags in front of positional arguments so the source
// file may come first on the command line
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, arg)
			continue
		}

		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") || boolFlags[name] {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	if len(positional) == 0 {
		return flags
	}
	return append(append(flags, "--"), positional...)
}
