package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/stackb/konan-interop/pkg/builtins"
	"github.com/stackb/konan-interop/pkg/procutil"
)

// config is the tool configuration.  It is read from the -config file, if
// any, then overridden by flags set on the command line.
type config struct {
	Builtins        string   `toml:"builtins"`
	Libraries       []string `toml:"libraries"`
	Pattern         string   `toml:"pattern"`
	ExtraPrimitives []string `toml:"extra_primitives"`
	Parallelism     int      `toml:"parallelism"`
	LogLevel        string   `toml:"log_level"`
	Dump            bool     `toml:"dump"`
	PrintExpected   bool     `toml:"print_expected"`
}

func readConfigFile(filename string) (*config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

// parseFlags parses args into a config.
func parseFlags(args []string) (*config, error) {
	var (
		configFile      string
		builtinsFile    string
		libraries       string
		pattern         string
		extraPrimitives string
		parallelism     int
		logLevel        string
		dump            bool
		printExpected   bool
	)

	fs := flag.NewFlagSet("interopresolve", flag.ContinueOnError)
	fs.StringVar(&configFile, "config", "", "optional TOML config file; flags override its values")
	fs.StringVar(&builtinsFile, "builtins", procutil.GetEnv(procutil.BuiltinsEnv, ""), "declaration file of the built-in interop packages")
	fs.StringVar(&libraries, "libs", procutil.GetEnv(procutil.LibrariesEnv, ""), "comma-separated list of directories searched for libraries")
	fs.StringVar(&pattern, "pattern", "**", "doublestar pattern selecting library directories under each root")
	fs.StringVar(&extraPrimitives, "extra_primitives", "", "comma-separated list of target-specific primitives, such as UByte,UShort,UInt,ULong")
	fs.IntVar(&parallelism, "parallelism", 0, "number of concurrent lookups (0 means GOMAXPROCS)")
	defaultLevel := "info"
	if procutil.LookupBoolEnv(procutil.DebugEnv, false) {
		defaultLevel = "debug"
	}
	fs.StringVar(&logLevel, "log_level", defaultLevel, "log level")
	fs.BoolVar(&dump, "dump", false, "dump the built-in bindings in detail")
	fs.BoolVar(&printExpected, "print_expected", false, "print the declarations the built-in table requires and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &config{}
	if configFile != "" {
		fromFile, err := readConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	override := func(name string) bool {
		return set[name] || configFile == ""
	}

	if override("builtins") {
		cfg.Builtins = builtinsFile
	}
	if override("libs") {
		cfg.Libraries = splitList(libraries)
	}
	if override("pattern") || cfg.Pattern == "" {
		cfg.Pattern = pattern
	}
	if override("extra_primitives") {
		cfg.ExtraPrimitives = splitList(extraPrimitives)
	}
	if override("parallelism") {
		cfg.Parallelism = parallelism
	}
	if override("log_level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	if override("dump") {
		cfg.Dump = dump
	}
	if override("print_expected") {
		cfg.PrintExpected = printExpected
	}

	if cfg.Builtins == "" && !cfg.PrintExpected {
		return nil, fmt.Errorf("-builtins is required")
	}

	return cfg, nil
}

func (c *config) primitives() []builtins.Primitive {
	primitives := make([]builtins.Primitive, len(c.ExtraPrimitives))
	for i, p := range c.ExtraPrimitives {
		primitives[i] = builtins.Primitive(p)
	}
	return primitives
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
