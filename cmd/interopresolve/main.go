package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/stackb/konan-interop/pkg/builtins"
	"github.com/stackb/konan-interop/pkg/declfile"
	"github.com/stackb/konan-interop/pkg/interop"
	"github.com/stackb/konan-interop/pkg/library"
	"github.com/stackb/konan-interop/pkg/logger"
	"github.com/stackb/konan-interop/pkg/session"
)

func main() {
	log.SetPrefix("interopresolve: ")
	log.SetFlags(0) // don't print timestamps

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config, stdout, stderr io.Writer) error {
	if cfg.PrintExpected {
		return declfile.Write(stdout, builtins.ExpectedDeclarations("builtins", cfg.primitives()...))
	}

	logs, err := logger.New(stderr, logger.Options{Level: cfg.LogLevel, Component: "interopresolve"})
	if err != nil {
		return err
	}

	fragments, err := declfile.NewLoader("builtins", declfile.WithLogger(logs)).LoadFile(cfg.Builtins)
	if err != nil {
		return err
	}

	options := []session.Option{
		session.WithLogger(logs),
		session.WithExtraPrimitives(cfg.primitives()...),
		session.WithProgress(logger.NewProgressOutput(logs)),
	}
	if cfg.Parallelism > 0 {
		options = append(options, session.WithParallelism(cfg.Parallelism))
	}
	s, err := session.New(declfile.Space(fragments), options...)
	if err != nil {
		return err
	}

	libs, err := readLibraries(logs, cfg.Libraries, cfg.Pattern)
	if err != nil {
		return err
	}
	if err := s.AddLibraries(libs...); err != nil {
		return err
	}

	if cfg.Dump {
		spew.Fdump(stdout, s.Builtins().Bindings())
	} else {
		printBindings(stdout, s.Builtins())
	}
	printLibraries(stdout, s.Libraries())

	return nil
}

func readLibraries(logs zerolog.Logger, roots []string, pattern string) ([]*library.Library, error) {
	reader := library.NewReader(library.WithLogger(logs))
	var libs []*library.Library
	for _, root := range roots {
		dirs, err := library.Discover(root, pattern)
		if err != nil {
			return nil, err
		}
		found, err := reader.ReadAll(dirs)
		if err != nil {
			return nil, err
		}
		libs = append(libs, found...)
	}
	return libs, nil
}

func printBindings(w io.Writer, table *builtins.Table) {
	for _, binding := range table.Bindings() {
		fmt.Fprintln(w, binding.String())
	}
}

func printLibraries(w io.Writer, loaded []*session.Loaded) {
	for _, l := range loaded {
		if l.Synthetic == nil {
			fmt.Fprintf(w, "library %s\n", l.Library.Name)
			continue
		}
		fmt.Fprintf(w, "library %s (interop %s)\n", l.Library.Name, l.Interop.Package())
		for _, ns := range interop.Namespaces() {
			alias := l.Synthetic.Aliases[ns]
			for _, target := range alias.Targets() {
				fmt.Fprintf(w, "  alias %s -> %s\n", ns.Package(), target.Package())
			}
		}
		for _, decl := range l.Synthetic.Exports.Declarations() {
			fmt.Fprintf(w, "  export %s\n", decl)
		}
	}
}
