// Package session holds the state of one compilation: the built-in symbol
// table and the module that interop libraries are loaded into.
package session

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/konan-interop/pkg/builtins"
	"github.com/stackb/konan-interop/pkg/interop"
	"github.com/stackb/konan-interop/pkg/library"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// Option configures a Session.
type Option func(*Session) *Session

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) *Session {
		s.logger = logger
		return s
	}
}

// WithParallelism bounds the number of libraries (and built-in lookups)
// processed concurrently.
func WithParallelism(n int) Option {
	return func(s *Session) *Session {
		s.parallelism = n
		return s
	}
}

// WithExtraPrimitives adds target-specific primitives to the built-in table.
func WithExtraPrimitives(primitives ...builtins.Primitive) Option {
	return func(s *Session) *Session {
		s.extras = append(s.extras, primitives...)
		return s
	}
}

// WithProgress reports library loading to the given output.
func WithProgress(output mobyprogress.Output) Option {
	return func(s *Session) *Session {
		s.progress = output
		return s
	}
}

// WithModuleName names the module libraries are loaded into.
func WithModuleName(name string) Option {
	return func(s *Session) *Session {
		s.moduleName = name
		return s
	}
}

var defaultOptions = []Option{
	WithLogger(zerolog.Nop()),
	WithParallelism(runtime.GOMAXPROCS(0)),
	WithModuleName("main"),
}

// Loaded is a library added to the session.
type Loaded struct {
	// Library is the library as read from disk.
	Library *library.Library
	// Interop is non-nil for interop libraries.
	Interop *interop.Library
	// Synthetic holds the fragments generated for an interop library.
	Synthetic *interop.SyntheticPackages
}

// Session is the context of one compilation.
type Session struct {
	logger      zerolog.Logger
	parallelism int
	extras      []builtins.Primitive
	progress    mobyprogress.Output
	moduleName  string

	table  *builtins.Table
	module *interop.Module

	mu     sync.Mutex
	loaded []*Loaded
	names  map[string]bool
}

// New builds the built-in table from the given space and returns a session
// with an empty module.  Built-in resolution failures are returned as-is.
func New(space symbol.Space, options ...Option) (*Session, error) {
	s := &Session{}
	for _, opt := range append(defaultOptions, options...) {
		s = opt(s)
	}

	table, err := builtins.New(space,
		builtins.WithLogger(s.logger),
		builtins.WithParallelism(s.parallelism),
		builtins.WithExtraPrimitives(s.extras...),
	)
	if err != nil {
		return nil, fmt.Errorf("built-in symbol table: %w", err)
	}

	s.table = table
	s.module = interop.NewModule(s.moduleName)
	s.names = make(map[string]bool)
	return s, nil
}

// Builtins returns the built-in symbol table.
func (s *Session) Builtins() *builtins.Table {
	return s.table
}

// Module returns the module libraries are loaded into.
func (s *Session) Module() *interop.Module {
	return s.module
}

// Libraries returns the loaded libraries in load order.
func (s *Session) Libraries() []*Loaded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Loaded(nil), s.loaded...)
}

// AddLibraries loads the libraries into the module.  Manifests are checked
// concurrently; if any is inconsistent nothing is added and the errors are
// returned joined in input order.  Otherwise each library's fragments and
// synthetic packages are appended in input order.  Libraries whose name has
// already been loaded are skipped.
func (s *Session) AddLibraries(libs ...*library.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*library.Library
	seen := make(map[string]bool)
	for _, lib := range libs {
		if s.names[lib.Name] || seen[lib.Name] {
			s.logger.Debug().Str("library", lib.Name).Msg("library already loaded")
			continue
		}
		seen[lib.Name] = true
		pending = append(pending, lib)
	}

	results := s.prepare(pending)

	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	base := len(s.loaded)
	for i, res := range results {
		lib := pending[i]
		s.module.AddFragments(lib.SymbolFragments()...)
		if res.loaded.Synthetic != nil {
			s.module.AddFragments(res.loaded.Synthetic.Fragments()...)
		}
		s.names[lib.Name] = true
		s.loaded = append(s.loaded, res.loaded)
		s.writeProgress(base+i+1, base+len(results), i == len(results)-1)
	}

	s.logger.Debug().
		Int("added", len(results)).
		Int("fragments", len(s.module.Fragments())).
		Msg("loaded libraries")

	return nil
}

type prepared struct {
	loaded *Loaded
	err    error
}

// prepare reads the interop metadata of each library and creates its
// synthetic packages.  Each worker writes only its own slot.
func (s *Session) prepare(libs []*library.Library) []prepared {
	results := make([]prepared, len(libs))
	if len(libs) == 0 {
		return results
	}

	workers := s.parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(libs) {
		workers = len(libs)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = s.prepareLibrary(libs[i])
			}
		}()
	}
	for i := range libs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

func (s *Session) prepareLibrary(lib *library.Library) prepared {
	loaded := &Loaded{Library: lib}

	interopLib, err := interop.CreateLibrary(lib.Name, lib.Properties)
	if err != nil {
		s.logger.Debug().Str("library", lib.Name).Err(err).Msg("inconsistent manifest")
		return prepared{err: err}
	}
	if interopLib == nil {
		return prepared{loaded: loaded}
	}

	loaded.Interop = interopLib
	loaded.Synthetic = interopLib.CreateSyntheticPackages(s.module, lib.SymbolFragments())

	s.logger.Debug().
		Str("library", lib.Name).
		Str("package", string(interopLib.Package())).
		Int("exports", len(loaded.Synthetic.Exports.Declarations())).
		Msg("created synthetic packages")

	return prepared{loaded: loaded}
}

func (s *Session) writeProgress(current, total int, lastUpdate bool) {
	if s.progress == nil {
		return
	}
	s.progress.WriteProgress(mobyprogress.Progress{
		ID:         "libraries",
		Action:     "loading libraries",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "libraries",
		LastUpdate: lastUpdate,
	})
}
