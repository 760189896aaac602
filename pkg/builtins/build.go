package builtins

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackb/konan-interop/pkg/symbol"
)

// Option configures table construction.
type Option func(*builder) *builder

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *builder) *builder {
		b.logger = logger
		return b
	}
}

// WithParallelism bounds the number of concurrent lookups.  Values below one
// resolve sequentially.
func WithParallelism(n int) Option {
	return func(b *builder) *builder {
		b.parallelism = n
		return b
	}
}

// WithExtraPrimitives adds target-specific primitives, such as the unsigned
// integer types, to the read/write families.
func WithExtraPrimitives(primitives ...Primitive) Option {
	return func(b *builder) *builder {
		b.extras = append(b.extras, primitives...)
		return b
	}
}

var defaultOptions = []Option{
	WithLogger(zerolog.Nop()),
	WithParallelism(runtime.GOMAXPROCS(0)),
}

type builder struct {
	logger      zerolog.Logger
	parallelism int
	extras      []Primitive
}

// job resolves one key of the table.
type job struct {
	entry     Entry
	primitive Primitive
	category  ReturnCategory
	query     symbol.Query
}

func (j job) key() string {
	switch j.entry.Arity() {
	case PerPrimitive:
		return string(j.primitive)
	case PerReturnCategory:
		return j.category.String()
	}
	return ""
}

type result struct {
	symbols []*symbol.Symbol
	err     error
}

// New resolves the whole catalog against the built-ins space.  Either every
// entry resolves and the table is returned, or the table is discarded and
// the failures are returned joined in catalog order, each an
// *symbol.InternalConsistencyError.
func New(space symbol.Space, options ...Option) (*Table, error) {
	b := &builder{}
	for _, opt := range append(defaultOptions, options...) {
		b = opt(b)
	}

	primitives, err := b.primitives()
	if err != nil {
		return nil, err
	}

	t1 := time.Now()
	jobs := plan(primitives)
	results := b.resolve(space, jobs)

	var errs []error
	for i, res := range results {
		if res.err != nil {
			b.logger.Debug().
				Str("entry", jobs[i].entry.String()).
				Str("key", jobs[i].key()).
				Err(res.err).
				Msg("built-in lookup failed")
			errs = append(errs, res.err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	table := newTable(primitives)
	for i, j := range jobs {
		table.bind(j, results[i].symbols)
	}

	b.logger.Debug().
		Int("bindings", len(jobs)).
		Int("primitives", len(primitives)).
		Dur("elapsed", time.Since(t1)).
		Msg("resolved built-in symbol table")

	return table, nil
}

// MustNew is like New but panics on failure.  Built-in mismatches are never
// recoverable, so callers that have no diagnostic channel may use it.
func MustNew(space symbol.Space, options ...Option) *Table {
	table, err := New(space, options...)
	if err != nil {
		panic(err)
	}
	return table
}

func (b *builder) primitives() ([]Primitive, error) {
	seen := make(map[Primitive]bool)
	var primitives []Primitive
	for _, p := range append(append([]Primitive(nil), StandardPrimitives...), b.extras...) {
		if p == "" {
			return nil, fmt.Errorf("empty primitive name")
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		primitives = append(primitives, p)
	}
	return primitives, nil
}

// plan expands the catalog into one job per table key.
func plan(primitives []Primitive) []job {
	var jobs []job
	for _, e := range Entries() {
		spec := catalog[e]
		query := symbol.Query{
			Operation: spec.operation,
			Scope:     spec.scope,
			Name:      spec.name,
			Kind:      spec.kind,
			Filter:    spec.filter,
		}
		switch spec.arity {
		case PerPrimitive:
			for _, p := range primitives {
				q := query
				q.Operation = fmt.Sprintf("%s(%s)", spec.operation, p)
				if e == WritePrimitive {
					q.Name = p.writeName()
				} else {
					q.Name = p.readName()
				}
				jobs = append(jobs, job{entry: e, primitive: p, query: q})
			}
		case PerReturnCategory:
			for _, c := range ReturnCategories() {
				q := query
				q.Operation = fmt.Sprintf("%s(%s)", spec.operation, c)
				q.Name = c.invokeName()
				jobs = append(jobs, job{entry: e, category: c, query: q})
			}
		default:
			jobs = append(jobs, job{entry: e, query: query})
		}
	}
	return jobs
}

// resolve runs the jobs on a bounded pool of workers.  Each job index is
// received by exactly one worker, which alone writes results[i].
func (b *builder) resolve(space symbol.Space, jobs []job) []result {
	results := make([]result, len(jobs))

	workers := b.parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = resolveJob(space, jobs[i])
			}
		}()
	}
	for i := range jobs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

func resolveJob(space symbol.Space, j job) result {
	resolution := symbol.Lookup(space, j.query)
	if j.entry.Arity() == Multiple {
		symbols, err := resolution.All()
		return result{symbols: symbols, err: err}
	}
	sym, err := resolution.Single()
	if err != nil {
		return result{err: err}
	}
	return result{symbols: []*symbol.Symbol{sym}}
}
