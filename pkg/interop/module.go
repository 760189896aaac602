package interop

import (
	"sync"

	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// Module is the ordered list of package fragments visible to a compiled
// module.  Fragments are only ever appended.
type Module struct {
	name string

	mu           sync.RWMutex
	fragments    []symbol.Fragment
	dependencies []*Module
}

// NewModule constructs a module holding the given fragments.
func NewModule(name string, fragments ...symbol.Fragment) *Module {
	return &Module{
		name:      name,
		fragments: fragments,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// AddFragments appends fragments.
func (m *Module) AddFragments(fragments ...symbol.Fragment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragments = append(m.fragments, fragments...)
}

// AddDependency makes the classifiers of dep visible through this module.
func (m *Module) AddDependency(dep *Module) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dependencies = append(m.dependencies, dep)
}

// Fragments returns a copy of the fragment list.
func (m *Module) Fragments() []symbol.Fragment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]symbol.Fragment(nil), m.fragments...)
}

// PackageFragments returns the fragments contributing to pkg.
func (m *Module) PackageFragments(pkg fqname.Name) (fragments []symbol.Fragment) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.fragments {
		if f.Package() == pkg {
			fragments = append(fragments, f)
		}
	}
	return
}

// FindClassifier resolves a fully-qualified classifier name in this module
// and then in its dependencies.
func (m *Module) FindClassifier(name fqname.Name) (*symbol.Symbol, bool) {
	return m.findClassifier(name, make(lookup))
}

type visit struct {
	module *Module
	name   fqname.Name
}

// lookup records the (module, name) pairs being resolved, so that
// forwarding fragments referring back to a name in progress terminate.
type lookup map[visit]bool

// forwarder is implemented by fragments that resolve names through the
// module rather than from their own declarations.
type forwarder interface {
	forward(name string, l lookup) (*symbol.Symbol, bool)
}

func (m *Module) findClassifier(name fqname.Name, l lookup) (*symbol.Symbol, bool) {
	v := visit{module: m, name: name}
	if l[v] {
		return nil, false
	}
	l[v] = true
	defer delete(l, v)

	short := name.ShortName()
	for _, f := range m.PackageFragments(name.Parent()) {
		if fw, ok := f.(forwarder); ok {
			if sym, found := fw.forward(short, l); found {
				return sym, true
			}
			continue
		}
		if sym, ok := f.Classifier(short); ok {
			return sym, true
		}
	}

	m.mu.RLock()
	deps := append([]*Module(nil), m.dependencies...)
	m.mu.RUnlock()
	for _, dep := range deps {
		if sym, ok := dep.findClassifier(name, l); ok {
			return sym, true
		}
	}
	return nil, false
}
