package interop

import (
	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// ClassifierAliasingFragment makes the classifiers declared by an interop
// library visible under a forward-declaration namespace.  A reference to
// 'cnames.structs.FILE' resolves to the library's own 'FILE' classifier.
// An aliasing fragment with no targets is valid and resolves nothing.
type ClassifierAliasingFragment struct {
	namespace Namespace
	targets   []symbol.Fragment
	module    *Module
}

// NewClassifierAliasingFragment constructs an aliasing fragment for the
// namespace over the given library fragments, searched in order.
func NewClassifierAliasingFragment(namespace Namespace, targets []symbol.Fragment, module *Module) *ClassifierAliasingFragment {
	return &ClassifierAliasingFragment{
		namespace: namespace,
		targets:   targets,
		module:    module,
	}
}

// Namespace returns the namespace the fragment serves.
func (f *ClassifierAliasingFragment) Namespace() Namespace {
	return f.namespace
}

// Targets returns the library fragments names are resolved against.
func (f *ClassifierAliasingFragment) Targets() []symbol.Fragment {
	return f.targets
}

// Module returns the owning module.
func (f *ClassifierAliasingFragment) Module() *Module {
	return f.module
}

// Package implements part of the symbol.Fragment interface.
func (f *ClassifierAliasingFragment) Package() fqname.Name {
	return f.namespace.Package()
}

// Classifier implements part of the symbol.Fragment interface.
func (f *ClassifierAliasingFragment) Classifier(name string) (*symbol.Symbol, bool) {
	for _, target := range f.targets {
		if sym, ok := target.Classifier(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// ExportedForwardDeclarationsFragment re-exports forward declarations of an
// interop library into the library package, so consumers of the library
// see them as already resolvable.  Whether the exported names exist is not
// checked here; a name that does not resolve simply yields nothing.
type ExportedForwardDeclarationsFragment struct {
	module       *Module
	pkg          fqname.Name
	declarations []fqname.Name
	byShort      map[string]fqname.Name
}

// NewExportedForwardDeclarationsFragment constructs the export record of
// package pkg.
func NewExportedForwardDeclarationsFragment(module *Module, pkg fqname.Name, declarations []fqname.Name) *ExportedForwardDeclarationsFragment {
	byShort := make(map[string]fqname.Name, len(declarations))
	for _, decl := range declarations {
		byShort[decl.ShortName()] = decl
	}
	return &ExportedForwardDeclarationsFragment{
		module:       module,
		pkg:          pkg,
		declarations: declarations,
		byShort:      byShort,
	}
}

// Declarations returns the exported forward declarations.
func (f *ExportedForwardDeclarationsFragment) Declarations() []fqname.Name {
	return f.declarations
}

// ShortNames returns the names the exports are visible as in the package.
func (f *ExportedForwardDeclarationsFragment) ShortNames() []string {
	names := make([]string, len(f.declarations))
	for i, decl := range f.declarations {
		names[i] = decl.ShortName()
	}
	return names
}

// Module returns the owning module.
func (f *ExportedForwardDeclarationsFragment) Module() *Module {
	return f.module
}

// Package implements part of the symbol.Fragment interface.
func (f *ExportedForwardDeclarationsFragment) Package() fqname.Name {
	return f.pkg
}

// Classifier implements part of the symbol.Fragment interface.
func (f *ExportedForwardDeclarationsFragment) Classifier(name string) (*symbol.Symbol, bool) {
	return f.forward(name, make(lookup))
}

func (f *ExportedForwardDeclarationsFragment) forward(name string, l lookup) (*symbol.Symbol, bool) {
	decl, ok := f.byShort[name]
	if !ok || f.module == nil {
		return nil, false
	}
	return f.module.findClassifier(decl, l)
}
