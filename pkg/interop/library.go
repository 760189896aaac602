package interop

import (
	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/manifest"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// Library is an interop library: one that populates a single package from a
// foreign API description and may re-export forward declarations.
type Library struct {
	descriptor *manifest.Descriptor
}

// NewLibrary constructs the library described by d.
func NewLibrary(d *manifest.Descriptor) *Library {
	return &Library{descriptor: d}
}

// CreateLibrary reads the interop metadata of the named library.  It returns
// (nil, nil) when the library is not an interop library and a
// *manifest.ConfigurationError when its manifest is inconsistent.
func CreateLibrary(name string, props manifest.Properties) (*Library, error) {
	d, err := manifest.Parse(name, props)
	if err != nil || d == nil {
		return nil, err
	}
	return NewLibrary(d), nil
}

// Name returns the library name.
func (l *Library) Name() string {
	return l.descriptor.Library
}

// Package returns the package the library populates.
func (l *Library) Package() fqname.Name {
	return l.descriptor.Package
}

// Descriptor returns the manifest descriptor of the library.
func (l *Library) Descriptor() *manifest.Descriptor {
	return l.descriptor
}

// SyntheticPackages are the fragments an interop library adds to the module
// that loads it.
type SyntheticPackages struct {
	// Aliases holds one entry per namespace, possibly with no targets.
	Aliases map[Namespace]*ClassifierAliasingFragment
	// Exports is the export record of the library package.
	Exports *ExportedForwardDeclarationsFragment
}

// Fragments flattens the synthetic packages in namespace order followed by
// the export record.
func (s *SyntheticPackages) Fragments() []symbol.Fragment {
	fragments := make([]symbol.Fragment, 0, len(s.Aliases)+1)
	for _, ns := range Namespaces() {
		fragments = append(fragments, s.Aliases[ns])
	}
	return append(fragments, s.Exports)
}

// CreateSyntheticPackages builds the aliasing fragments and the export
// record for the library, given the fragments produced by loading it.  Only
// fragments of the library's own package are aliased.
func (l *Library) CreateSyntheticPackages(module *Module, fragments []symbol.Fragment) *SyntheticPackages {
	var own []symbol.Fragment
	for _, f := range fragments {
		if f.Package() == l.Package() {
			own = append(own, f)
		}
	}

	aliases := make(map[Namespace]*ClassifierAliasingFragment, numNamespaces)
	for _, ns := range Namespaces() {
		aliases[ns] = NewClassifierAliasingFragment(ns, own, module)
	}

	return &SyntheticPackages{
		Aliases: aliases,
		Exports: NewExportedForwardDeclarationsFragment(module, l.Package(), l.descriptor.ExportForwardDeclarations),
	}
}
