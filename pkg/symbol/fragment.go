package symbol

import (
	"github.com/stackb/konan-interop/pkg/fqname"
)

// Fragment is the contribution of one library or synthetic source to a
// package.  A module is an ordered list of fragments.
type Fragment interface {
	// Package is the qualified name of the package the fragment contributes
	// to.
	Package() fqname.Name
	// Classifier returns the class named 'name' that the fragment makes
	// visible in its package.
	Classifier(name string) (*Symbol, bool)
}

// PackageFragment implements Fragment for the declarations a library
// contributes to a package.
type PackageFragment struct {
	pkg     fqname.Name
	origin  string
	decls   []*Symbol
	byShort map[string]*Symbol
}

// NewPackageFragment constructs a fragment holding the given top-level
// declarations of package 'pkg'.  Member declarations (those whose parent is
// not 'pkg') are kept but never returned by Classifier.
func NewPackageFragment(pkg fqname.Name, origin string, decls ...*Symbol) *PackageFragment {
	f := &PackageFragment{
		pkg:     pkg,
		origin:  origin,
		byShort: make(map[string]*Symbol),
	}
	for _, sym := range decls {
		f.decls = append(f.decls, sym)
		if sym.Kind != Class || sym.Name.Parent() != pkg {
			continue
		}
		if _, exists := f.byShort[sym.Name.ShortName()]; !exists {
			f.byShort[sym.Name.ShortName()] = sym
		}
	}
	return f
}

// Package implements part of the Fragment interface.
func (f *PackageFragment) Package() fqname.Name {
	return f.pkg
}

// Origin returns the name of the library that contributed the fragment.
func (f *PackageFragment) Origin() string {
	return f.origin
}

// Classifier implements part of the Fragment interface.
func (f *PackageFragment) Classifier(name string) (*Symbol, bool) {
	sym, ok := f.byShort[name]
	return sym, ok
}

// Declarations returns all declarations of the fragment in insertion order.
func (f *PackageFragment) Declarations() []*Symbol {
	return f.decls
}
