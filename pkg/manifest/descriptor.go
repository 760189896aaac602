package manifest

import (
	"fmt"
	"strings"

	"github.com/stackb/konan-interop/pkg/fqname"
)

const (
	// InteropProperty must equal "true" for a library to be treated as an
	// interop library.
	InteropProperty = "interop"
	// PackageProperty names the package an interop library populates.
	PackageProperty = "package"
	// ExportForwardDeclarationsProperty is a whitespace-separated list of
	// forward declarations the library re-exports to its consumers.
	ExportForwardDeclarationsProperty = "exportForwardDeclarations"
)

// Descriptor is the interop metadata of a library.  It is computed once per
// library and never mutated.
type Descriptor struct {
	// Library is the name of the library the descriptor was read from.
	Library string
	// IsInterop is always true for a descriptor returned by Parse.
	IsInterop bool
	// Package is the package populated by the library.
	Package fqname.Name
	// ExportForwardDeclarations is the sorted, deduplicated set of re-exported
	// forward declarations.
	ExportForwardDeclarations []fqname.Name
}

// ConfigurationError reports a required manifest property missing from an
// interop library.
type ConfigurationError struct {
	Library  string
	Property string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("inconsistent manifest: interop library %s should have `%s` specified", e.Library, e.Property)
}

// Parse builds the descriptor for the named library.  It returns (nil, nil)
// when the library is not an interop library.
func Parse(library string, props Properties) (*Descriptor, error) {
	if interop, _ := props.Get(InteropProperty); interop != "true" {
		return nil, nil
	}
	pkg, _ := props.Get(PackageProperty)
	if strings.TrimSpace(pkg) == "" {
		return nil, &ConfigurationError{Library: library, Property: PackageProperty}
	}
	exports, _ := props.Get(ExportForwardDeclarationsProperty)
	return &Descriptor{
		Library:                   library,
		IsInterop:                 true,
		Package:                   fqname.Parse(pkg),
		ExportForwardDeclarations: fqname.Fields(exports),
	}, nil
}

// String implements fmt.Stringer
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(package=%s, exports=%v)", d.Library, d.Package, d.ExportForwardDeclarations)
}
