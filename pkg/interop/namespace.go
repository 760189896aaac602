package interop

import "github.com/stackb/konan-interop/pkg/fqname"

// Namespace is one of the disjoint packages forward declarations are
// declared in.  A C struct tag Foo and an Objective-C class Foo live in
// different namespaces and never collide.
type Namespace int

const (
	// CStructs holds C struct and enum tags.
	CStructs Namespace = iota
	// ObjCClasses holds Objective-C classes.
	ObjCClasses
	// ObjCProtocols holds Objective-C protocols.
	ObjCProtocols
	numNamespaces
)

var namespacePackages = [numNamespaces]fqname.Name{
	CStructs:      "cnames.structs",
	ObjCClasses:   "objcnames.classes",
	ObjCProtocols: "objcnames.protocols",
}

// Namespaces lists every namespace.
func Namespaces() []Namespace {
	return []Namespace{CStructs, ObjCClasses, ObjCProtocols}
}

// NamespaceOf returns the namespace whose package is pkg.
func NamespaceOf(pkg fqname.Name) (Namespace, bool) {
	for i, p := range namespacePackages {
		if p == pkg {
			return Namespace(i), true
		}
	}
	return 0, false
}

// Package returns the package forward declarations of the namespace are
// declared in.
func (n Namespace) Package() fqname.Name {
	return namespacePackages[n]
}

// String implements fmt.Stringer
func (n Namespace) String() string {
	switch n {
	case CStructs:
		return "cstructs"
	case ObjCClasses:
		return "objcclasses"
	case ObjCProtocols:
		return "objcprotocols"
	default:
		return "invalid"
	}
}
