package symbol

import (
	"fmt"

	"github.com/stackb/konan-interop/pkg/fqname"
)

// Kind classifies a declaration.
type Kind int

const (
	KindUnknown Kind = iota
	Function
	Class
	Variable
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Class:
		return "class"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// Symbol is a resolved reference to a function, class or variable
// declaration.  The pointer is the handle: consumers compare symbols by
// identity and never mutate them after construction.
type Symbol struct {
	// Kind is the kind of declaration.
	Kind Kind
	// Name is the fully-qualified name.  For members this includes the owning
	// class, as in 'kotlinx.cinterop.nativeMemUtils.getByte'.
	Name fqname.Name
	// Receiver is the extension receiver classifier of a function, or Root if
	// the function is not an extension.
	Receiver fqname.Name
	// Operator is true for operator function declarations.
	Operator bool
	// Getter is true for variables that declare an accessor.
	Getter bool
	// Origin names the module or library that declared the symbol.
	Origin string
}

// NewFunction constructs a function symbol.
func NewFunction(name fqname.Name, origin string) *Symbol {
	return &Symbol{Kind: Function, Name: name, Origin: origin}
}

// NewClass constructs a class symbol.
func NewClass(name fqname.Name, origin string) *Symbol {
	return &Symbol{Kind: Class, Name: name, Origin: origin}
}

// NewVariable constructs a variable symbol.
func NewVariable(name fqname.Name, origin string) *Symbol {
	return &Symbol{Kind: Variable, Name: name, Origin: origin}
}

// IsExtension reports whether the symbol has an extension receiver.
func (s *Symbol) IsExtension() bool {
	return !s.Receiver.IsRoot()
}

// String implements fmt.Stringer
func (s *Symbol) String() string {
	if s.IsExtension() {
		return fmt.Sprintf("(%s<%v> %s.<%s>)", s.Name, s.Kind, s.Receiver, s.Origin)
	}
	return fmt.Sprintf("(%s<%v> <%s>)", s.Name, s.Kind, s.Origin)
}
