package builtins

import (
	"fmt"
	"strings"

	"github.com/stackb/konan-interop/pkg/symbol"
)

// Table binds every catalog entry to its resolved symbols.  A Table is only
// ever returned fully populated, and is immutable.
type Table struct {
	primitives     []Primitive
	singles        [numEntries]*symbol.Symbol
	multiples      [numEntries][]*symbol.Symbol
	readPrimitive  map[Primitive]*symbol.Symbol
	writePrimitive map[Primitive]*symbol.Symbol
	invokeImpl     [numReturnCategories]*symbol.Symbol
}

// Binding is one resolved key of the table.
type Binding struct {
	Entry Entry
	// Key is the primitive or return category of a family entry, empty
	// otherwise.
	Key     string
	Symbols []*symbol.Symbol
}

// String implements fmt.Stringer
func (b Binding) String() string {
	var buf strings.Builder
	buf.WriteString(b.Entry.String())
	if b.Key != "" {
		fmt.Fprintf(&buf, "[%s]", b.Key)
	}
	for _, sym := range b.Symbols {
		buf.WriteRune(' ')
		buf.WriteString(string(sym.Name))
	}
	return buf.String()
}

func newTable(primitives []Primitive) *Table {
	return &Table{
		primitives:     primitives,
		readPrimitive:  make(map[Primitive]*symbol.Symbol, len(primitives)),
		writePrimitive: make(map[Primitive]*symbol.Symbol, len(primitives)),
	}
}

// Get returns the symbol bound to a Single entry, or nil for entries of any
// other arity.
func (t *Table) Get(e Entry) *symbol.Symbol {
	if !e.Valid() {
		return nil
	}
	return t.singles[e]
}

// GetAll returns the symbols bound to a Multiple entry.
func (t *Table) GetAll(e Entry) []*symbol.Symbol {
	if !e.Valid() {
		return nil
	}
	return append([]*symbol.Symbol(nil), t.multiples[e]...)
}

// Primitives returns the primitives the read/write families are bound for.
func (t *Table) Primitives() []Primitive {
	return append([]Primitive(nil), t.primitives...)
}

// ReadPrimitive returns the nativeMemUtils reader of the primitive.
func (t *Table) ReadPrimitive(p Primitive) (*symbol.Symbol, bool) {
	sym, ok := t.readPrimitive[p]
	return sym, ok
}

// WritePrimitive returns the nativeMemUtils writer of the primitive.
func (t *Table) WritePrimitive(p Primitive) (*symbol.Symbol, bool) {
	sym, ok := t.writePrimitive[p]
	return sym, ok
}

// IsReadPrimitive reports whether sym is one of the primitive readers.
func (t *Table) IsReadPrimitive(sym *symbol.Symbol) bool {
	for _, p := range t.primitives {
		if t.readPrimitive[p] == sym {
			return true
		}
	}
	return false
}

// IsWritePrimitive reports whether sym is one of the primitive writers.
func (t *Table) IsWritePrimitive(sym *symbol.Symbol) bool {
	for _, p := range t.primitives {
		if t.writePrimitive[p] == sym {
			return true
		}
	}
	return false
}

// InvokeImpl returns the function invoking a C function pointer and
// returning the given category.  It panics on an invalid category, which
// callers must have rejected already.
func (t *Table) InvokeImpl(c ReturnCategory) *symbol.Symbol {
	if !c.Valid() {
		panic(fmt.Sprintf("unsupported return category: %d", c))
	}
	return t.invokeImpl[c]
}

// Bindings lists every resolved key in catalog order.
func (t *Table) Bindings() []Binding {
	var bindings []Binding
	for _, e := range Entries() {
		switch e.Arity() {
		case Single:
			bindings = append(bindings, Binding{Entry: e, Symbols: []*symbol.Symbol{t.singles[e]}})
		case Multiple:
			bindings = append(bindings, Binding{Entry: e, Symbols: t.GetAll(e)})
		case PerPrimitive:
			family := t.readPrimitive
			if e == WritePrimitive {
				family = t.writePrimitive
			}
			for _, p := range t.primitives {
				bindings = append(bindings, Binding{Entry: e, Key: string(p), Symbols: []*symbol.Symbol{family[p]}})
			}
		case PerReturnCategory:
			for _, c := range ReturnCategories() {
				bindings = append(bindings, Binding{Entry: e, Key: c.String(), Symbols: []*symbol.Symbol{t.invokeImpl[c]}})
			}
		}
	}
	return bindings
}

// bind stores the result of one resolution job.  Each job targets a
// distinct slot.
func (t *Table) bind(j job, symbols []*symbol.Symbol) {
	switch j.entry.Arity() {
	case Single:
		t.singles[j.entry] = symbols[0]
	case Multiple:
		t.multiples[j.entry] = symbols
	case PerPrimitive:
		if j.entry == WritePrimitive {
			t.writePrimitive[j.primitive] = symbols[0]
		} else {
			t.readPrimitive[j.primitive] = symbols[0]
		}
	case PerReturnCategory:
		t.invokeImpl[j.category] = symbols[0]
	}
}
