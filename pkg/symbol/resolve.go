package symbol

import (
	"github.com/stackb/konan-interop/pkg/fqname"
)

// Cardinality is the number of matches a query expects.
type Cardinality int

const (
	// ExactlyOne requires a single match.
	ExactlyOne Cardinality = iota
	// AtLeastOne requires one or more matches, all of which are kept.
	AtLeastOne
)

// String implements fmt.Stringer
func (c Cardinality) String() string {
	if c == AtLeastOne {
		return "at least one"
	}
	return "exactly one"
}

// Predicate is a structural filter applied to candidates of a query.
type Predicate func(*Symbol) bool

// Query looks up the declarations named Name of kind Kind in Scope.
type Query struct {
	// Operation is the logical operation name used in diagnostics.
	Operation string
	Scope     fqname.Name
	Name      string
	Kind      Kind
	// Filter further restricts candidates.  Nil accepts all.
	Filter Predicate
}

// QualifiedName returns the full name being looked up.
func (q Query) QualifiedName() fqname.Name {
	return q.Scope.Child(q.Name)
}

// Status distinguishes the outcomes of a lookup.
type Status int

const (
	NotFound Status = iota
	Found
	Ambiguous
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Resolution is the outcome of a query.
type Resolution struct {
	Query   Query
	Matches []*Symbol
}

// Lookup runs the query against the space.
func Lookup(space Space, q Query) Resolution {
	var matches []*Symbol
	for _, sym := range space.Contributed(q.Scope, q.Name, q.Kind) {
		if q.Filter == nil || q.Filter(sym) {
			matches = append(matches, sym)
		}
	}
	return Resolution{Query: q, Matches: matches}
}

// Status classifies the number of matches.
func (r Resolution) Status() Status {
	switch len(r.Matches) {
	case 0:
		return NotFound
	case 1:
		return Found
	default:
		return Ambiguous
	}
}

// Single returns the match, or an *InternalConsistencyError unless there is
// exactly one.
func (r Resolution) Single() (*Symbol, error) {
	if r.Status() != Found {
		return nil, r.error(ExactlyOne)
	}
	return r.Matches[0], nil
}

// All returns the matches, or an *InternalConsistencyError if there are
// none.
func (r Resolution) All() ([]*Symbol, error) {
	if r.Status() == NotFound {
		return nil, r.error(AtLeastOne)
	}
	return r.Matches, nil
}

func (r Resolution) error(want Cardinality) error {
	return &InternalConsistencyError{
		Operation: r.Query.Operation,
		Name:      r.Query.QualifiedName(),
		Count:     len(r.Matches),
		Want:      want,
	}
}

// ResolveExactlyOne looks up the query and requires a single match.
func ResolveExactlyOne(space Space, q Query) (*Symbol, error) {
	return Lookup(space, q).Single()
}

// ResolveAll looks up the query and requires at least one match.
func ResolveAll(space Space, q Query) ([]*Symbol, error) {
	return Lookup(space, q).All()
}

// WithReceiver accepts extension declarations whose receiver is exactly the
// given classifier.
func WithReceiver(receiver fqname.Name) Predicate {
	return func(sym *Symbol) bool {
		return sym.IsExtension() && sym.Receiver == receiver
	}
}

// IsOperator accepts operator declarations.
func IsOperator(sym *Symbol) bool {
	return sym.Operator
}

// HasGetter accepts variables that declare an accessor.
func HasGetter(sym *Symbol) bool {
	return sym.Getter
}

// AllOf combines predicates; a candidate must satisfy each of them.
func AllOf(predicates ...Predicate) Predicate {
	return func(sym *Symbol) bool {
		for _, p := range predicates {
			if !p(sym) {
				return false
			}
		}
		return true
	}
}
