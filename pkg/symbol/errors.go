package symbol

import (
	"errors"
	"fmt"

	"github.com/stackb/konan-interop/pkg/fqname"
)

var (
	// ErrSymbolNotFound is wrapped by an InternalConsistencyError when a
	// required declaration is missing.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrSymbolAmbiguous is wrapped by an InternalConsistencyError when a
	// declaration required to be unique has more than one match.
	ErrSymbolAmbiguous = errors.New("symbol ambiguous")
)

// InternalConsistencyError reports that a required built-in declaration
// resolved to an unexpected number of matches.  It always indicates that the
// built-in declarations and the catalog expecting them are out of step, never
// a defect in user code.
type InternalConsistencyError struct {
	// Operation is the logical operation the lookup was made for.
	Operation string
	// Name is the qualified name that was looked up.
	Name fqname.Name
	// Count is the actual number of matches.
	Count int
	// Want describes the expected number of matches.
	Want Cardinality
}

// Error implements the error interface.
func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency: %s: want %v declaration of %s, found %d",
		e.Operation, e.Want, e.Name, e.Count)
}

// Unwrap returns ErrSymbolNotFound or ErrSymbolAmbiguous.
func (e *InternalConsistencyError) Unwrap() error {
	if e.Count == 0 {
		return ErrSymbolNotFound
	}
	return ErrSymbolAmbiguous
}
