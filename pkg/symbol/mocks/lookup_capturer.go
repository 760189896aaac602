package mocks

import (
	"sync"
	"testing"

	mock "github.com/stretchr/testify/mock"

	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// LookupCapturer records the qualified names looked up in a mock Space and
// answers each from a backing space.
type LookupCapturer struct {
	Space *Space

	mu  sync.Mutex
	Got []fqname.Name
}

func (c *LookupCapturer) capture(scope fqname.Name, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Got = append(c.Got, scope.Child(name))
}

// NewLookupCapturer returns a capturer delegating lookups to 'backing'.
func NewLookupCapturer(t *testing.T, backing symbol.Space) *LookupCapturer {
	c := &LookupCapturer{
		Space: NewSpace(t),
	}

	c.Space.
		On("Contributed", mock.Anything, mock.Anything, mock.Anything).
		Maybe().
		Return(func(scope fqname.Name, name string, kind symbol.Kind) []*symbol.Symbol {
			c.capture(scope, name)
			return backing.Contributed(scope, name, kind)
		})

	return c
}
