package symbol

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dghubble/trie"

	"github.com/stackb/konan-interop/pkg/fqname"
)

var spacePathTrieConfig = &trie.PathTrieConfig{
	Segmenter: fqname.Segmenter,
}

// Space is a read-only view over the declarations of a compiled module.
// Implementations must be safe for concurrent lookups.
type Space interface {
	// Contributed returns the declarations of the given kind named 'name'
	// that are members of 'scope', which is either a package or a class.
	// Overloads are all returned.
	Contributed(scope fqname.Name, name string, kind Kind) []*Symbol
}

// TrieSpace implements Space using a trie keyed by qualified name.  It is
// populated with Put during construction and only read afterwards.
type TrieSpace struct {
	trie  *trie.PathTrie
	count int
}

// NewTrieSpace constructs a new TrieSpace holding the given symbols.
func NewTrieSpace(symbols ...*Symbol) *TrieSpace {
	s := &TrieSpace{
		trie: trie.NewPathTrieWithConfig(spacePathTrieConfig),
	}
	for _, sym := range symbols {
		s.Put(sym)
	}
	return s
}

// Put adds a declaration.  Several declarations may share one name.
func (s *TrieSpace) Put(sym *Symbol) {
	key := string(sym.Name)
	var decls []*Symbol
	if value := s.trie.Get(key); value != nil {
		decls = value.([]*Symbol)
	}
	s.trie.Put(key, append(decls, sym))
	s.count++
}

// Len returns the number of declarations in the space.
func (s *TrieSpace) Len() int {
	return s.count
}

// Contributed implements the Space interface.
func (s *TrieSpace) Contributed(scope fqname.Name, name string, kind Kind) (symbols []*Symbol) {
	value := s.trie.Get(string(scope.Child(name)))
	if value == nil {
		return nil
	}
	for _, sym := range value.([]*Symbol) {
		if sym.Kind == kind {
			symbols = append(symbols, sym)
		}
	}
	return
}

// Symbols returns all declarations sorted by name.
func (s *TrieSpace) Symbols() (symbols []*Symbol) {
	s.trie.Walk(func(key string, value interface{}) error {
		symbols = append(symbols, value.([]*Symbol)...)
		return nil
	})
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Name < symbols[j].Name
	})
	return
}

// String implements fmt.Stringer
func (s *TrieSpace) String() string {
	var buf strings.Builder
	for _, sym := range s.Symbols() {
		fmt.Fprintln(&buf, sym)
	}
	return buf.String()
}
