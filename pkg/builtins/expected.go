package builtins

import (
	"github.com/stackb/konan-interop/pkg/symbol"
)

// ExpectedDeclarations returns one declaration for every key of the catalog,
// shaped so that New resolves each key to exactly one of them.  It is how
// built-ins fixtures are generated in lock-step with the catalog.
func ExpectedDeclarations(origin string, extras ...Primitive) []*symbol.Symbol {
	b := &builder{extras: extras}
	primitives, err := b.primitives()
	if err != nil {
		return nil
	}
	var decls []*symbol.Symbol
	for _, j := range plan(primitives) {
		sym := &symbol.Symbol{
			Kind:   j.query.Kind,
			Name:   j.query.QualifiedName(),
			Origin: origin,
		}
		if expect := catalog[j.entry].expect; expect != nil {
			expect(sym)
		}
		decls = append(decls, sym)
	}
	return decls
}
