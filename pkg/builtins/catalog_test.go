package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackb/konan-interop/pkg/symbol"
)

func TestCatalogComplete(t *testing.T) {
	operations := make(map[string]Entry)
	for _, e := range Entries() {
		spec := catalog[e]
		if spec.operation == "" {
			t.Fatalf("entry %d has no catalog spec", e)
		}
		if prev, ok := operations[spec.operation]; ok {
			t.Errorf("entries %d and %d share operation %q", prev, e, spec.operation)
		}
		operations[spec.operation] = e
		if spec.scope.IsRoot() {
			t.Errorf("%v: missing scope", e)
		}
		if spec.kind == symbol.KindUnknown {
			t.Errorf("%v: missing kind", e)
		}
		switch spec.arity {
		case PerPrimitive, PerReturnCategory:
			if spec.name != "" {
				t.Errorf("%v: family entries derive their names", e)
			}
		default:
			if spec.name == "" {
				t.Errorf("%v: missing name", e)
			}
		}
	}
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "cFunctionPointerInvokes", CFunctionPointerInvokes.String())
	assert.Equal(t, "invalid", Entry(-1).String())
	assert.Equal(t, "invalid", numEntries.String())
	assert.Equal(t, Multiple, CFunctionPointerInvokes.Arity())
	assert.Equal(t, symbol.Class, ObjCOverrideInit.Kind())
}

func TestReturnCategories(t *testing.T) {
	categories := ReturnCategories()
	assert.Len(t, categories, 13)
	for _, c := range categories {
		parsed, ok := ParseReturnCategory(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
	_, ok := ParseReturnCategory("Char")
	assert.False(t, ok)
	assert.Equal(t, "invokeImplBooleanRet", ReturnBoolean.invokeName())
	assert.Equal(t, "invalid", ReturnCategory(99).String())
}

func TestPrimitiveNames(t *testing.T) {
	assert.Equal(t, "getFloat", Float.readName())
	assert.Equal(t, "putUShort", UShort.writeName())
}

func TestInvokeImplPanicsOnUnsupportedCategory(t *testing.T) {
	table, err := New(spaceWithout(nil))
	assert.NoError(t, err)
	assert.Panics(t, func() {
		table.InvokeImpl(numReturnCategories)
	})
}

func TestExpectedDeclarationsShape(t *testing.T) {
	decls := ExpectedDeclarations("builtins")
	byName := make(map[string]*symbol.Symbol)
	for _, sym := range decls {
		byName[string(sym.Name)] = sym
	}
	if sym := byName["kotlinx.cinterop.invoke"]; assert.NotNil(t, sym) {
		assert.True(t, sym.Operator)
		assert.Equal(t, CPointerName, sym.Receiver)
	}
	if sym := byName["kotlinx.cinterop.getRawPointer"]; assert.NotNil(t, sym) {
		assert.Equal(t, NativePointedName, sym.Receiver)
	}
	if sym := byName["kotlinx.cinterop.NativePointed.rawPtr"]; assert.NotNil(t, sym) {
		assert.True(t, sym.Getter)
		assert.Equal(t, symbol.Variable, sym.Kind)
	}
	assert.NotContains(t, byName, "kotlinx.cinterop.nativeMemUtils.getUInt")
}
