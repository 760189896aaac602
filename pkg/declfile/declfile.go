// Package declfile loads declaration files: Starlark programs that describe
// the declarations a module contributes, one package() call per package.
//
//	package("kotlinx.cinterop",
//	    cls("CPointer", members = [val("rawValue")]),
//	    fun("getRawValue", receiver = "kotlinx.cinterop.CPointer"),
//	    fun("invoke", receiver = "kotlinx.cinterop.CPointer", operator = True),
//	)
package declfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// decl is the starlark value produced by fun(), cls() and val().
type decl struct {
	kind     symbol.Kind
	name     string
	receiver string
	operator bool
	getter   bool
	members  []*decl
}

func (d *decl) String() string       { return fmt.Sprintf("%v(%q)", d.kind, d.name) }
func (d *decl) Type() string         { return "decl" }
func (d *decl) Freeze()              {}
func (d *decl) Truth() starlark.Bool { return starlark.True }
func (d *decl) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: decl")
}

// symbols flattens the declaration and its members into symbols scoped
// under 'scope'.
func (d *decl) symbols(scope fqname.Name, origin string) []*symbol.Symbol {
	name := scope.Child(d.name)
	sym := &symbol.Symbol{
		Kind:     d.kind,
		Name:     name,
		Receiver: fqname.Parse(d.receiver),
		Operator: d.operator,
		Getter:   d.getter,
		Origin:   origin,
	}
	symbols := []*symbol.Symbol{sym}
	for _, member := range d.members {
		symbols = append(symbols, member.symbols(name, origin)...)
	}
	return symbols
}

// Loader evaluates declaration files.
type Loader struct {
	logger zerolog.Logger
	origin string

	fragments []*symbol.PackageFragment
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) *Loader

// WithLogger sets the logger that print() output is written to.
func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) *Loader {
		l.logger = logger
		return l
	}
}

// NewLoader constructs a loader attributing declarations to 'origin'.
func NewLoader(origin string, options ...LoaderOption) *Loader {
	l := &Loader{
		logger: zerolog.Nop(),
		origin: origin,
	}
	for _, opt := range options {
		l = opt(l)
	}
	return l
}

// Load evaluates the file and returns the package fragments it declares, in
// declaration order.
func (l *Loader) Load(filename string, src io.Reader) ([]*symbol.PackageFragment, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	l.fragments = nil
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Info().Str("file", filename).Msg(msg)
		},
	}
	predeclared := starlark.StringDict{
		"package": starlark.NewBuiltin("package", l.packageBuiltin),
		"fun":     starlark.NewBuiltin("fun", funBuiltin),
		"cls":     starlark.NewBuiltin("cls", clsBuiltin),
		"val":     starlark.NewBuiltin("val", valBuiltin),
	}
	if _, err := starlark.ExecFile(thread, filename, bytes.NewReader(data), predeclared); err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, fmt.Errorf("%s", evalErr.Backtrace())
		}
		return nil, err
	}

	l.logger.Debug().
		Str("file", filename).
		Int("packages", len(l.fragments)).
		Msg("loaded declaration file")

	return l.fragments, nil
}

// LoadFile is like Load but reads the named file.
func (l *Loader) LoadFile(filename string) ([]*symbol.PackageFragment, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Load(filename, f)
}

// Space collects the declarations of the fragments into a symbol space.
func Space(fragments []*symbol.PackageFragment) *symbol.TrieSpace {
	space := symbol.NewTrieSpace()
	for _, f := range fragments {
		for _, sym := range f.Declarations() {
			space.Put(sym)
		}
	}
	return space
}

func (l *Loader) packageBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing package name", b.Name())
	}
	name, ok := starlark.AsString(args[0])
	if !ok || fqname.Parse(name).IsRoot() {
		return nil, fmt.Errorf("%s: package name must be a non-empty string, got %s", b.Name(), args[0].Type())
	}
	pkg := fqname.Parse(name)

	var symbols []*symbol.Symbol
	for i, arg := range args[1:] {
		d, ok := arg.(*decl)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: want decl, got %s", b.Name(), i+2, arg.Type())
		}
		symbols = append(symbols, d.symbols(pkg, l.origin)...)
	}
	l.fragments = append(l.fragments, symbol.NewPackageFragment(pkg, l.origin, symbols...))
	return starlark.None, nil
}

func funBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	d := &decl{kind: symbol.Function}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &d.name,
		"receiver?", &d.receiver,
		"operator?", &d.operator,
	); err != nil {
		return nil, err
	}
	return d, nil
}

func valBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	d := &decl{kind: symbol.Variable}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &d.name,
		"getter?", &d.getter,
	); err != nil {
		return nil, err
	}
	return d, nil
}

func clsBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	d := &decl{kind: symbol.Class}
	var members *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &d.name,
		"members?", &members,
	); err != nil {
		return nil, err
	}
	if members != nil {
		for i := 0; i < members.Len(); i++ {
			member, ok := members.Index(i).(*decl)
			if !ok {
				return nil, fmt.Errorf("%s: members[%d]: want decl, got %s", b.Name(), i, members.Index(i).Type())
			}
			d.members = append(d.members, member)
		}
	}
	return d, nil
}
