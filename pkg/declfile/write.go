package declfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// Write renders symbols as a declaration file.  Each symbol is emitted
// under a package() call named after its parent, so members appear in a
// package named after their owning class; loading the output back yields a
// space with the same qualified names.
func Write(w io.Writer, symbols []*symbol.Symbol) error {
	var order []fqname.Name
	byScope := make(map[fqname.Name][]*symbol.Symbol)
	for _, sym := range symbols {
		scope := sym.Name.Parent()
		if _, ok := byScope[scope]; !ok {
			order = append(order, scope)
		}
		byScope[scope] = append(byScope[scope], sym)
	}

	for i, scope := range order {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "package(%q,\n", scope); err != nil {
			return err
		}
		for _, sym := range byScope[scope] {
			if _, err := fmt.Fprintf(w, "    %s,\n", formatDecl(sym)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ")\n"); err != nil {
			return err
		}
	}
	return nil
}

func formatDecl(sym *symbol.Symbol) string {
	var args []string
	args = append(args, fmt.Sprintf("%q", sym.Name.ShortName()))
	switch sym.Kind {
	case symbol.Function:
		if sym.IsExtension() {
			args = append(args, fmt.Sprintf("receiver = %q", sym.Receiver))
		}
		if sym.Operator {
			args = append(args, "operator = True")
		}
		return "fun(" + strings.Join(args, ", ") + ")"
	case symbol.Variable:
		if sym.Getter {
			args = append(args, "getter = True")
		}
		return "val(" + strings.Join(args, ", ") + ")"
	default:
		return "cls(" + strings.Join(args, ", ") + ")"
	}
}
