package binder

import (
	"fmt"

	"zephyr/internal/builtin"
	"zephyr/internal/diag"
	"zephyr/internal/symbols"
)

// addDefaults gives te the members every type has: toString, equals and, when no
// constructor was written, a public parameterless one. User versions of toString
// and equals are checked instead of replaced.
func (b *binder) addDefaults(te *typeEntry) {
	at := te.decl.Name.Loc

	if m, ok := te.sym.Member("toString"); ok {
		b.checkOverride(m, diag.SemaInvalidToStringFunction, 0, builtin.String)
	} else {
		f := symbols.NewFunction("toString", nil, builtin.String, at)
		b.declareGenerated(te, f)
	}

	if m, ok := te.sym.Member("equals"); ok {
		b.checkOverride(m, diag.SemaInvalidEqualsFunction, 1, builtin.Bool)
	} else {
		other := symbols.NewParameter("other", builtin.Any, at)
		other.ReadOnly = true
		f := symbols.NewFunction("equals", []*symbols.ParameterSymbol{other}, builtin.Bool, at)
		b.declareGenerated(te, f)
	}

	if len(te.sym.Constructors()) == 0 {
		c := symbols.NewConstructor(te.sym, nil, at)
		c.Visibility = symbols.Public
		c.Generated = true
		if err := te.scope.DeclareConstructor(c); err != nil {
			panic(fmt.Errorf("binder: %w", err))
		}
		te.pending = append(te.pending, pending{sym: c})
	}
}

func (b *binder) declareGenerated(te *typeEntry, f *symbols.FunctionSymbol) {
	f.Visibility = symbols.Public
	f.Generated = true
	if err := te.scope.DeclareFunction(f); err != nil {
		panic(fmt.Errorf("binder: %w", err))
	}
	te.pending = append(te.pending, pending{sym: f})
}

// checkOverride reports each broken rule of a user toString or equals separately.
func (b *binder) checkOverride(m symbols.Symbol, code diag.Code, arity int, ret *symbols.TypeSymbol) {
	f, ok := m.(*symbols.FunctionSymbol)
	if !ok {
		return
	}
	if len(f.Params) != arity {
		b.errorf(code, f.Decl(), "%s must take %s, found %d", f.Name(), plural(arity, "parameter"), len(f.Params))
	}
	if !f.Return.Equal(ret) {
		b.errorf(code, f.Decl(), "%s must return %s, found %s", f.Name(), ret.Name(), f.Return.Name())
	}
	if f.Visibility != symbols.Public {
		b.errorf(code, f.Decl(), "%s must be public", f.Name())
	}
	if f.Shared {
		b.errorf(code, f.Decl(), "%s must not be shared", f.Name())
	}
}

func plural(n int, noun string) string {
	switch n {
	case 0:
		return "no " + noun + "s"
	case 1:
		return "one " + noun
	default:
		return fmt.Sprintf("%d %ss", n, noun)
	}
}
