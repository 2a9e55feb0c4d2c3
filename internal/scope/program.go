package scope

import (
	"fmt"

	"zephyr/internal/symbols"
)

// Program is the root scope: declared and imported types, their type scopes,
// exports and import namespaces.
type Program struct {
	types      map[string]*symbols.TypeSymbol
	typeOrder  []*symbols.TypeSymbol
	typeScopes map[string]*Type
	exports    map[string]*symbols.ExportSymbol
	exportList []*symbols.ExportSymbol
	imports    map[string]*Program
	importList []string
}

func NewProgram() *Program {
	return &Program{
		types:      make(map[string]*symbols.TypeSymbol),
		typeScopes: make(map[string]*Type),
		exports:    make(map[string]*symbols.ExportSymbol),
		imports:    make(map[string]*Program),
	}
}

func (*Program) Kind() Kind    { return KindProgram }
func (*Program) Parent() Scope { return nil }

// Lookup finds a type by simple name: own types first, then exported types of imports.
func (p *Program) Lookup(name string) (symbols.Symbol, bool) {
	if t, ok := p.Type(name); ok {
		return t, true
	}
	if t, ok := p.ImportedType(name); ok {
		return t, true
	}
	return nil, false
}

func (p *Program) DeclareType(t *symbols.TypeSymbol) error {
	if _, exists := p.types[t.Name()]; exists {
		return fmt.Errorf("type %s: %w", t.Name(), ErrAlreadyDeclared)
	}
	p.types[t.Name()] = t
	p.typeOrder = append(p.typeOrder, t)
	return nil
}

// DefineType attaches the type scope holding t's members and bodies.
func (p *Program) DefineType(t *symbols.TypeSymbol, ts *Type) {
	p.typeScopes[t.Name()] = ts
}

func (p *Program) IsTypeDeclared(name string) bool {
	_, ok := p.types[name]
	return ok
}

func (p *Program) Type(name string) (*symbols.TypeSymbol, bool) {
	t, ok := p.types[name]
	return t, ok
}

// Types returns the types declared in this program in declaration order, builtins first.
func (p *Program) Types() []*symbols.TypeSymbol { return p.typeOrder }

// TypeScope returns the scope of t, searching imports when t is not local.
func (p *Program) TypeScope(t *symbols.TypeSymbol) (*Type, bool) {
	if ts, ok := p.typeScopes[t.Name()]; ok {
		return ts, true
	}
	for _, ns := range p.importList {
		if ts, ok := p.imports[ns].TypeScope(t); ok {
			return ts, true
		}
	}
	return nil, false
}

func (p *Program) DeclareExport(e *symbols.ExportSymbol) error {
	if _, exists := p.exports[e.Name()]; exists {
		return fmt.Errorf("export %s: %w", e.Name(), ErrAlreadyDeclared)
	}
	p.exports[e.Name()] = e
	p.exportList = append(p.exportList, e)
	return nil
}

func (p *Program) IsExportDeclared(name string) bool {
	_, ok := p.exports[name]
	return ok
}

func (p *Program) Exports() []*symbols.ExportSymbol { return p.exportList }

// Import merges an imported program as the namespace ns.
func (p *Program) Import(ns string, imported *Program) error {
	if _, exists := p.imports[ns]; exists {
		return fmt.Errorf("namespace %s: %w", ns, ErrAlreadyDeclared)
	}
	p.imports[ns] = imported
	p.importList = append(p.importList, ns)
	return nil
}

// Namespaces lists import namespaces in import order.
func (p *Program) Namespaces() []string { return p.importList }

func (p *Program) Imported(ns string) (*Program, bool) {
	imp, ok := p.imports[ns]
	return imp, ok
}

// ImportedType finds a type exported by one of the imports. Types an import
// declares without exporting are not visible here.
func (p *Program) ImportedType(name string) (*symbols.TypeSymbol, bool) {
	for _, ns := range p.importList {
		imp := p.imports[ns]
		if !imp.IsExportDeclared(name) {
			continue
		}
		if t, ok := imp.Lookup(name); ok {
			if ts, ok := t.(*symbols.TypeSymbol); ok {
				return ts, true
			}
		}
	}
	return nil, false
}

// QualifiedType finds any type declared by the import ns, exported or not.
func (p *Program) QualifiedType(ns, name string) (*symbols.TypeSymbol, bool) {
	imp, ok := p.imports[ns]
	if !ok {
		return nil, false
	}
	if t, ok := imp.Type(name); ok && !t.Host {
		return t, true
	}
	return imp.ImportedType(name)
}
