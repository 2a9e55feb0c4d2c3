package scope

import (
	"fmt"

	"zephyr/internal/symbols"
)

// Block holds locals. Nested blocks may shadow outer names.
type Block struct {
	parent Scope
	vars   map[string]symbols.Value
}

func NewBlock(parent Scope) *Block {
	return &Block{parent: parent, vars: make(map[string]symbols.Value)}
}

func (*Block) Kind() Kind      { return KindBlock }
func (s *Block) Parent() Scope { return s.parent }

// Declare adds a variable or parameter to this block.
func (s *Block) Declare(v symbols.Value) error {
	if _, exists := s.vars[v.Name()]; exists {
		return fmt.Errorf("%s %s: %w", v.Kind(), v.Name(), ErrAlreadyDeclared)
	}
	s.vars[v.Name()] = v
	return nil
}

// IsVariableDeclared only looks at this block, never its parents.
func (s *Block) IsVariableDeclared(name string) bool {
	_, ok := s.vars[name]
	return ok
}

func (s *Block) Lookup(name string) (symbols.Symbol, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.Lookup(name)
}
