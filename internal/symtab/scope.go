package symtab

import (
	"github.com/pkg/errors"
)

// Scope is one function's namespace.
//
// WHAT HAPPENED TO NESTED SCOPES?
// Nothing in the language creates them. A block `{ ... }` groups
// statements without introducing names of its own, so a variable
// assigned inside an if-branch is the same variable everywhere in the
// function. One flat table per function captures that exactly; a scope
// tree would only add lookups that can never miss differently.
type Scope struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]*Symbol)}
}

// Define adds a symbol to the scope.
//
// It fails if the name is already taken. In practice that means
// duplicate parameter names: variables are defined exactly once, at
// their first assignment, after a failed Lookup.
func (s *Scope) Define(symbol *Symbol) error {
	if existing, ok := s.symbols[symbol.Name]; ok {
		return errors.Errorf("symbol %s already declared at %s",
			symbol.Name, existing.Pos)
	}
	s.symbols[symbol.Name] = symbol
	s.order = append(s.order, symbol)
	return nil
}

// Lookup finds a symbol by name.
//
// RETURNS:
// - The symbol if found
// - nil if not found (the caller decides whether that is an error)
func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns all symbols in definition order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Len returns the number of defined symbols.
func (s *Scope) Len() int {
	return len(s.order)
}
