package link

import (
	"iter"
	"slices"
)

// Symbol is an entry in the global symbol table.
type Symbol struct {
	Name            string
	Address         int  // Absolute address.
	Module          int  // Index of the defining module.
	MultiplyDefined bool // Set if a later definition list also named it.
	Used            bool // Set once an External word resolves to it.
}

// SymbolTable maps symbol names to symbols, in order of definition.
type SymbolTable struct {
	symbols []*Symbol
	index   map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index: make(map[string]*Symbol),
	}
}

// Define admits a new symbol. If the name is already present, the existing
// entry is flagged as multiply defined and returned unchanged, with ok false.
func (st *SymbolTable) Define(name string, address int, module int) (sym *Symbol, ok bool) {
	sym, found := st.index[name]
	if found {
		sym.MultiplyDefined = true
		return
	}

	sym = &Symbol{
		Name:    name,
		Address: address,
		Module:  module,
	}
	st.index[name] = sym
	st.symbols = append(st.symbols, sym)
	ok = true

	return
}

// Lookup finds a symbol by name.
func (st *SymbolTable) Lookup(name string) (sym *Symbol, ok bool) {
	sym, ok = st.index[name]
	return
}

// Len returns the number of distinct symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// All iterates over the symbols in definition order.
func (st *SymbolTable) All() iter.Seq[*Symbol] {
	return slices.Values(st.symbols)
}
