package link

// Definition is a definition list entry, relative to its module.
type Definition struct {
	Name   string
	Offset int
}

// Source is a module as read from the input, before layout.
type Source struct {
	Definitions  []Definition
	Uses         []string
	Instructions []Instruction
}

// Module is a source module placed in the machine's address space.
type Module struct {
	Index        int
	Base         int // Absolute address of the first instruction.
	Definitions  []Definition
	Uses         []string
	Instructions []Instruction

	Oversized []string // Definitions outside the module, clamped to offset 0 by pass 1.
	Unused    []string // Use list entries never resolved, set by pass 2.
}

// Len returns the module length, in words.
func (mod *Module) Len() int {
	return len(mod.Instructions)
}

// End returns the address just past the module.
func (mod *Module) End() int {
	return mod.Base + mod.Len()
}

// Layout is the result of pass one: the placed modules and the symbol
// table they define. A Layout can be linked once.
type Layout struct {
	Modules []*Module
	Symbols *SymbolTable

	linked bool
}

// Size returns the total length of all modules.
func (lay *Layout) Size() int {
	if len(lay.Modules) == 0 {
		return 0
	}
	return lay.Modules[len(lay.Modules)-1].End()
}
