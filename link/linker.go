// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package link

import (
	"log"
	"slices"
)

const (
	MACHINE_SIZE = 200 // Default machine memory size, in words.
)

// Linker is a two-pass linker.
type Linker struct {
	Verbose     bool // If set, verbosely logs the linker actions.
	MachineSize int  // Machine memory size. Zero selects MACHINE_SIZE.
}

// NewLinker creates a linker for the default machine.
func NewLinker() *Linker {
	return &Linker{MachineSize: MACHINE_SIZE}
}

// machineSize returns the effective machine memory size.
func (ln *Linker) machineSize() int {
	if ln.MachineSize <= 0 {
		return MACHINE_SIZE
	}
	return ln.MachineSize
}

// Link runs both passes over the sources.
func (ln *Linker) Link(sources []Source) (report *Report) {
	// A fresh layout can always be linked.
	report, _ = ln.Pass2(ln.Pass1(sources))
	return
}

// Pass1 lays out the modules end to end and builds the symbol table.
func (ln *Linker) Pass1(sources []Source) (layout *Layout) {
	layout = &Layout{
		Modules: make([]*Module, 0, len(sources)),
		Symbols: NewSymbolTable(),
	}

	base := 0
	for n, src := range sources {
		mod := &Module{
			Index:        n,
			Base:         base,
			Definitions:  slices.Clone(src.Definitions),
			Uses:         slices.Clone(src.Uses),
			Instructions: slices.Clone(src.Instructions),
		}
		base = mod.End()

		if ln.Verbose {
			log.Printf("pass1: module %d base %d length %d", mod.Index, mod.Base, mod.Len())
		}

		for _, def := range mod.Definitions {
			offset := def.Offset
			oversized := offset < 0 || offset > mod.Len()
			if oversized {
				offset = 0
			}

			sym, ok := layout.Symbols.Define(def.Name, mod.Base+offset, mod.Index)
			if !ok {
				if ln.Verbose {
					log.Printf("pass1: module %d: %v multiply defined", mod.Index, def.Name)
				}
				continue
			}

			if oversized {
				mod.Oversized = append(mod.Oversized, def.Name)
			}

			if ln.Verbose {
				log.Printf("pass1: module %d: %v=%d", mod.Index, sym.Name, sym.Address)
			}
		}

		layout.Modules = append(layout.Modules, mod)
	}

	return
}

// resolve relocates a single instruction of a module.
func (ln *Linker) resolve(mod *Module, inst Instruction, symbols *SymbolTable, used map[string]bool) (address int, diag error) {
	// Words built outside the reader may be out of range.
	diag = inst.Validate()
	if diag != nil {
		return
	}

	address = inst.Operand

	switch inst.Mode {
	case MODE_IMMEDIATE:
	case MODE_ABSOLUTE:
		if inst.Operand >= ln.machineSize() {
			address = 0
			diag = ErrAbsoluteExceedsMachine
		}
	case MODE_RELATIVE:
		if inst.Operand > mod.Len() {
			address = 0
			diag = ErrRelativeExceedsModule
		} else {
			address = mod.Base + inst.Operand
		}
	case MODE_EXTERNAL:
		if inst.Operand < 0 || inst.Operand >= len(mod.Uses) {
			diag = ErrExternalExceedsUses
			return
		}
		name := mod.Uses[inst.Operand]
		sym, ok := symbols.Lookup(name)
		if !ok {
			address = 0
			diag = ErrSymbolUndefined(name)
			return
		}
		address = sym.Address
		sym.Used = true
		used[name] = true
	}

	return
}

// Pass2 relocates every instruction of a layout and assembles the report.
func (ln *Linker) Pass2(layout *Layout) (report *Report, err error) {
	if layout.linked {
		err = ErrLayoutLinked
		return
	}
	layout.linked = true

	report = &Report{
		Memory: make([]MemoryEntry, 0, layout.Size()),
	}

	for _, mod := range layout.Modules {
		used := make(map[string]bool, len(mod.Uses))
		for _, inst := range mod.Instructions {
			address, diag := ln.resolve(mod, inst, layout.Symbols, used)
			entry := MemoryEntry{
				Index:       len(report.Memory),
				Module:      mod.Index,
				Instruction: inst,
				Address:     address,
				Diagnostic:  diag,
			}
			if ln.Verbose {
				log.Printf("pass2: %d: %v -> %d", entry.Index, inst, entry.Value())
			}
			report.Memory = append(report.Memory, entry)
		}

		for _, name := range mod.Uses {
			if used[name] || slices.Contains(mod.Unused, name) {
				continue
			}
			mod.Unused = append(mod.Unused, name)
			report.UnusedUses = append(report.UnusedUses, WarnUseUnused{Module: mod.Index, Symbol: name})
		}
	}

	for sym := range layout.Symbols.All() {
		report.Symbols = append(report.Symbols, *sym)
		if !sym.Used {
			report.UnusedSymbols = append(report.UnusedSymbols, WarnSymbolUnused{Symbol: sym.Name, Module: sym.Module})
		}
	}

	for _, mod := range layout.Modules {
		for _, name := range mod.Oversized {
			report.Oversized = append(report.Oversized, ErrDefinitionOversized{Module: mod.Index, Symbol: name})
		}
	}

	return
}
