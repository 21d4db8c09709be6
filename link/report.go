package link

import (
	"iter"

	"github.com/ezrec/tplink/internal"
)

// MemoryEntry is one resolved word of the memory map.
type MemoryEntry struct {
	Index       int         // Absolute address of the word.
	Module      int         // Index of the originating module.
	Instruction Instruction // Instruction as read.
	Address     int         // Resolved address.
	Diagnostic  error       // Resolution error, if any.
}

// Value returns the linked word.
func (me MemoryEntry) Value() int {
	return me.Instruction.Opcode*OPERAND_LIMIT + me.Address
}

// Report is the result of a link, in listing order.
type Report struct {
	Symbols       []Symbol                 // Symbol table, in definition order.
	Memory        []MemoryEntry            // Memory map.
	UnusedUses    []WarnUseUnused          // By module.
	UnusedSymbols []WarnSymbolUnused       // By symbol table order.
	Oversized     []ErrDefinitionOversized // By module.
}

// Words iterates over the memory map as address, value pairs.
func (r *Report) Words() iter.Seq2[int, int] {
	return func(yield func(index int, value int) bool) {
		for _, entry := range r.Memory {
			if !yield(entry.Index, entry.Value()) {
				return
			}
		}
	}
}

// symbolErrors yields the multiple definition errors.
func (r *Report) symbolErrors() iter.Seq[error] {
	return func(yield func(err error) bool) {
		for _, sym := range r.Symbols {
			if sym.MultiplyDefined && !yield(ErrSymbolMultiplyDefined(sym.Name)) {
				return
			}
		}
	}
}

// memoryErrors yields the resolution errors.
func (r *Report) memoryErrors() iter.Seq[error] {
	return func(yield func(err error) bool) {
		for _, entry := range r.Memory {
			if entry.Diagnostic != nil && !yield(entry.Diagnostic) {
				return
			}
		}
	}
}

// asErrors converts a slice of diagnostics to an error sequence.
func asErrors[T error](list []T) iter.Seq[error] {
	return func(yield func(err error) bool) {
		for _, item := range list {
			if !yield(item) {
				return
			}
		}
	}
}

// Errors iterates over every error in the report, in listing order.
func (r *Report) Errors() iter.Seq[error] {
	return internal.IterSeqConcat(
		r.symbolErrors(),
		r.memoryErrors(),
		asErrors(r.Oversized),
	)
}

// Warnings iterates over every warning in the report, in listing order.
func (r *Report) Warnings() iter.Seq[error] {
	return internal.IterSeqConcat(
		asErrors(r.UnusedUses),
		asErrors(r.UnusedSymbols),
	)
}

// HasErrors returns true if the link produced any error.
func (r *Report) HasErrors() bool {
	for range r.Errors() {
		return true
	}
	return false
}
