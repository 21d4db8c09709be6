package link

import (
	"strconv"

	"github.com/ezrec/tplink/translate"
)

var f = translate.From

var (
	// Resolution errors
	ErrAbsoluteExceedsMachine = translate.Message("Absolute address exceeds machine size; zero used")
	ErrRelativeExceedsModule  = translate.Message("Relative address exceeds module size; zero used")
	ErrExternalExceedsUses    = translate.Message("External address exceeds length of use list; treated as immediate")

	// Word errors
	ErrOpcodeRange  = translate.Message("opcode out of range")
	ErrOperandRange = translate.Message("operand out of range")

	// Protocol errors
	ErrLayoutLinked = translate.Message("layout already linked")
)

type ErrModeInvalid string

func (err ErrModeInvalid) Error() string {
	return f("'%v' is not an address mode", string(err))
}

// ErrSymbolUndefined is attached to an External word whose use list entry
// names a symbol that no module defines.
type ErrSymbolUndefined string

func (err ErrSymbolUndefined) Error() string {
	return f("%v is not defined; zero used", string(err))
}

// ErrSymbolMultiplyDefined flags a symbol defined by more than one
// definition list entry.
type ErrSymbolMultiplyDefined string

func (err ErrSymbolMultiplyDefined) Error() string {
	return f("This variable is multiply defined; first value used")
}

// ErrDefinitionOversized flags a definition whose relative offset lies
// beyond the end of its module.
type ErrDefinitionOversized struct {
	Module int
	Symbol string
}

func (err ErrDefinitionOversized) Error() string {
	return f("In module %v the def of %v exceeds the module size; zero (relative) used",
		strconv.Itoa(err.Module), err.Symbol)
}

// WarnUseUnused reports a use list entry that no External word resolved.
type WarnUseUnused struct {
	Module int
	Symbol string
}

func (warn WarnUseUnused) Error() string {
	return f("In module %v %v appeared in the use list but was not actually used",
		strconv.Itoa(warn.Module), warn.Symbol)
}

// WarnSymbolUnused reports a defined symbol that nothing referenced.
type WarnSymbolUnused struct {
	Symbol string
	Module int
}

func (warn WarnSymbolUnused) Error() string {
	return f("%v was defined in module %v but never used",
		warn.Symbol, strconv.Itoa(warn.Module))
}
