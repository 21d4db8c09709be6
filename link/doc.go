// Package link implements a two-pass linker for a toy decimal machine.
//
// Each input module carries a definition list, a use list and a program
// text of relocatable instruction words. Pass one lays the modules out
// end to end, assigning each a base address, and builds the global symbol
// table. Pass two relocates every instruction according to its addressing
// mode (Immediate, Absolute, Relative or External) and produces the memory
// map together with the warnings that can only be known once every
// reference has been seen.
//
// Problems in the input never stop a link. They are recorded on the symbol,
// module or memory word they describe and surface in the final Report.
package link
