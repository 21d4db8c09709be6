package link

import (
	"fmt"
)

const (
	OPCODE_LIMIT  = 10   // Opcodes are a single decimal digit.
	OPERAND_LIMIT = 1000 // Operands are three decimal digits.
	WORD_LIMIT    = OPCODE_LIMIT * OPERAND_LIMIT
)

// Instruction is one relocatable word of a module's program text.
type Instruction struct {
	Mode    Mode
	Opcode  int
	Operand int
}

// MakeInstruction creates an instruction from its mode and packed 4-digit
// word, where the leading digit is the opcode.
func MakeInstruction(mode Mode, word int) (inst Instruction, err error) {
	if word < 0 || word >= WORD_LIMIT {
		err = ErrOperandRange
		return
	}

	inst = Instruction{
		Mode:    mode,
		Opcode:  word / OPERAND_LIMIT,
		Operand: word % OPERAND_LIMIT,
	}

	return
}

// Validate checks the opcode and operand ranges.
func (inst Instruction) Validate() (err error) {
	switch {
	case inst.Mode < MODE_IMMEDIATE || inst.Mode > MODE_EXTERNAL:
		err = ErrModeInvalid(inst.Mode.String())
	case inst.Opcode < 0 || inst.Opcode >= OPCODE_LIMIT:
		err = ErrOpcodeRange
	case inst.Operand < 0 || inst.Operand >= OPERAND_LIMIT:
		err = ErrOperandRange
	}
	return
}

// Word returns the packed opcode and operand.
func (inst Instruction) Word() int {
	return inst.Opcode*OPERAND_LIMIT + inst.Operand
}

// String returns the input form of the instruction, ie "R 1004".
func (inst Instruction) String() string {
	return fmt.Sprintf("%v %04d", inst.Mode, inst.Word())
}
