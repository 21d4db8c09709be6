package link

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mustInst builds an instruction, failing the test on a bad word.
func mustInst(t *testing.T, mode Mode, word int) Instruction {
	inst, err := MakeInstruction(mode, word)
	if err != nil {
		t.Fatalf("%v %v: %v", mode, word, err)
	}
	return inst
}

// immediates returns count immediate zero words.
func immediates(count int) (insts []Instruction) {
	for range count {
		insts = append(insts, Instruction{Mode: MODE_IMMEDIATE})
	}
	return
}

func TestPass1_Bases(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{Instructions: immediates(2)},
		{},
		{Instructions: immediates(3)},
		{Instructions: immediates(1)},
	}

	layout := NewLinker().Pass1(sources)
	assert.Equal(4, len(layout.Modules))

	expected := []int{0, 2, 2, 5}
	for n, mod := range layout.Modules {
		assert.Equal(n, mod.Index)
		assert.Equal(expected[n], mod.Base)
		if n > 0 {
			prev := layout.Modules[n-1]
			assert.Equal(prev.Base+prev.Len(), mod.Base)
		}
	}
	assert.Equal(6, layout.Size())

	assert.Equal(0, (&Layout{}).Size())
}

func TestPass1_Definitions(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"A", 0}, {"B", 2}},
			Instructions: immediates(2),
		},
		{
			Definitions:  []Definition{{"C", 1}, {"D", 4}, {"E", 3}, {"F", -5}},
			Instructions: immediates(3),
		},
	}

	layout := NewLinker().Pass1(sources)

	table := [](struct {
		name    string
		address int
		module  int
	}){
		{"A", 0, 0},
		{"B", 2, 0}, // offset == length is in range
		{"C", 3, 1},
		{"D", 2, 1}, // oversized, clamped to base
		{"E", 5, 1},
		{"F", 2, 1}, // negative, clamped to base
	}

	assert.Equal(len(table), layout.Symbols.Len())
	for _, entry := range table {
		sym, ok := layout.Symbols.Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.address, sym.Address, entry.name)
		assert.Equal(entry.module, sym.Module, entry.name)
		assert.False(sym.Used, entry.name)
		assert.False(sym.MultiplyDefined, entry.name)
	}

	assert.Empty(layout.Modules[0].Oversized)
	assert.Equal([]string{"D", "F"}, layout.Modules[1].Oversized)

	for sym := range layout.Symbols.All() {
		assert.GreaterOrEqual(sym.Address, 0, sym.Name)
	}
}

func TestPass1_MultiplyDefined(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"X", 1}},
			Instructions: immediates(2),
		},
		{
			Definitions:  []Definition{{"X", 0}, {"Y", 0}, {"X", 9}},
			Instructions: immediates(1),
		},
		{
			Definitions:  []Definition{{"X", 0}},
			Instructions: immediates(1),
		},
	}

	layout := NewLinker().Pass1(sources)

	assert.Equal(2, layout.Symbols.Len())

	x, ok := layout.Symbols.Lookup("X")
	assert.True(ok)
	assert.Equal(1, x.Address)
	assert.Equal(0, x.Module)
	assert.True(x.MultiplyDefined)

	// A rejected redefinition is never checked for size.
	assert.Empty(layout.Modules[1].Oversized)
}

func TestLink_MultiplyDefinedScenario(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"X", 0}},
			Instructions: immediates(2),
		},
		{
			Definitions:  []Definition{{"X", 0}},
			Instructions: immediates(1),
		},
	}

	report := NewLinker().Link(sources)

	assert.Equal(1, len(report.Symbols))
	assert.Equal("X", report.Symbols[0].Name)
	assert.Equal(0, report.Symbols[0].Address)
	assert.True(report.Symbols[0].MultiplyDefined)
	assert.Equal(3, len(report.Memory))

	assert.Equal([]error{ErrSymbolMultiplyDefined("X")}, slices.Collect(report.Errors()))
	assert.True(report.HasErrors())
}

func TestPass2_Modes(t *testing.T) {
	table := [](struct {
		name  string
		inst  Instruction
		value int
		err   error
		usedA bool
	}){
		{"immediate", Instruction{MODE_IMMEDIATE, 1, 999}, 1999, nil, false},
		{"absolute_edge", Instruction{MODE_ABSOLUTE, 2, 199}, 2199, nil, false},
		{"absolute_over", Instruction{MODE_ABSOLUTE, 2, 200}, 2000, ErrAbsoluteExceedsMachine, false},
		{"relative", Instruction{MODE_RELATIVE, 3, 1}, 3006, nil, false},
		{"relative_edge", Instruction{MODE_RELATIVE, 3, 3}, 3008, nil, false},
		{"relative_over", Instruction{MODE_RELATIVE, 3, 4}, 3000, ErrRelativeExceedsModule, false},
		{"external", Instruction{MODE_EXTERNAL, 4, 0}, 4003, nil, true},
		{"external_undefined", Instruction{MODE_EXTERNAL, 4, 1}, 4000, ErrSymbolUndefined("B"), false},
		{"external_over", Instruction{MODE_EXTERNAL, 4, 2}, 4002, ErrExternalExceedsUses, false},
		{"external_over_machine", Instruction{MODE_EXTERNAL, 4, 250}, 4250, ErrExternalExceedsUses, false},
		{"external_negative", Instruction{MODE_EXTERNAL, 4, -1}, 4000, ErrOperandRange, false},
		{"operand_over", Instruction{MODE_RELATIVE, 3, 1000}, 3000, ErrOperandRange, false},
		{"opcode_over", Instruction{MODE_IMMEDIATE, 12, 5}, 12000, ErrOpcodeRange, false},
		{"mode_invalid", Instruction{Mode(9), 1, 500}, 1000, ErrModeInvalid("Mode(9)"), false},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			sources := []Source{
				{
					Definitions:  []Definition{{"A", 3}},
					Instructions: immediates(5),
				},
				{
					Uses:         []string{"A", "B"},
					Instructions: append([]Instruction{entry.inst}, immediates(2)...),
				},
			}

			report := NewLinker().Link(sources)

			assert.Equal(8, len(report.Memory))
			got := report.Memory[5]
			assert.Equal(5, got.Index)
			assert.Equal(1, got.Module)
			assert.Equal(entry.inst, got.Instruction)
			assert.Equal(entry.value, got.Value())
			assert.GreaterOrEqual(got.Address, 0)
			if entry.err == nil {
				assert.NoError(got.Diagnostic)
			} else {
				assert.Equal(entry.err, got.Diagnostic)
			}

			assert.Equal(entry.usedA, report.Symbols[0].Used)

			expected := []WarnUseUnused{{1, "B"}}
			if !entry.usedA {
				expected = []WarnUseUnused{{1, "A"}, {1, "B"}}
			}
			assert.Equal(expected, report.UnusedUses)
		})
	}
}

func TestPass2_MachineSize(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{Instructions: []Instruction{
			mustInst(t, MODE_ABSOLUTE, 1099),
			mustInst(t, MODE_ABSOLUTE, 1100),
		}},
	}

	ln := &Linker{MachineSize: 100}
	report := ln.Link(sources)
	assert.Equal(1099, report.Memory[0].Value())
	assert.NoError(report.Memory[0].Diagnostic)
	assert.Equal(1000, report.Memory[1].Value())
	assert.ErrorIs(report.Memory[1].Diagnostic, ErrAbsoluteExceedsMachine)

	// Zero selects the default machine.
	ln = &Linker{}
	report = ln.Link(sources)
	assert.NoError(report.Memory[1].Diagnostic)
	assert.Equal(1100, report.Memory[1].Value())
}

func TestPass2_UndefinedLeavesFlags(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"A", 0}},
			Uses:         []string{"Z"},
			Instructions: []Instruction{mustInst(t, MODE_EXTERNAL, 1000)},
		},
	}

	layout := NewLinker().Pass1(sources)
	report, err := NewLinker().Pass2(layout)
	assert.NoError(err)

	a, _ := layout.Symbols.Lookup("A")
	assert.False(a.Used)
	assert.Equal(1000, report.Memory[0].Value())

	var undefined ErrSymbolUndefined
	assert.True(errors.As(report.Memory[0].Diagnostic, &undefined))
	assert.Equal("Z is not defined; zero used", undefined.Error())
}

func TestPass2_UseList(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"A", 0}},
			Uses:         []string{"A", "B"},
			Instructions: []Instruction{mustInst(t, MODE_EXTERNAL, 1000)},
		},
	}

	layout := NewLinker().Pass1(sources)
	report, err := NewLinker().Pass2(layout)
	assert.NoError(err)

	a, _ := layout.Symbols.Lookup("A")
	assert.True(a.Used)
	assert.True(report.Symbols[0].Used)
	assert.Equal(1000, report.Memory[0].Value())

	assert.Equal([]WarnUseUnused{{Module: 0, Symbol: "B"}}, report.UnusedUses)
	assert.Equal([]string{"B"}, layout.Modules[0].Unused)
	assert.Empty(report.UnusedSymbols)
	assert.False(report.HasErrors())
	assert.Equal([]error{WarnUseUnused{0, "B"}}, slices.Collect(report.Warnings()))
}

func TestPass2_DuplicateUse(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{Uses: []string{"A", "A"}},
		{Definitions: []Definition{{"A", 0}}},
	}

	report := NewLinker().Link(sources)
	assert.Equal([]WarnUseUnused{{0, "A"}}, report.UnusedUses)
	assert.Equal([]WarnSymbolUnused{{"A", 1}}, report.UnusedSymbols)
	assert.Empty(report.Memory)
}

func TestPass2_Once(t *testing.T) {
	assert := assert.New(t)

	ln := NewLinker()
	layout := ln.Pass1([]Source{{Instructions: immediates(1)}})

	report, err := ln.Pass2(layout)
	assert.NoError(err)
	assert.NotNil(report)

	report, err = ln.Pass2(layout)
	assert.ErrorIs(err, ErrLayoutLinked)
	assert.Nil(report)
}

func TestReport_Order(t *testing.T) {
	assert := assert.New(t)

	sources := []Source{
		{
			Definitions:  []Definition{{"X", 1}, {"Y", 5}},
			Uses:         []string{"X", "Z"},
			Instructions: []Instruction{
				mustInst(t, MODE_RELATIVE, 1002),
				mustInst(t, MODE_EXTERNAL, 2000),
				mustInst(t, MODE_ABSOLUTE, 5300),
			},
		},
		{
			Definitions:  []Definition{{"X", 0}},
			Uses:         []string{"Q"},
			Instructions: []Instruction{
				mustInst(t, MODE_EXTERNAL, 1000),
				mustInst(t, MODE_EXTERNAL, 1003),
			},
		},
		{
			Instructions: []Instruction{
				mustInst(t, MODE_RELATIVE, 9007),
			},
		},
	}

	report := NewLinker().Link(sources)

	assert.Equal([]Symbol{
		{Name: "X", Address: 1, Module: 0, MultiplyDefined: true, Used: true},
		{Name: "Y", Address: 0, Module: 0},
	}, report.Symbols)

	var words []int
	for index, value := range report.Words() {
		assert.Equal(len(words), index)
		words = append(words, value)
	}
	assert.Equal([]int{1002, 2001, 5000, 1000, 1003, 9000}, words)

	assert.Equal([]error{
		ErrSymbolMultiplyDefined("X"),
		ErrAbsoluteExceedsMachine,
		ErrSymbolUndefined("Q"),
		ErrExternalExceedsUses,
		ErrRelativeExceedsModule,
		ErrDefinitionOversized{Module: 0, Symbol: "Y"},
	}, slices.Collect(report.Errors()))

	assert.Equal([]error{
		WarnUseUnused{Module: 0, Symbol: "Z"},
		WarnUseUnused{Module: 1, Symbol: "Q"},
		WarnSymbolUnused{Symbol: "Y", Module: 0},
	}, slices.Collect(report.Warnings()))
}
