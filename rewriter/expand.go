package rewriter

import (
	"github.com/bismurphy/maspsx/asmline"
	"github.com/bismurphy/maspsx/isa"
)

// emitItem is one output line produced while processing a single input
// instruction: either a directive-like line with no hazard-window record
// (the .set noat/.set at bracketing an $at expansion), or a real
// instruction that must be pushed into the hazard window once emitted.
type emitItem struct {
	text   string
	record *isa.Instruction
}

// expand turns one classified instruction into the sequence of lines it
// must become, and returns the record that should be used to check the
// hazard rules for this input line against the window as it stood before
// it (the "pre-expansion" profile: what the line as a whole reads, before
// the expanded sequence's own defs become visible to the rules).
//
// Two expansions exist (§4.2): the three-operand div/divu pseudo-op always
// expands into [div $zero,rs,rt ; mflo rd]; a symbolic memory operand
// qualified with a base register always expands into the five-line
// lui/addu/op/.set sequence. Everything else passes through as a single
// re-formatted instruction.
func expand(instr *isa.Instruction) (check *isa.Instruction, items []emitItem) {
	if (instr.Mnemonic == "div" || instr.Mnemonic == "divu") && len(instr.Operands) == 3 {
		return expandDiv(instr)
	}
	if instr.Category == isa.CategoryAtExpansion {
		return instr, expandAt(instr)
	}
	return instr, []emitItem{{text: formatInstruction(instr.Mnemonic, instr.Operands), record: instr}}
}

func expandDiv(instr *isa.Instruction) (*isa.Instruction, []emitItem) {
	rd, rs, rt := instr.Operands[0], instr.Operands[1], instr.Operands[2]

	divZero := &isa.Instruction{
		Mnemonic: instr.Mnemonic,
		Operands: []string{"$zero", rs, rt},
		Category: isa.CategoryMultDivProducer,
		Uses:     []string{rs, rt},
	}
	mflo := &isa.Instruction{
		Mnemonic: "mflo",
		Operands: []string{rd},
		Category: isa.CategoryMfloMfhi,
		Defs:     []string{rd},
	}
	items := []emitItem{
		{text: formatInstruction(divZero.Mnemonic, divZero.Operands), record: divZero},
		{text: formatInstruction(mflo.Mnemonic, mflo.Operands), record: mflo},
	}
	return divZero, items
}

func expandAt(instr *isa.Instruction) []emitItem {
	memIdx, _ := isa.MemOperandIndex(instr.Mnemonic)
	mo := asmline.ParseMemOperand(instr.Operands[memIdx])
	name, offset := mo.SymbolAndOffset()
	rt := instr.Operands[0]
	base := mo.Base

	lui := &isa.Instruction{
		Mnemonic: "lui",
		Operands: []string{"$at", "%hi(" + name + offset + ")"},
		Category: isa.CategoryOther,
		Defs:     []string{"$at"},
	}
	addu := &isa.Instruction{
		Mnemonic: "addu",
		Operands: []string{"$at", "$at", base},
		Category: isa.CategoryOther,
		Defs:     []string{"$at"},
		Uses:     []string{"$at", base},
	}
	tail := &isa.Instruction{
		Mnemonic:  instr.Mnemonic,
		Operands:  []string{rt, "%lo(" + name + offset + ")($at)"},
		Category:  tailCategory(instr.Mnemonic),
		LoadWidth: instr.LoadWidth,
		Uses:      []string{"$at"},
	}
	if isa.IsLoad(instr.Mnemonic) {
		tail.Defs = []string{rt}
	} else {
		tail.Uses = append(tail.Uses, rt)
	}

	return []emitItem{
		{text: ".set\tnoat"},
		{text: formatInstruction(lui.Mnemonic, lui.Operands), record: lui},
		{text: formatInstruction(addu.Mnemonic, addu.Operands), record: addu},
		{text: formatInstruction(tail.Mnemonic, tail.Operands), record: tail},
		{text: ".set\tat"},
	}
}

func tailCategory(mnemonic string) isa.Category {
	if isa.IsLoad(mnemonic) {
		return isa.CategoryLoad
	}
	return isa.CategoryStore
}
