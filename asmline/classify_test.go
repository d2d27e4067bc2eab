package asmline

import "testing"

func TestClassifyKinds(t *testing.T) {
	c := NewClassifier(0)
	cases := []struct {
		in   string
		kind Kind
	}{
		{"", KindBlank},
		{"   ", KindBlank},
		{"#nop", KindNopComment},
		{"#APP", KindAppStart},
		{"#NO_APP", KindAppEnd},
		{"# a comment", KindComment},
		{"// a comment", KindComment},
		{".text", KindDirective},
		{"loop_start:", KindLabel},
		{"lw\t$2,0($sp)", KindInstruction},
	}
	for _, c2 := range cases {
		line := c.Classify(c2.in)
		if line.Kind != c2.kind {
			t.Errorf("Classify(%q).Kind = %v, want %v", c2.in, line.Kind, c2.kind)
		}
	}
}

func TestClassifyInstructionOperands(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("\tlw $2, 4($sp)")
	if line.Kind != KindInstruction {
		t.Fatalf("expected instruction, got %v", line.Kind)
	}
	if line.Instr.Mnemonic != "lw" {
		t.Errorf("mnemonic = %q, want lw", line.Instr.Mnemonic)
	}
	if len(line.Instr.Operands) != 2 || line.Instr.Operands[0] != "$2" || line.Instr.Operands[1] != "4($sp)" {
		t.Errorf("operands = %v, want [$2 4($sp)]", line.Instr.Operands)
	}
	if !line.Instr.Defines("$2") {
		t.Error("lw $2,... should define $2")
	}
	if !line.Instr.Use("$sp") {
		t.Error("lw ...,4($sp) should use $sp")
	}
}

func TestClassifyStripsTrailingComment(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("add $2, $3, $4 # sum")
	if line.Kind != KindInstruction {
		t.Fatalf("expected instruction, got %v", line.Kind)
	}
	if len(line.Instr.Operands) != 3 {
		t.Errorf("operands = %v, want 3 operands", line.Instr.Operands)
	}
}

func TestClassifyUnknownMnemonic(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("syscall")
	if line.Kind != KindInstruction {
		t.Fatalf("expected instruction, got %v", line.Kind)
	}
	if line.Instr.Category != 0 {
		t.Errorf("unknown mnemonic should classify as CategoryOther, got %v", line.Instr.Category)
	}
}

func TestMemoryOperandBaseRegisterNumeric(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("lw $2, 0($5)")
	if line.Instr.Category.String() != "load" {
		t.Errorf("category = %v, want load", line.Instr.Category)
	}
	if !line.Instr.Use("$5") {
		t.Error("base register $5 should be a use")
	}
}

func TestMemoryOperandBaseRegisterSymbolAlwaysAtExpands(t *testing.T) {
	for _, limit := range []int{0, 8} {
		c := NewClassifier(limit)
		line := c.Classify("lw $2, Cameras($3)")
		if line.Instr.Category.String() != "at_expansion" {
			t.Errorf("sdata_limit=%d: category = %v, want at_expansion", limit, line.Instr.Category)
		}
		if line.Instr.Defs != nil || len(line.Instr.Uses) != 1 || line.Instr.Uses[0] != "$3" {
			t.Errorf("sdata_limit=%d: defs = %v, uses = %v; want no defs and only the base register $3 as a use", limit, line.Instr.Defs, line.Instr.Uses)
		}
	}
}

func TestMemoryOperandBareSymbolGPRelativeWhenLimitPositive(t *testing.T) {
	c := NewClassifier(8)
	line := c.Classify("lw $2, UnkVar00")
	if line.Instr.Category.String() != "gp_relative" {
		t.Errorf("category = %v, want gp_relative", line.Instr.Category)
	}
	if !line.Instr.UsesGP {
		t.Error("expected UsesGP=true")
	}
	if !line.Instr.Defines("$2") {
		t.Error("expected $2 to still be tracked as a def")
	}
}

func TestMemoryOperandBareSymbolOpaqueWhenLimitZero(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("sw $2, Map_water_height")
	if line.Instr.Category.String() != "other" {
		t.Errorf("category = %v, want other", line.Instr.Category)
	}
	if line.Instr.Defs != nil || line.Instr.Uses != nil {
		t.Error("expected an opaque bare-symbol operand to carry no tracked defs/uses")
	}
}

func TestMemoryOperandBareNumericTrackedNormally(t *testing.T) {
	c := NewClassifier(0)
	line := c.Classify("lw $2, 528482500")
	if line.Instr.Category.String() != "load" {
		t.Errorf("category = %v, want load", line.Instr.Category)
	}
	if !line.Instr.Defines("$2") {
		t.Error("expected $2 tracked as a def for a bare numeric address")
	}
}

func TestIsLabelRejectsInstructionLookingLines(t *testing.T) {
	if isLabel("lw $2, 0($sp)") {
		t.Error("an instruction should not be classified as a label")
	}
	if !isLabel("Func_80010000:") {
		t.Error("expected a valid label to be recognized")
	}
	if isLabel("1bad:") {
		t.Error("a label may not start with a digit")
	}
}
