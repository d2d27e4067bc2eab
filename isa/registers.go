package isa

// Register name tables for the MIPS R3000 integer register file. The
// classifier accepts both numeric ($0-$31) and ABI-mnemonic ($zero, $sp, ...)
// spellings, since both appear in compiler-generated PSX assembly.
var abiRegisterNames = map[string]bool{
	"$zero": true, "$at": true,
	"$v0": true, "$v1": true,
	"$a0": true, "$a1": true, "$a2": true, "$a3": true,
	"$t0": true, "$t1": true, "$t2": true, "$t3": true, "$t4": true,
	"$t5": true, "$t6": true, "$t7": true, "$t8": true, "$t9": true,
	"$s0": true, "$s1": true, "$s2": true, "$s3": true, "$s4": true,
	"$s5": true, "$s6": true, "$s7": true,
	"$k0": true, "$k1": true,
	"$gp": true, "$sp": true, "$fp": true, "$ra": true,
	"$hi": true, "$lo": true,
}

// IsRegister reports whether tok spells a MIPS register: either a numeric
// form ($0 through $31) or one of the ABI mnemonic names.
func IsRegister(tok string) bool {
	if tok == "" || tok[0] != '$' {
		return false
	}
	if abiRegisterNames[tok] {
		return true
	}
	return isNumericRegister(tok[1:])
}

func isNumericRegister(digits string) bool {
	if digits == "" {
		return false
	}
	n := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= 0 && n <= 31
}

// IsGPRegister reports whether tok names the global-pointer register, in
// either spelling.
func IsGPRegister(tok string) bool {
	return tok == "$gp" || tok == "$28"
}

// IsATRegister reports whether tok names the assembler-temporary register.
func IsATRegister(tok string) bool {
	return tok == "$at" || tok == "$1"
}
