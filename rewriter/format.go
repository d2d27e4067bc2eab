package rewriter

import "strings"

// formatInstruction renders mnemonic/operands in the canonical output
// shape §6 specifies: a single tab after the mnemonic, operands joined by
// commas with no surrounding space. Every instruction line is re-emitted
// this way, whether or not it was touched by an expansion, so indentation
// and spacing quirks of the input never leak into the output.
func formatInstruction(mnemonic string, operands []string) string {
	if len(operands) == 0 {
		return mnemonic
	}
	return mnemonic + "\t" + strings.Join(operands, ",")
}
