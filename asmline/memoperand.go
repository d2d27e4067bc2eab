package asmline

import "strings"

// MemOperand is the parsed shape of a load/store's memory operand:
// [prefix][(base)], where prefix is either a numeric literal/offset or a
// symbolic name (optionally with a "+offset" addend), and base is present
// only when the operand was written with parens.
type MemOperand struct {
	Prefix   string
	Base     string // register name, "" if no parens
	HasParen bool
	IsSymbol bool
}

// ParseMemOperand parses the second operand of a load/store instruction.
func ParseMemOperand(tok string) MemOperand {
	tok = strings.TrimSpace(tok)
	var mo MemOperand
	if i := strings.IndexByte(tok, '('); i >= 0 && strings.HasSuffix(tok, ")") {
		mo.Prefix = tok[:i]
		mo.Base = tok[i+1 : len(tok)-1]
		mo.HasParen = true
	} else {
		mo.Prefix = tok
	}
	mo.IsSymbol = !isNumericLiteral(mo.Prefix)
	return mo
}

// SymbolAndOffset splits a symbolic prefix like "Cameras" or "Symbol+4"
// into its name and addend text (the addend, if any, is passed through
// verbatim into the %hi/%lo expansion).
func (m MemOperand) SymbolAndOffset() (name, offset string) {
	s := m.Prefix
	for i, r := range s {
		if (r == '+' || r == '-') && i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		if s == "" {
			return false
		}
		for _, r := range s {
			if !isHexDigit(r) {
				return false
			}
		}
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
