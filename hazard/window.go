// Package hazard implements the two-slot look-back window and the R1-R4
// nop-insertion rules that the rewriter consults before emitting each
// instruction (R5 and R6 are applied by the rewriter itself). The window is a bounded ring of at most two entries, not a
// general deque, because no rule needs to see further back than the
// instruction two slots prior (R4's producer-to-consumer spacing check).
package hazard

import "github.com/bismurphy/maspsx/isa"

// Window holds the last two real (post-expansion) instructions the
// rewriter has emitted. Nops inserted by the rules themselves are never
// pushed into the window: they are filler for the output stream, not
// instructions future hazard checks should reason about.
type Window struct {
	prev  *isa.Instruction
	prev2 *isa.Instruction
}

// Push appends rec as the new most-recent instruction, dropping whatever
// was in prev2.
func (w *Window) Push(rec *isa.Instruction) {
	w.prev2 = w.prev
	w.prev = rec
}

// Clear resets the window. Called on labels, branches/jumps, and on
// entry/exit of a #APP/#NO_APP block, per §5's invariant that the window
// never assumes continuity across a control-flow or opacity boundary.
func (w *Window) Clear() {
	w.prev = nil
	w.prev2 = nil
}

// Prev returns the most recently pushed instruction, or nil.
func (w *Window) Prev() *isa.Instruction { return w.prev }

// Prev2 returns the instruction two slots back, or nil.
func (w *Window) Prev2() *isa.Instruction { return w.prev2 }

// Reason names one rule that contributed nops ahead of an instruction,
// and how many. The rewriter surfaces these as diagnostic comments when
// running verbosely (see rewriter.Options.Verbose).
type Reason struct {
	Rule  string
	Count int
}

// NopsRequired evaluates R1-R4 against the current window for an
// about-to-be-emitted instruction curr, returning how many nop lines must
// be inserted immediately before it. R5 (the #APP look-back) and R6
// (control-flow window clearing) are handled by the rewriter directly,
// since they don't fit the "curr is a new instruction" shape this method
// models.
func (w *Window) NopsRequired(curr *isa.Instruction) int {
	total := 0
	for _, r := range w.Check(curr) {
		total += r.Count
	}
	return total
}

// Check evaluates R1-R4 against the current window and returns one Reason
// per rule that fired, in rule order.
//
// R1/R2/R3 are mutually exclusive by construction (they key off prev's
// category, which is a single tag), so at most one of them contributes.
// R4 is evaluated independently and its contribution adds to whichever of
// R1/R2/R3 fired: the reference test suite's div/mult/mflo sequences
// require exactly that (see DESIGN.md) — a register-reuse nop and a
// multiply-unit-spacing nop can both be owed before the same instruction.
func (w *Window) Check(curr *isa.Instruction) []Reason {
	var reasons []Reason

	if w.prev != nil {
		switch w.prev.Category {
		case isa.CategoryLoad:
			if isa.Intersects(w.prev.Defs, curr.Uses) {
				reasons = append(reasons, Reason{"R1 load-delay hazard", 1})
			}
		case isa.CategoryGPRelative:
			if isa.Intersects(w.prev.Defs, curr.Uses) {
				reasons = append(reasons, Reason{"R2 gp-relative load-delay hazard", 1})
			}
		case isa.CategoryMfloMfhi:
			if isa.Intersects(w.prev.Defs, curr.Uses) {
				reasons = append(reasons, Reason{"R3 mflo/mfhi result hazard", 1})
			}
		}
	}

	if n := r4(w, curr); n > 0 {
		reasons = append(reasons, Reason{"R4 mult/div unit spacing", n})
	}

	return reasons
}

// r4 enforces the multiply/divide unit's two-instruction spacing
// requirement: a mult/div producer must be separated from whatever next
// reads or overwrites hi/lo by at least two real instructions.
func r4(w *Window, curr *isa.Instruction) int {
	touchesHiLo := curr.Category == isa.CategoryMfloMfhi || curr.Category == isa.CategoryMultDivProducer
	if !touchesHiLo {
		return 0
	}
	if curr.Category == isa.CategoryMfloMfhi && w.prev != nil && w.prev.Category == isa.CategoryMultDivProducer {
		return 2
	}
	if w.prev2 != nil && w.prev2.Category == isa.CategoryMultDivProducer &&
		w.prev != nil && w.prev.Mnemonic != "nop" {
		return 1
	}
	return 0
}
