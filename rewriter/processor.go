package rewriter

import (
	"fmt"
	"strings"

	"github.com/bismurphy/maspsx/asmline"
	"github.com/bismurphy/maspsx/hazard"
	"github.com/bismurphy/maspsx/isa"
)

// Processor is the rewriter's driver loop: it classifies each input line,
// expands division and small-data/$at pseudo-ops, consults the hazard
// window, and re-emits the result. It runs single-threaded and
// synchronously end to end, per §5 — there is nothing here for
// concurrency primitives to coordinate.
type Processor struct {
	lines       []string
	opts        Options
	classifier  *asmline.Classifier
	window      hazard.Window
	inAppBlock  bool
	Diagnostics []string
}

// NewProcessor builds a Processor over lines (already split, no trailing
// newlines). Matching the reference implementation, options default to
// sdata_limit=0 and div expansion enabled; callers pass Option values to
// override.
func NewProcessor(lines []string, opts ...Option) *Processor {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return &Processor{
		lines:      lines,
		opts:       o,
		classifier: asmline.NewClassifier(o.SdataLimit),
	}
}

// ProcessLines runs the full single pass described by §4 and returns the
// rewritten lines.
func (p *Processor) ProcessLines() ([]string, error) {
	out := make([]string, 0, len(p.lines))

	for i := 0; i < len(p.lines); i++ {
		raw := p.lines[i]
		cl := p.classifier.Classify(raw)

		if p.inAppBlock {
			out = append(out, raw)
			if cl.Kind == asmline.KindAppEnd {
				p.inAppBlock = false
				p.window.Clear()
			}
			continue
		}

		switch cl.Kind {
		case asmline.KindBlank, asmline.KindComment, asmline.KindDirective:
			out = append(out, raw)

		case asmline.KindNopComment:
			// Discarded entirely (§9 Open Questions: #nop never survives).

		case asmline.KindLabel:
			out = append(out, raw)
			p.window.Clear()

		case asmline.KindAppStart:
			if p.r5NeedsNop(i + 1) {
				p.diagnose(&out, "R5 #APP look-back hazard")
				out = append(out, "\tnop")
			}
			out = append(out, raw)
			p.inAppBlock = true
			p.window.Clear()

		case asmline.KindAppEnd:
			out = append(out, raw)
			p.window.Clear()

		case asmline.KindInstruction:
			if reg, ok := explicitATUse(cl.Instr); ok {
				return out, &ProcessingError{
					Pos:     Position{Line: i + 1},
					Message: fmt.Sprintf("source uses %s directly; it is reserved for $at-expansion", reg),
					Context: strings.TrimSpace(raw),
				}
			}
			check, items := expand(cl.Instr)
			for _, reason := range p.window.Check(check) {
				p.diagnose(&out, reason.Rule)
				for k := 0; k < reason.Count; k++ {
					out = append(out, "\tnop")
				}
			}
			for _, item := range items {
				out = append(out, item.text)
				if item.record != nil {
					p.window.Push(item.record)
				}
			}
			if cl.Instr.Category == isa.CategoryBranchJump {
				// R6: nothing after a branch or jump may assume continuity
				// with what came before it.
				p.window.Clear()
			}
		}
	}

	return out, nil
}

// r5NeedsNop implements R5: if the most recently emitted real instruction
// was a load, and the register it loaded into is referenced anywhere in
// the upcoming #APP...#NO_APP body, a nop must separate the load from the
// inline-asm block, since the rewriter cannot see what that opaque block
// actually does with the register. The check is keyed on the mnemonic
// being load-shaped, not on the window record's category, so it still
// fires for a load whose destination the rewriter otherwise treats as
// opaque (a bare symbolic operand under sdata_limit=0 — see DESIGN.md).
func (p *Processor) r5NeedsNop(bodyStart int) bool {
	prev := p.window.Prev()
	if prev == nil || !isa.IsLoad(prev.Mnemonic) || len(prev.Operands) == 0 {
		return false
	}
	dest := prev.Operands[0]
	for i := bodyStart; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])
		if line == "#NO_APP" {
			break
		}
		if referencesRegister(line, dest) {
			return true
		}
	}
	return false
}

func referencesRegister(line, reg string) bool {
	idx := 0
	for {
		at := strings.Index(line[idx:], reg)
		if at < 0 {
			return false
		}
		pos := idx + at
		end := pos + len(reg)
		if end == len(line) || !isIdentByte(line[end]) {
			return true
		}
		idx = pos + 1
	}
}

// diagnose records that rule caused a nop to be inserted. When running
// verbosely (§10.1), that fact is surfaced two ways: as an assembly
// comment inlined into the output stream immediately before the nop it
// explains, and as an entry appended to Diagnostics for a caller that
// wants the list without re-scanning the output. Silent (non-verbose)
// runs do neither, matching the reference tool's default of producing
// exactly the assembled-equivalent output and nothing else.
func (p *Processor) diagnose(out *[]string, rule string) {
	if !p.opts.Verbose {
		return
	}
	msg := "# nop inserted: " + rule
	*out = append(*out, msg)
	p.Diagnostics = append(p.Diagnostics, msg)
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// explicitATUse reports whether an input instruction itself names the $at
// register as a def or use. $at is reserved for this tool's own
// $at-expansion sequence (§4.2); source that already manipulates it
// directly would collide with that expansion and is rejected rather than
// silently miscompiled, matching the reference tool's refusal to proceed
// past an unsupported register conflict.
func explicitATUse(instr *isa.Instruction) (string, bool) {
	for _, r := range instr.Defs {
		if isa.IsATRegister(r) {
			return r, true
		}
	}
	for _, r := range instr.Uses {
		if isa.IsATRegister(r) {
			return r, true
		}
	}
	return "", false
}
