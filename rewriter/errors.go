package rewriter

import "fmt"

// Position identifies a line in the file being rewritten.
type Position struct {
	Filename string
	Line     int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("<input>:%d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ProcessingError reports a fault encountered while rewriting a line:
// the second of the three error kinds spec.md §7 names (input unavailable
// and assembler failure are the driver's concern, in cmd/maspsx).
// process_lines fails fast on the first one rather than accumulating a
// list, matching the original tool's behavior of surfacing the first
// exception and exiting (see DESIGN.md).
type ProcessingError struct {
	Pos     Position
	Message string
	Context string
}

func (e *ProcessingError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: error: %s\n", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: error: %s\n    %s\n", e.Pos, e.Message, e.Context)
}
