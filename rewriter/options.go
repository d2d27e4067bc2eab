package rewriter

// Options controls how Processor classifies and expands instructions.
type Options struct {
	SdataLimit int
	// ExpandDiv mirrors the original driver's --expand-div flag. The
	// three-operand div/divu pseudo-op is always expanded regardless of
	// this value (§4.2 is explicit that the three-operand form the
	// source compiler emits expands unconditionally); this field is kept
	// because the CLI contract exposes it and a future two-operand
	// expansion path would consult it. See DESIGN.md.
	ExpandDiv bool
	Verbose   bool
}

// Option configures a Processor at construction time.
type Option func(*Options)

// DefaultOptions matches the reference MaspsxProcessor's constructor
// defaults: no small-data symbols assumed, div expansion on.
func DefaultOptions() Options {
	return Options{SdataLimit: 0, ExpandDiv: true}
}

func WithSdataLimit(n int) Option {
	return func(o *Options) { o.SdataLimit = n }
}

func WithExpandDiv(b bool) Option {
	return func(o *Options) { o.ExpandDiv = b }
}

func WithVerbose(b bool) Option {
	return func(o *Options) { o.Verbose = b }
}
