package parser

// TelemetryMode and DebugLevel mirror the lexer's own functional-option
// shape; ambient observability, not mandated by parsing semantics.
type TelemetryMode int

const (
	TelemetryOff TelemetryMode = iota
	TelemetrySummary
	TelemetryVerbose
)

type DebugLevel int

const (
	DebugNone DebugLevel = iota
	DebugTree
)

// Opt configures a parse run.
type Opt func(*parser)

func WithTelemetry(mode TelemetryMode) Opt {
	return func(p *parser) { p.telemetry = mode }
}

func WithDebugLevel(level DebugLevel) Opt {
	return func(p *parser) { p.debug = level }
}

// WithSuggestions toggles the "did you mean" fuzzy-match diagnostic for
// UndefinedValue words that nearly match a keyword. Enabled by default.
func WithSuggestions(enabled bool) Opt {
	return func(p *parser) { p.suggestEnabled = enabled }
}
