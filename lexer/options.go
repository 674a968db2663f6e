package lexer

// TelemetryMode is the telemetry setting recorded on a Lexer by
// WithTelemetry, mirroring the parser's own TelemetryMode (spec.md ambient
// logging section; grounded on the teacher's runtime/parser/options.go).
// The Lexer stores it but reports no telemetry at any mode.
type TelemetryMode int

const (
	TelemetryOff TelemetryMode = iota
	TelemetrySummary
	TelemetryVerbose
)

// DebugLevel is the debug setting recorded on a Lexer by WithDebugLevel.
// The Lexer stores it but does not read it: WithOnSymbol callbacks receive
// the full Symbol at every level.
type DebugLevel int

const (
	DebugNone DebugLevel = iota
	DebugSymbols
	DebugSymbolsAndWidths
)

// Opt configures a Lexer at construction time.
type Opt func(*Lexer)

// WithTelemetry sets the telemetry mode.
func WithTelemetry(mode TelemetryMode) Opt {
	return func(l *Lexer) { l.telemetry = mode }
}

// WithDebugLevel sets the debug level.
func WithDebugLevel(level DebugLevel) Opt {
	return func(l *Lexer) { l.debug = level }
}

// WithOnSymbol registers a callback invoked once per emitted Symbol, in
// order. Intended for debug tooling, never for altering lex behavior.
func WithOnSymbol(fn func(Symbol)) Opt {
	return func(l *Lexer) { l.onSymbol = fn }
}
