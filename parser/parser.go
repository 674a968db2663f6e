// Package parser implements the recursive-descent builder described in
// spec.md §4.3: it drains a lexer.Lexer and assembles a green.Root, folding
// every malformed-input case into a diagnostic rather than aborting.
package parser

import (
	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/green"
	"github.com/jsonwc/cst/internal/invariant"
	"github.com/jsonwc/cst/lexer"
)

type parser struct {
	lex *lexer.Lexer

	cur      lexer.Symbol
	curOK    bool
	curStart int
	nextPos  int

	errs []diag.Error

	telemetry      TelemetryMode
	debug          DebugLevel
	suggestEnabled bool
}

func newParser(text string, opts ...Opt) *parser {
	p := &parser{lex: lexer.New(text), suggestEnabled: true}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.curStart = p.nextPos
	sym, ok := p.lex.Next()
	p.cur = sym
	p.curOK = ok
	if ok {
		p.nextPos += sym.Width
	}
}

// curStartOrEnd returns the absolute offset of cur, or the offset just past
// the last byte consumed if the stream is exhausted — the natural anchor
// for a diagnostic about something that should have been here.
func (p *parser) curStartOrEnd() int {
	if p.curOK {
		return p.curStart
	}
	return p.nextPos
}

var emptyBackground = green.NewBackgroundList(nil)

func emptyMultiValue() *green.MultiValue {
	return green.NewMultiValue([]*green.ValueWithBackground{
		green.NewValueWithBackground(emptyBackground, green.TheMissingValue),
	}, emptyBackground)
}

func isEmptyMultiValue(mv *green.MultiValue) bool {
	return len(mv.Values) == 1 && mv.Values[0].Value.Kind() == green.KindMissingValue
}

func structuralKind(k lexer.Kind) green.NodeKind {
	switch k {
	case lexer.Comma:
		return green.KindComma
	case lexer.Colon:
		return green.KindColon
	case lexer.CurlyClose:
		return green.KindCurlyClose
	case lexer.SquareClose:
		return green.KindSquareClose
	}
	panic("parser: structuralKind called on a non-stray-delimiter kind")
}

func isValueStarter(k lexer.Kind) bool {
	switch k {
	case lexer.IntegerLiteral, lexer.StringLiteral, lexer.BooleanLiteral,
		lexer.UndefinedValue, lexer.ErrorString, lexer.UnknownSymbol,
		lexer.CurlyOpen, lexer.SquareOpen:
		return true
	}
	return false
}

// collectBackground consumes a maximal run of trivia. At the root, a stray
// structural delimiter ( , : } ] ) is also trivia: it is folded into a
// RootLevelValueDelimiter and flagged ExpectedEof (spec.md §4.3.1). Anywhere
// else those four symbols are left alone for the caller (List/Map) to
// interpret structurally.
func (p *parser) collectBackground(atRoot bool) *green.BackgroundList {
	var items []green.Node
	for p.curOK {
		switch p.cur.Kind {
		case lexer.Whitespace:
			items = append(items, green.NewWhitespace(p.cur.Width))
			p.advance()
		case lexer.Comment:
			items = append(items, green.NewComment(p.cur.Width))
			p.advance()
		case lexer.UnterminatedBlockComment:
			errs := p.cur.LocalErrors(p.curStart)
			p.errs = append(p.errs, errs...)
			items = append(items, green.NewUnterminatedBlockComment(p.cur.Width, errs))
			p.advance()
		case lexer.Comma, lexer.Colon, lexer.CurlyClose, lexer.SquareClose:
			if !atRoot {
				return green.NewBackgroundList(items)
			}
			width, start := p.cur.Width, p.curStart
			p.errs = append(p.errs, diag.New(diag.ExpectedEof, diag.Error, start, width))
			items = append(items, green.NewRootLevelValueDelimiter(width, structuralKind(p.cur.Kind)))
			p.advance()
		default:
			return green.NewBackgroundList(items)
		}
	}
	return green.NewBackgroundList(items)
}

// parseMultiValue implements the universal parse_multi_value(terminators)
// algorithm of spec.md §4.3.1. It always returns a non-nil MultiValue, plus
// the absolute start and node of the last real (non-missing) value parsed,
// for callers that need to inspect that value (a map's key section).
func (p *parser) parseMultiValue(terminators map[lexer.Kind]bool, atRoot bool, multipleCode diag.Code) (mv *green.MultiValue, lastStart int, lastValue green.Node) {
	lastStart = -1
	var values []*green.ValueWithBackground
	var trailing *green.BackgroundList

	for {
		bg := p.collectBackground(atRoot)
		if !p.curOK || terminators[p.cur.Kind] || !isValueStarter(p.cur.Kind) {
			trailing = bg
			break
		}
		start := p.curStart
		val := p.parseValue()
		if len(values) > 0 {
			p.errs = append(p.errs, diag.New(multipleCode, diag.Error, start, val.Width()))
		}
		values = append(values, green.NewValueWithBackground(bg, val))
		lastStart, lastValue = start, val
	}

	if len(values) == 0 {
		values = append(values, green.NewValueWithBackground(trailing, green.TheMissingValue))
		trailing = emptyBackground
	}
	return green.NewMultiValue(values, trailing), lastStart, lastValue
}

// parseValue consumes exactly one value-starter symbol (or a nested
// List/Map) and returns its green node.
func (p *parser) parseValue() green.Node {
	switch p.cur.Kind {
	case lexer.IntegerLiteral:
		n := green.NewIntegerLiteral(p.cur.Width, p.cur.Int)
		p.advance()
		return n
	case lexer.StringLiteral:
		n := green.NewStringLiteral(p.cur.Width, p.cur.Str)
		p.advance()
		return n
	case lexer.BooleanLiteral:
		var n *green.BooleanLiteral
		if p.cur.Bool {
			n = green.TheTrue
		} else {
			n = green.TheFalse
		}
		p.advance()
		return n
	case lexer.UndefinedValue:
		errs := p.cur.LocalErrors(p.curStart)
		p.errs = append(p.errs, errs...)
		if p.suggestEnabled {
			if hint, ok := suggestFor(p.cur.Str, p.curStart, p.cur.Width); ok {
				p.errs = append(p.errs, hint)
			}
		}
		n := green.NewUndefinedValue(p.cur.Width, p.cur.Str, errs)
		p.advance()
		return n
	case lexer.ErrorString:
		errs := p.cur.LocalErrors(p.curStart)
		p.errs = append(p.errs, errs...)
		n := green.NewErrorString(p.cur.Width, p.cur.Str, errs)
		p.advance()
		return n
	case lexer.UnknownSymbol:
		errs := p.cur.LocalErrors(p.curStart)
		p.errs = append(p.errs, errs...)
		n := green.NewUnknownSymbol(p.cur.Width, p.cur.Char, p.cur.Display, errs)
		p.advance()
		return n
	case lexer.SquareOpen:
		return p.parseList()
	case lexer.CurlyOpen:
		return p.parseMap()
	}
	panic("parser: parseValue called on a non-value-starter symbol")
}

var listTerminators = map[lexer.Kind]bool{lexer.SquareClose: true, lexer.CurlyClose: true}

// parseList implements the List production of spec.md §4.3.2.
func (p *parser) parseList() *green.List {
	p.advance() // consume '['

	first, _, _ := p.parseMultiValue(listTerminators, false, diag.MultipleValues)

	var rest []green.CommaValue
	for p.curOK && p.cur.Kind == lexer.Comma {
		progressStart := p.nextPos
		commaStart := p.curStart
		p.advance() // consume ','
		item, _, _ := p.parseMultiValue(listTerminators, false, diag.MultipleValues)
		if isEmptyMultiValue(item) && p.curOK && p.cur.Kind == lexer.Comma {
			// an entirely empty item sandwiched between two commas is a real
			// gap, not the silently-tolerated trailing comma before a close.
			p.errs = append(p.errs, diag.New(diag.MissingValue, diag.Error, commaStart, 1))
		}
		rest = append(rest, green.CommaValue{Comma: green.TokComma, Value: item})
		invariant.Invariant(p.nextPos > progressStart, "parser: list item loop made no progress at %d", progressStart)
	}

	var close *green.Token
	switch {
	case p.curOK && p.cur.Kind == lexer.SquareClose:
		close = green.TokSquareClose
		p.advance()
	case p.curOK && p.cur.Kind == lexer.CurlyClose:
		p.errs = append(p.errs, diag.New(diag.ControlSymbolInArray, diag.Error, p.curStart, p.cur.Width))
	default:
		p.errs = append(p.errs, diag.New(diag.UnexpectedEofInArray, diag.Error, p.nextPos, 0))
	}
	return green.NewList(green.TokSquareOpen, first, rest, close)
}

var mapKeyTerminators = map[lexer.Kind]bool{
	lexer.Colon: true, lexer.Comma: true, lexer.CurlyClose: true, lexer.SquareClose: true,
}

// parseMap implements the Map production of spec.md §4.3.2, including its
// key/value diagnostics (MissingPropertyKey, InvalidPropertyKey,
// MultiplePropertyKeys, MultiplePropertyKeySections, PropertyKeyAlreadyExists,
// MissingValue) and the between-entries recovery rules.
func (p *parser) parseMap() *green.Map {
	p.advance() // consume '{'

	var entries []*green.KeyValue
	var commas []*green.Token
	seenKeys := map[string]bool{}

	for {
		progressStart := p.nextPos
		keyMV, keyStart, keyVal := p.parseMultiValue(mapKeyTerminators, false, diag.MultiplePropertyKeys)
		entries = append(entries, p.completeEntry(keyMV, keyStart, keyVal, seenKeys))

		switch {
		case p.curOK && p.cur.Kind == lexer.Comma:
			commas = append(commas, green.TokComma)
			p.advance()
		case p.curOK && p.cur.Kind == lexer.CurlyClose:
			p.advance()
			return green.NewMap(green.TokCurlyOpen, entries, commas, green.TokCurlyClose)
		case p.curOK && p.cur.Kind == lexer.SquareClose:
			p.errs = append(p.errs, diag.New(diag.ControlSymbolInObject, diag.Error, p.curStart, p.cur.Width))
			return green.NewMap(green.TokCurlyOpen, entries, commas, nil)
		default:
			p.errs = append(p.errs, diag.New(diag.UnexpectedEofInObject, diag.Error, p.nextPos, 0))
			return green.NewMap(green.TokCurlyOpen, entries, commas, nil)
		}
		invariant.Invariant(p.nextPos > progressStart, "parser: map entry loop made no progress at %d", progressStart)
	}
}

// completeEntry consumes the colon/value section(s) following a parsed key
// section and returns the finished KeyValue, appending every diagnostic the
// entry discovers along the way.
//
// A key section that turned out completely empty (keyVal == nil) is only a
// genuine entry attempt when the parser stopped at Colon or Comma — those
// are the map's own internal boundaries. Stopping at CurlyClose, at
// SquareBracketClose, or at EOF means there was never really anything here
// (an empty map, a trailing comma, or the object breaking open); that is
// reported once, at the map level, so MissingPropertyKey is suppressed.
func (p *parser) completeEntry(keyMV *green.MultiValue, keyStart int, keyVal green.Node, seenKeys map[string]bool) *green.KeyValue {
	keyEmpty := keyVal == nil
	breakingEnd := !p.curOK || (p.curOK && p.cur.Kind == lexer.SquareClose)

	if !keyEmpty {
		if sl, ok := keyVal.(*green.StringLiteral); ok {
			if seenKeys[sl.Value] {
				p.errs = append(p.errs, diag.New(diag.PropertyKeyAlreadyExists, diag.Error, keyStart, keyVal.Width(), diag.StringParam(sl.Value)))
			} else {
				seenKeys[sl.Value] = true
			}
		} else {
			p.errs = append(p.errs, diag.New(diag.InvalidPropertyKey, diag.Error, keyStart, keyVal.Width()))
		}
	}

	var extra []green.ColonValue
	if p.curOK && p.cur.Kind == lexer.Colon {
		if keyEmpty {
			p.errs = append(p.errs, diag.New(diag.MissingPropertyKey, diag.Error, p.curStart, 0))
		}
		for p.curOK && p.cur.Kind == lexer.Colon {
			colonStart := p.curStart
			p.advance() // consume ':'
			valueMV, _, _ := p.parseMultiValue(mapKeyTerminators, false, diag.MultipleValues)
			if isEmptyMultiValue(valueMV) {
				stillBreaking := !p.curOK || p.cur.Kind == lexer.SquareClose
				if !stillBreaking {
					p.errs = append(p.errs, diag.New(diag.MissingValue, diag.Error, p.curStartOrEnd(), 0))
				}
			}
			if len(extra) > 0 {
				p.errs = append(p.errs, diag.New(diag.MultiplePropertyKeySections, diag.Error, colonStart, 1))
			}
			extra = append(extra, green.ColonValue{Colon: green.TokColon, Value: valueMV})
		}
	} else {
		trailingClose := p.curOK && p.cur.Kind == lexer.CurlyClose
		switch {
		case keyEmpty:
			if !breakingEnd && !trailingClose {
				p.errs = append(p.errs, diag.New(diag.MissingPropertyKey, diag.Error, p.curStartOrEnd(), 0))
			}
		case !breakingEnd:
			p.errs = append(p.errs, diag.New(diag.MissingValue, diag.Error, p.curStartOrEnd(), 0))
		}
		extra = []green.ColonValue{{Colon: nil, Value: emptyMultiValue()}}
	}

	return green.NewKeyValue(keyMV, extra)
}

// Parse tokenizes and parses text in full, returning the completed green
// tree. Parse never fails (spec.md §4.3.4): every malformed input becomes a
// diagnostic on the returned Root, never a panic or a partial result.
func Parse(text string, opts ...Opt) *green.Root {
	p := newParser(text, opts...)
	syntax, _, _ := p.parseMultiValue(map[lexer.Kind]bool{}, true, diag.MultipleValues)
	return green.NewRoot(syntax, p.errs)
}
