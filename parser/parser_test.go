package parser

import (
	"reflect"
	"testing"

	"github.com/jsonwc/cst/diag"
	"github.com/jsonwc/cst/green"
)

func codes(errs []diag.Error) []diag.Code {
	out := make([]diag.Code, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func assertCodes(t *testing.T, root *green.Root, want ...diag.Code) {
	t.Helper()
	got := codes(root.Errors)
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("errors = %v, want %v", got, want)
		}
	}
}

func assertWidthSum(t *testing.T, root *green.Root, input string) {
	t.Helper()
	if root.Width() != len(input) {
		t.Errorf("root width = %d, want %d (len(%q))", root.Width(), len(input), input)
	}
}

// Scenario 1: "" -> no errors; root MultiValue with a single MissingValue,
// empty backgrounds.
func TestScenarioEmptyInput(t *testing.T) {
	root := Parse("")
	assertCodes(t, root)
	assertWidthSum(t, root, "")
	if len(root.Syntax.Values) != 1 || root.Syntax.Values[0].Value.Kind() != green.KindMissingValue {
		t.Fatalf("got %+v", root.Syntax)
	}
	if root.Syntax.Values[0].Background.Width() != 0 || root.Syntax.Trailing.Width() != 0 {
		t.Errorf("expected empty backgrounds")
	}
}

// Scenario 2: "true" -> no errors; root contains one BooleanLiteral.True.
func TestScenarioTrue(t *testing.T) {
	root := Parse("true")
	assertCodes(t, root)
	assertWidthSum(t, root, "true")
	if len(root.Syntax.Values) != 1 {
		t.Fatalf("got %+v", root.Syntax.Values)
	}
	bl, ok := root.Syntax.Values[0].Value.(*green.BooleanLiteral)
	if !ok || !bl.Value {
		t.Fatalf("got %+v", root.Syntax.Values[0].Value)
	}
}

// Scenario 3: "[0,1]" -> no errors; List with two IntegerLiteral items.
func TestScenarioListTwoItems(t *testing.T) {
	root := Parse("[0,1]")
	assertCodes(t, root)
	assertWidthSum(t, root, "[0,1]")
	lst, ok := root.Syntax.Values[0].Value.(*green.List)
	if !ok {
		t.Fatalf("got %T", root.Syntax.Values[0].Value)
	}
	if lst.Close == nil {
		t.Fatal("expected closed list")
	}
	first, ok := lst.First.Values[0].Value.(*green.IntegerLiteral)
	if !ok || first.Value.Int64() != 0 {
		t.Fatalf("first item = %+v", lst.First.Values[0].Value)
	}
	if len(lst.Rest) != 1 {
		t.Fatalf("want one comma item, got %d", len(lst.Rest))
	}
	second, ok := lst.Rest[0].Value.Values[0].Value.(*green.IntegerLiteral)
	if !ok || second.Value.Int64() != 1 {
		t.Fatalf("second item = %+v", lst.Rest[0].Value.Values[0].Value)
	}
}

// Scenario 4: "[0,]" -> no errors; list with IntegerLiteral, Comma, empty
// MultiValue, SquareBracketClose.
func TestScenarioListTrailingComma(t *testing.T) {
	root := Parse("[0,]")
	assertCodes(t, root)
	assertWidthSum(t, root, "[0,]")
	lst := root.Syntax.Values[0].Value.(*green.List)
	if lst.Close == nil {
		t.Fatal("expected closed list")
	}
	if len(lst.Rest) != 1 {
		t.Fatalf("want one trailing item, got %d", len(lst.Rest))
	}
	if !isEmptyMultiValue(lst.Rest[0].Value) {
		t.Errorf("trailing item should be an empty MultiValue")
	}
}

// Scenario 5: "{0}" -> errors [InvalidPropertyKey, MissingValue]; map with
// one KeyValue whose key section is an integer and value section is empty.
func TestScenarioMapIntegerKeyNoColon(t *testing.T) {
	root := Parse("{0}")
	assertCodes(t, root, diag.InvalidPropertyKey, diag.MissingValue)
	assertWidthSum(t, root, "{0}")
	m := root.Syntax.Values[0].Value.(*green.Map)
	if len(m.Entries) != 1 {
		t.Fatalf("want one entry, got %d", len(m.Entries))
	}
	entry := m.Entries[0]
	if _, ok := entry.Key.Values[0].Value.(*green.IntegerLiteral); !ok {
		t.Fatalf("key = %+v", entry.Key.Values[0].Value)
	}
	if len(entry.Extra) != 1 || entry.Extra[0].Colon != nil {
		t.Fatalf("want one synthetic colon-less value section, got %+v", entry.Extra)
	}
	if !isEmptyMultiValue(entry.Extra[0].Value) {
		t.Errorf("value section should be empty")
	}
}

// Scenario 6: `{"":,""` -> errors [MissingValue, PropertyKeyAlreadyExists,
// UnexpectedEofInObject]; map with two KeyValues, second has only a string
// key.
func TestScenarioMapDuplicateKeyUnterminated(t *testing.T) {
	root := Parse(`{"":,""`)
	assertCodes(t, root, diag.MissingValue, diag.PropertyKeyAlreadyExists, diag.UnexpectedEofInObject)
	assertWidthSum(t, root, `{"":,""`)
	m := root.Syntax.Values[0].Value.(*green.Map)
	if m.Close != nil {
		t.Fatal("expected unterminated map")
	}
	if len(m.Entries) != 2 {
		t.Fatalf("want two entries, got %d", len(m.Entries))
	}
	first, second := m.Entries[0], m.Entries[1]
	if sl, ok := first.Key.Values[0].Value.(*green.StringLiteral); !ok || sl.Value != "" {
		t.Fatalf("first key = %+v", first.Key.Values[0].Value)
	}
	if first.Extra[0].Colon == nil || !isEmptyMultiValue(first.Extra[0].Value) {
		t.Fatalf("first value section = %+v", first.Extra)
	}
	if sl, ok := second.Key.Values[0].Value.(*green.StringLiteral); !ok || sl.Value != "" {
		t.Fatalf("second key = %+v", second.Key.Values[0].Value)
	}
	if len(second.Extra) != 1 || second.Extra[0].Colon != nil {
		t.Fatalf("second entry extra = %+v", second.Extra)
	}
}

// Scenario 7: "\"\\u000g\"" -> single ErrorString with one
// UnrecognizedEscapeSequence whose parameter is \u000 and length 5;
// surrounding span is the whole string.
func TestScenarioBadUnicodeEscape(t *testing.T) {
	input := `"\u000g"`
	root := Parse(input)
	assertCodes(t, root, diag.UnrecognizedEscapeSequence)
	assertWidthSum(t, root, input)
	es, ok := root.Syntax.Values[0].Value.(*green.ErrorString)
	if !ok {
		t.Fatalf("got %T", root.Syntax.Values[0].Value)
	}
	if es.Width() != len(input) {
		t.Errorf("ErrorString width = %d, want %d", es.Width(), len(input))
	}
	e := root.Errors[0]
	if e.Start != 1 || e.Length != 5 || e.Params[0].String() != `\u000` {
		t.Errorf("got %+v", e)
	}
}

// Scenario 8: "/*" -> one UnterminatedBlockComment background; root error
// list has one UnterminatedMultiLineComment over (0, 2).
func TestScenarioUnterminatedBlockComment(t *testing.T) {
	root := Parse("/*")
	assertCodes(t, root, diag.UnterminatedMultiLineComment)
	assertWidthSum(t, root, "/*")
	bg := root.Syntax.Values[0].Background
	if len(bg.Items) != 1 || bg.Items[0].Kind() != green.KindUnterminatedBlockComment {
		t.Fatalf("got %+v", bg.Items)
	}
	e := root.Errors[0]
	if e.Start != 0 || e.Length != 2 {
		t.Errorf("got %+v", e)
	}
}

// Scenario 9: "[{]}" -> errors [ControlSymbolInObject, ExpectedEof]; list
// containing a map containing one empty KeyValue, followed by a stray '}'
// reclassified as RootLevelValueDelimiter.
func TestScenarioListMapStrayBrace(t *testing.T) {
	root := Parse("[{]}")
	assertCodes(t, root, diag.ControlSymbolInObject, diag.ExpectedEof)
	assertWidthSum(t, root, "[{]}")

	lst, ok := root.Syntax.Values[0].Value.(*green.List)
	if !ok {
		t.Fatalf("got %T", root.Syntax.Values[0].Value)
	}
	if lst.Close == nil {
		t.Fatal("expected the outer list to close on ']'")
	}
	m, ok := lst.First.Values[0].Value.(*green.Map)
	if !ok {
		t.Fatalf("got %T", lst.First.Values[0].Value)
	}
	if m.Close != nil {
		t.Error("expected the inner map to be unterminated")
	}
	if len(m.Entries) != 1 || !isEmptyMultiValue(m.Entries[0].Key) {
		t.Fatalf("want one empty KeyValue, got %+v", m.Entries)
	}

	trailing := root.Syntax.Trailing
	if len(trailing.Items) != 1 || trailing.Items[0].Kind() != green.KindRootLevelValueDelimiter {
		t.Fatalf("want trailing RootLevelValueDelimiter, got %+v", trailing.Items)
	}
}

// Scenario 10: ",,0" -> errors [ExpectedEof, ExpectedEof]; ValueWithBackground
// whose background contains two RootLevelValueDelimiters, followed by the
// integer literal.
func TestScenarioLeadingStrayCommas(t *testing.T) {
	root := Parse(",,0")
	assertCodes(t, root, diag.ExpectedEof, diag.ExpectedEof)
	assertWidthSum(t, root, ",,0")
	if len(root.Syntax.Values) != 1 {
		t.Fatalf("want one value, got %d", len(root.Syntax.Values))
	}
	vwb := root.Syntax.Values[0]
	if len(vwb.Background.Items) != 2 {
		t.Fatalf("want two leading delimiters, got %+v", vwb.Background.Items)
	}
	for _, it := range vwb.Background.Items {
		if it.Kind() != green.KindRootLevelValueDelimiter {
			t.Errorf("got %v", it.Kind())
		}
	}
	lit, ok := vwb.Value.(*green.IntegerLiteral)
	if !ok || lit.Value.Int64() != 0 {
		t.Fatalf("got %+v", vwb.Value)
	}
}

// --- Universal properties (spec.md §8) ---

func TestWidthSumAlwaysMatchesInput(t *testing.T) {
	inputs := []string{
		"", "true", "false", "0", "-007", `"abc"`,
		"[0,1]", "[0,]", "{0}", `{"":,""`, `"\u000g"`, "/*",
		"[{]}", ",,0", "// comment\n{true}", "/* unterminated",
		"null_thing", "$€~", "   \t\n  ",
	}
	for _, in := range inputs {
		root := Parse(in)
		assertWidthSum(t, root, in)
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"{", "[", "}", "]", ":", ",", `"`, "/", "\\", "{{{{{",
		"[[[[[", "}}}}}", "]]]]]", `{"a":1,"b":2,}`, "[[1,2],[3,4]]",
		`{"a":{"b":[1,true,"x"]}}`,
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse(%q) panicked: %v", in, r)
				}
			}()
			Parse(in)
		}()
	}
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{"[0,1]", `{"a":1,"a":2}`, "[{]}", ",,0", "{0}"}
	for _, in := range inputs {
		a := Parse(in)
		b := Parse(in)
		if len(a.Errors) != len(b.Errors) {
			t.Fatalf("Parse(%q) not deterministic: %v vs %v", in, a.Errors, b.Errors)
		}
		for i := range a.Errors {
			if !reflect.DeepEqual(a.Errors[i], b.Errors[i]) {
				t.Fatalf("Parse(%q) not deterministic at %d: %v vs %v", in, i, a.Errors[i], b.Errors[i])
			}
		}
	}
}

func TestDuplicateMapKeyDoesNotDropEntry(t *testing.T) {
	root := Parse(`{"a":1,"a":2}`)
	m := root.Syntax.Values[0].Value.(*green.Map)
	if len(m.Entries) != 2 {
		t.Fatalf("want both entries kept, got %d", len(m.Entries))
	}
	found := false
	for _, e := range root.Errors {
		if e.Code == diag.PropertyKeyAlreadyExists {
			found = true
			if e.Params[0].String() != "a" {
				t.Errorf("got param %q", e.Params[0].String())
			}
		}
	}
	if !found {
		t.Error("expected PropertyKeyAlreadyExists")
	}
}

func TestMultipleValuesFlaggedOncePerExtra(t *testing.T) {
	root := Parse("true false true")
	assertCodes(t, root, diag.MultipleValues, diag.MultipleValues)
	if len(root.Syntax.Values) != 3 {
		t.Fatalf("want three values, got %d", len(root.Syntax.Values))
	}
}

func TestWithSuggestionsOffDisablesHint(t *testing.T) {
	withHint := Parse("tru")
	foundHint := false
	for _, e := range withHint.Errors {
		if e.Code == diag.Custom {
			foundHint = true
		}
	}
	if !foundHint {
		t.Error("expected a did-you-mean hint by default")
	}

	withoutHint := Parse("tru", WithSuggestions(false))
	for _, e := range withoutHint.Errors {
		if e.Code == diag.Custom {
			t.Error("suggestion should be disabled")
		}
	}
}
