package parser

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jsonwc/cst/diag"
)

// recognizedWords lists the word-shaped literals the grammar assigns
// meaning to; an UndefinedValue that nearly matches one is very likely a
// typo rather than a deliberate identifier.
var recognizedWords = []string{"true", "false"}

// suggestFor returns a Message-level Custom diagnostic offering a "did you
// mean" correction for word, grounded on the teacher's findClosestMatch
// (runtime/planner fuzzy command-name correction), which reaches for the
// same fuzzy.RankFindFold call to turn a near-miss into a suggestion rather
// than silence.
func suggestFor(word string, start, width int) (diag.Error, bool) {
	ranked := fuzzy.RankFindFold(word, recognizedWords)
	if len(ranked) == 0 {
		return diag.Error{}, false
	}
	best := ranked[0]
	for _, r := range ranked {
		if r.Distance < best.Distance {
			best = r
		}
	}
	if best.Distance == 0 || best.Distance > 2 {
		return diag.Error{}, false
	}
	return diag.New(diag.Custom, diag.Message, start, width, diag.StringParam(`did you mean "`+best.Target+`"?`)), true
}
