// Package validate decides whether a model response may be shown.
//
// Three substring gates run in order and the first failure rejects:
//
//  1. refusal: the lower-cased output contains a refusal phrase
//  2. completeness: the output is shorter than MinLengthRatio of the input
//  3. markup: corrections are bold-marked without both colour markers
//
// Content is never modified, only accepted or rejected.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// Validator implements core.Validator.
type Validator struct {
	rules Rules
}

// New creates a Validator for rules.
func New(rules Rules) *Validator {
	phrases := make([]string, 0, len(rules.RefusalPhrases))
	for _, p := range rules.RefusalPhrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			phrases = append(phrases, p)
		}
	}
	rules.RefusalPhrases = phrases
	return &Validator{rules: rules}
}

// Rules returns the heuristics in use.
func (v *Validator) Rules() Rules { return v.rules }

// Validate runs the gates over output against the original text.
func (v *Validator) Validate(output, original string) core.Outcome {
	lower := strings.ToLower(output)
	for _, phrase := range v.rules.RefusalPhrases {
		if strings.Contains(lower, phrase) {
			return core.Rejected(core.ReasonNonCompliant, fmt.Sprintf("output contains %q", phrase))
		}
	}

	got, want := utf8.RuneCountInString(output), utf8.RuneCountInString(original)
	if float64(got) < v.rules.MinLengthRatio*float64(want) {
		return core.Rejected(core.ReasonTruncated, fmt.Sprintf("output has %d of %d characters", got, want))
	}

	if strings.Contains(output, v.rules.BoldMarker) {
		hasDel := strings.Contains(output, v.rules.DeletionMarker)
		hasIns := strings.Contains(output, v.rules.InsertionMarker)
		if !hasDel || !hasIns {
			return core.Rejected(core.ReasonMalformed, missing(v.rules, hasDel, hasIns))
		}
	}

	return core.Accepted(output)
}

func missing(r Rules, hasDel, hasIns bool) string {
	var names []string
	if !hasDel {
		names = append(names, r.DeletionMarker)
	}
	if !hasIns {
		names = append(names, r.InsertionMarker)
	}
	return "bold markup without " + strings.Join(names, " and ")
}

var _ core.Validator = (*Validator)(nil)
