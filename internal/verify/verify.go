// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify runs rule-based quality checks over a generated answer
// and its retrieved context. Verification is a pure function of the
// state: no model calls, no I/O, and it never blocks or rewrites the
// answer, it only annotates it with warnings.
package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/handover-engine/pkg/types"
)

const (
	// freshnessHorizon is how many years old a referenced document may
	// be before it draws a warning.
	freshnessHorizon = 2

	// maxNamedSources caps how many stale sources one warning names.
	maxNamedSources = 3

	minAnswerLength = 50
	maxUrgentAnswer = 1000
)

// Keyword sets the intent-match check looks for in the answer text.
var (
	templateKeywords = []string{"form", "template", "file", "양식", "템플릿", "파일"}
	processKeywords  = []string{"step", "order", "procedure", "단계", "순서", "절차"}
)

// Verifier checks answer quality against the retrieved context.
type Verifier struct {
	// now is the clock, overridable in tests.
	now func() time.Time
}

// NewVerifier returns a Verifier using the wall clock.
func NewVerifier() *Verifier {
	return &Verifier{now: time.Now}
}

// Verify runs every check and returns the combined result. All checks
// run regardless of earlier findings; Verified is true iff no check
// produced a warning. Verifying the same state twice yields identical
// warnings.
func (v *Verifier) Verify(state types.State) types.Verification {
	var warnings []string

	warnings = append(warnings, v.checkFreshness(state)...)
	warnings = append(warnings, checkCompleteness(state)...)
	warnings = append(warnings, checkIntentMatch(state)...)
	warnings = append(warnings, checkUrgencyHandling(state)...)

	return types.Verification{
		Verified: len(warnings) == 0,
		Warnings: warnings,
	}
}

// checkFreshness flags referenced documents whose metadata year is more
// than freshnessHorizon years older than the current calendar year.
func (v *Verifier) checkFreshness(state types.State) []string {
	currentYear := v.now().Year()

	var stale []string
	for _, chunks := range [][]types.Chunk{
		state.Retrieval.SearchResults,
		state.Retrieval.Templates,
		state.Retrieval.Examples,
	} {
		for _, c := range chunks {
			if c.Metadata.Year > 0 && c.Metadata.Year < currentYear-freshnessHorizon {
				stale = append(stale, fmt.Sprintf("%s (%d)", c.Metadata.Source, c.Metadata.Year))
			}
		}
	}

	if len(stale) == 0 {
		return nil
	}
	if len(stale) > maxNamedSources {
		stale = stale[:maxNamedSources]
	}
	return []string{
		fmt.Sprintf("some reference documents are more than %d years old: %s",
			freshnessHorizon, strings.Join(stale, ", ")),
	}
}

// checkCompleteness flags answers that are too short, unstructured, or
// generated without any grounding documents.
func checkCompleteness(state types.State) []string {
	var warnings []string
	answer := state.Draft.Answer

	if len([]rune(answer)) < minAnswerLength {
		warnings = append(warnings, "the answer is too short")
	}
	if !strings.Contains(answer, "📌") || !strings.Contains(answer, "📝") {
		warnings = append(warnings, "the answer is not structured in the recommended format")
	}
	if len(state.Retrieval.SearchResults) == 0 && len(state.Retrieval.Templates) == 0 {
		warnings = append(warnings, "the answer was generated without reference documents")
	}
	return warnings
}

// checkIntentMatch flags answers that ignore what the intent asked for.
func checkIntentMatch(state types.State) []string {
	answer := strings.ToLower(state.Draft.Answer)

	switch state.Analysis.Intent {
	case types.IntentTemplateLookup:
		if !containsAny(answer, templateKeywords) {
			return []string{"the answer lacks template or form details the question asked for"}
		}
	case types.IntentProcessGuide:
		if !containsAny(answer, processKeywords) {
			return []string{"the answer lacks step-by-step process details the question asked for"}
		}
	}
	return nil
}

// checkUrgencyHandling flags long answers to urgent questions.
func checkUrgencyHandling(state types.State) []string {
	if state.Analysis.Urgency == types.UrgencyHigh && len([]rune(state.Draft.Answer)) > maxUrgentAnswer {
		return []string{"the question is urgent but the answer is too long"}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
