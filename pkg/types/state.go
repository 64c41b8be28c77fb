// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared across the question-answering
// pipeline: retrieved chunks, per-stage outputs, the accumulated state,
// and configuration.
package types

// Intent is the classified purpose of a user question.
type Intent string

const (
	IntentTemplateLookup  Intent = "template_lookup"
	IntentProcessGuide    Intent = "process_guide"
	IntentContactLookup   Intent = "contact_lookup"
	IntentGeneralQuestion Intent = "general_question"
)

// ValidIntents is the set of accepted Intent values.
var ValidIntents = map[Intent]bool{
	IntentTemplateLookup:  true,
	IntentProcessGuide:    true,
	IntentContactLookup:   true,
	IntentGeneralQuestion: true,
}

// Urgency expresses how quickly the asker needs an answer.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyNormal Urgency = "normal"
	UrgencyLow    Urgency = "low"
)

// ValidUrgencies is the set of accepted Urgency values.
var ValidUrgencies = map[Urgency]bool{
	UrgencyHigh:   true,
	UrgencyNormal: true,
	UrgencyLow:    true,
}

// Analysis is the intent analyzer's output.
type Analysis struct {
	// Intent is one of the four fixed categories. Defaults to
	// general_question when classification fails.
	Intent Intent `json:"intent" yaml:"intent"`

	// DocumentType is a free-form label inferred from the question
	// (e.g. "travel request form"), or empty when none applies.
	DocumentType string `json:"document_type,omitempty" yaml:"document_type,omitempty"`

	// Urgency defaults to normal.
	Urgency Urgency `json:"urgency" yaml:"urgency"`
}

// DefaultAnalysis returns the fallback classification used whenever the
// analyzer cannot produce a valid one.
func DefaultAnalysis() Analysis {
	return Analysis{Intent: IntentGeneralQuestion, Urgency: UrgencyNormal}
}

// Retrieval is the retrieval agent's output. SearchResults holds the
// first filtered candidates in pre-partition order; Templates, Examples
// and Related are a disjoint partition of the filtered set.
type Retrieval struct {
	SearchResults []Chunk `json:"search_results" yaml:"search_results"`
	Templates     []Chunk `json:"templates" yaml:"templates"`
	Examples      []Chunk `json:"examples" yaml:"examples"`
	Related       []Chunk `json:"related" yaml:"related"`
}

// Draft is the answer generator's output. Summary, Details and Tips are
// parsed out of Answer; they are empty when the section markers are
// missing from the model reply.
type Draft struct {
	Answer  string `json:"answer" yaml:"answer"`
	Summary string `json:"summary" yaml:"summary"`
	Details string `json:"details" yaml:"details"`
	Tips    string `json:"tips" yaml:"tips"`
}

// Verification is the verification agent's output. Verified is true iff
// Warnings is empty.
type Verification struct {
	Verified bool     `json:"is_verified" yaml:"is_verified"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// State is the single record threaded through the pipeline. Question is
// set by the caller and never mutated; each stage fills exactly one of
// the embedded output structs, merged in by the orchestrator.
type State struct {
	Question string `json:"question" yaml:"question"`

	Analysis     Analysis     `json:"analysis" yaml:"analysis"`
	Retrieval    Retrieval    `json:"retrieval" yaml:"retrieval"`
	Draft        Draft        `json:"draft" yaml:"draft"`
	Verification Verification `json:"verification" yaml:"verification"`
}

// NewState returns a fresh state for one pipeline run with all scalar
// fields at their defaults and all collections empty.
func NewState(question string) State {
	return State{
		Question: question,
		Analysis: DefaultAnalysis(),
	}
}
