// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the four agent stages in fixed order over one
// accumulating state record. Every stage is total: recovered failures
// surface as logged errors plus fallback outputs, and a final panic
// backstop guarantees the caller always receives a well-formed state.
package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/handover-engine/internal/answer"
	"github.com/pdiddy/handover-engine/pkg/types"
)

// Analyzer classifies a question. Implementations must return a usable
// Analysis even on failure.
type Analyzer interface {
	Analyze(ctx context.Context, question string) (types.Analysis, error)
}

// Retriever searches and partitions reference documents.
type Retriever interface {
	Retrieve(ctx context.Context, question string, analysis types.Analysis) (types.Retrieval, error)
}

// Generator produces the structured answer.
type Generator interface {
	Generate(ctx context.Context, question string, analysis types.Analysis, retrieval types.Retrieval) (types.Draft, error)
}

// Verifier annotates the accumulated state with quality warnings.
type Verifier interface {
	Verify(state types.State) types.Verification
}

// Saver persists a finished state. Failures do not affect the returned
// state.
type Saver interface {
	Save(state types.State) ([]string, error)
}

// Pipeline owns the stage sequence analyze → search → generate →
// verify. The agent handles are read-only and shared across runs; each
// run allocates its own state record.
type Pipeline struct {
	analyzer  Analyzer
	retriever Retriever
	generator Generator
	verifier  Verifier
	saver     Saver
	log       *log.Logger
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithSaver attaches a persistence collaborator. Each successful run
// with a non-empty answer is saved; save failures are logged and
// otherwise ignored.
func WithSaver(s Saver) Option {
	return func(p *Pipeline) { p.saver = s }
}

// WithLogger sets the logger stages report to.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New assembles a pipeline from the four stage agents.
func New(analyzer Analyzer, retriever Retriever, generator Generator, verifier Verifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		analyzer:  analyzer,
		retriever: retriever,
		generator: generator,
		verifier:  verifier,
		log:       log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for one question and returns the final
// state. It never returns an error and never panics: stage failures are
// recovered in place, and anything escaping the per-stage handling is
// caught by the backstop, which substitutes the apology state.
func (p *Pipeline) Run(ctx context.Context, question string) (state types.State) {
	state = types.NewState(question)

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pipeline backstop triggered", "panic", r)
			state = fallbackState(question, r)
		}
	}()

	analysis, err := p.analyzer.Analyze(ctx, question)
	if err != nil {
		p.log.Warn("intent analysis fell back to defaults", "stage", "analyze", "err", err)
	}
	state.Analysis = analysis
	p.log.Debug("question analyzed",
		"intent", analysis.Intent, "document_type", analysis.DocumentType, "urgency", analysis.Urgency)

	retrieval, err := p.retriever.Retrieve(ctx, question, state.Analysis)
	if err != nil {
		p.log.Warn("retrieval returned no documents", "stage", "search", "err", err)
	}
	state.Retrieval = retrieval
	p.log.Debug("documents retrieved",
		"results", len(retrieval.SearchResults), "templates", len(retrieval.Templates),
		"examples", len(retrieval.Examples), "related", len(retrieval.Related))

	draft, err := p.generator.Generate(ctx, question, state.Analysis, state.Retrieval)
	if err != nil {
		p.log.Warn("generation fell back to apology answer", "stage", "generate", "err", err)
	}
	state.Draft = draft

	state.Verification = p.verifier.Verify(state)
	p.log.Debug("answer verified",
		"verified", state.Verification.Verified, "warnings", len(state.Verification.Warnings))

	if p.saver != nil && state.Draft.Answer != "" {
		if _, err := p.saver.Save(state); err != nil {
			p.log.Debug("saving result failed", "err", err)
		}
	}

	return state
}

// fallbackState is the well-formed state returned when a run escapes
// all per-stage error handling.
func fallbackState(question string, cause any) types.State {
	state := types.NewState(question)
	state.Draft = types.Draft{
		Answer:  answer.Apology,
		Summary: answer.ErrorSummary,
	}
	state.Verification = types.Verification{
		Verified: false,
		Warnings: []string{fmt.Sprintf("pipeline failure: %v", cause)},
	}
	return state
}
