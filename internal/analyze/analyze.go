// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze classifies a raw question into an intent category
// plus inferred document type and urgency. Classification is delegated
// to a chat model; any failure falls back to the default classification
// so the pipeline always advances.
package analyze

import (
	"context"
	"fmt"

	"github.com/pdiddy/handover-engine/internal/llm"
	"github.com/pdiddy/handover-engine/pkg/types"
)

// systemPrompt instructs the model to classify the question and emit
// nothing but a JSON object. The enum values are fixed regardless of
// the question's language.
const systemPrompt = `You are a question analysis and routing expert for a public-sector office.
Classify the given question into exactly one of four intents and extract
metadata (document type, urgency) as JSON.

# Intent categories
1. template_lookup: the asker wants a specific form or template file itself.
   (e.g. "give me the budget request form", "latest report template", "출장신청서 양식 어디 있어요?")
2. process_guide: the asker wants the order or procedure for doing a task.
   (e.g. "first time handling equipment purchase, what are the steps?", "장비 구매 절차")
3. contact_lookup: the asker wants the person or contact in charge.
   (e.g. "who handles the budget?", "HR team extension number", "예산 담당자 누구야?")
4. general_question: anything else, such as writing tips or simple information.
   (e.g. "things to watch out for when writing a report", "travel request example")

# Urgency
- high: the question contains words like "urgent", "asap", "quickly", "right away", "급해요", "빨리", "긴급", "당장".
- normal: an ordinary request.
- low: explicitly not time-sensitive.

# Output format (output JSON only)
{
  "intent": "<one of template_lookup|process_guide|contact_lookup|general_question>",
  "document_type": "<document type or null>",
  "urgency": "<high|normal|low>"
}

Output nothing but the JSON object.`

// Analyzer classifies questions using a chat model at temperature 0.
type Analyzer struct {
	model llm.ChatModel
}

// NewAnalyzer returns an Analyzer backed by the given chat model.
func NewAnalyzer(model llm.ChatModel) *Analyzer {
	return &Analyzer{model: model}
}

// Analyze classifies the question. It always returns a usable Analysis:
// on any model or parse failure the returned error describes the cause
// and the Analysis carries the defaults (general_question, normal).
func (a *Analyzer) Analyze(ctx context.Context, question string) (types.Analysis, error) {
	reply, err := a.model.Complete(ctx, systemPrompt, "Question: "+question, 0)
	if err != nil {
		return types.DefaultAnalysis(), fmt.Errorf("classification call: %w", err)
	}

	parsed, err := extractJSON(reply)
	if err != nil {
		return types.DefaultAnalysis(), fmt.Errorf("parsing classification reply: %w", err)
	}

	return normalize(parsed), nil
}

// normalize maps a raw model reply onto the fixed enums, substituting
// defaults for unknown values.
func normalize(r analysisReply) types.Analysis {
	out := types.DefaultAnalysis()

	if intent := types.Intent(r.Intent); types.ValidIntents[intent] {
		out.Intent = intent
	}
	if urgency := types.Urgency(r.Urgency); types.ValidUrgencies[urgency] {
		out.Urgency = urgency
	}
	if r.DocumentType != nil {
		out.DocumentType = *r.DocumentType
	}
	return out
}
