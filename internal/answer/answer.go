// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer renders a prompt from the question and the retrieved
// document buckets, invokes the generation model, and parses the reply
// into its summary, details and tips sections.
package answer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/handover-engine/internal/llm"
	"github.com/pdiddy/handover-engine/pkg/types"
)

// excerptBudget caps how much of a chunk is quoted into the prompt.
const excerptBudget = 500

const defaultTemperature = 0.3

// Apology is the user-facing answer substituted when generation fails.
const Apology = "Sorry, something went wrong while generating the answer. Please try again."

// ErrorSummary is the summary recorded alongside an apology answer.
const ErrorSummary = "error occurred"

// generationSystemPrompt fixes the three-section reply format. The
// marker glyphs are distinct enough not to collide with ordinary prose
// and double as split points for the parser.
const generationSystemPrompt = `You are a work-assistance AI for a public-sector office.
Answer the question accurately and kindly, grounded in the reference documents provided.

# Reply format
You must reply in exactly this format:

📌 Summary:
(the core answer in one line)

📝 Details:
(a structured, step-by-step or itemized explanation)

💡 Tips:
(practical tips, cautions, and common mistakes)

# Writing guide
1. The summary is one clear sentence.
2. Structure the details as 2-5 items.
3. Tips should be immediately applicable in practice.
4. Explain jargon in plain language.
5. If urgency is "high", lead with the most abbreviated workable method.
6. If the intent is template_lookup, point at the concrete form or template file.`

// userPromptTmpl renders the question, its classification, and the
// three document buckets into the user message.
var userPromptTmpl = template.Must(template.New("generate").Parse(`Question: {{.Question}}

Intent: {{.Intent}}
Document type: {{.DocumentType}}
Urgency: {{.Urgency}}

Reference documents:

[Templates]
{{.Templates}}

[Examples]
{{.Examples}}

[Related documents]
{{.Related}}

Reply in the required format.`))

// Generator produces structured answers from retrieved context.
type Generator struct {
	model       llm.ChatModel
	temperature float64
}

// NewGenerator returns a Generator. A non-positive temperature uses the
// default of 0.3.
func NewGenerator(model llm.ChatModel, temperature float64) *Generator {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Generator{model: model, temperature: temperature}
}

// Generate invokes the model and parses its reply. A model failure is
// recovered: the returned Draft carries the apology answer and the
// error describes the cause. Parse shortfalls never fail the stage.
func (g *Generator) Generate(ctx context.Context, question string, analysis types.Analysis, retrieval types.Retrieval) (types.Draft, error) {
	prompt, err := renderUserPrompt(question, analysis, retrieval)
	if err != nil {
		return fallbackDraft(), fmt.Errorf("rendering generation prompt: %w", err)
	}

	raw, err := g.model.Complete(ctx, generationSystemPrompt, prompt, g.temperature)
	if err != nil {
		return fallbackDraft(), fmt.Errorf("generation call: %w", err)
	}

	parsed := ParseAnswer(raw)
	return types.Draft{
		Answer:  raw,
		Summary: parsed.Summary,
		Details: parsed.Details,
		Tips:    parsed.Tips,
	}, nil
}

func fallbackDraft() types.Draft {
	return types.Draft{Answer: Apology, Summary: ErrorSummary}
}

func renderUserPrompt(question string, analysis types.Analysis, retrieval types.Retrieval) (string, error) {
	docType := analysis.DocumentType
	if docType == "" {
		docType = "unknown"
	}

	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct {
		Question, Intent, DocumentType, Urgency string
		Templates, Examples, Related            string
	}{
		Question:     question,
		Intent:       string(analysis.Intent),
		DocumentType: docType,
		Urgency:      string(analysis.Urgency),
		Templates:    formatChunks(retrieval.Templates),
		Examples:     formatChunks(retrieval.Examples),
		Related:      formatChunks(retrieval.Related),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatChunks renders a bucket as a numbered list of source/excerpt
// pairs. Excerpts are truncated to the budget with an ellipsis marker;
// an empty bucket renders as a literal "none".
func formatChunks(chunks []types.Chunk) string {
	if len(chunks) == 0 {
		return "none"
	}

	var parts []string
	for i, c := range chunks {
		excerpt := c.Content
		if runes := []rune(excerpt); len(runes) > excerptBudget {
			excerpt = string(runes[:excerptBudget]) + "..."
		}
		parts = append(parts, fmt.Sprintf("%d. source: %s\ncontent: %s\n", i+1, c.Metadata.Source, excerpt))
	}
	return strings.Join(parts, "\n")
}
