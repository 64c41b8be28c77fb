// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results serializes a finished pipeline state to disk in
// plain-text, JSON and Markdown renderings. Persistence is best-effort
// by contract: callers may ignore failures without affecting the
// answer they return.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/handover-engine/pkg/types"
)

const defaultOutputDir = "results"

// Saver writes answer records into an output directory.
type Saver struct {
	outputDir string

	// now is the clock used for file names, overridable in tests.
	now func() time.Time
}

// NewSaver returns a Saver writing into cfg.OutputDir (default
// "results").
func NewSaver(cfg types.ResultsConfig) *Saver {
	dir := cfg.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}
	return &Saver{outputDir: dir, now: time.Now}
}

// Save writes the state as .txt, .json and .md files with a shared
// timestamped base name and returns the three paths.
func (s *Saver) Save(state types.State) ([]string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	ts := s.now()
	base := "result_" + ts.Format("20060102_150405")

	writers := []struct {
		ext    string
		render func(types.State, time.Time) ([]byte, error)
	}{
		{".txt", renderText},
		{".json", renderJSON},
		{".md", renderMarkdown},
	}

	var paths []string
	for _, w := range writers {
		data, err := w.render(state, ts)
		if err != nil {
			return paths, fmt.Errorf("rendering %s result: %w", w.ext, err)
		}
		path := filepath.Join(s.outputDir, base+w.ext)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderText(state types.State, ts time.Time) ([]byte, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Answer record")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "\nGenerated: %s\n", ts.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "\nQuestion: %s\n", state.Question)
	fmt.Fprintf(&b, "Intent: %s   Urgency: %s\n", state.Analysis.Intent, state.Analysis.Urgency)

	fmt.Fprintf(&b, "\nAnswer\n%s\n%s\n", strings.Repeat("-", 70), state.Draft.Answer)

	if len(state.Verification.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings\n%s\n", strings.Repeat("-", 70))
		for _, w := range state.Verification.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if sources := collectSources(state.Retrieval); len(sources) > 0 {
		fmt.Fprintf(&b, "\nReference documents\n%s\n", strings.Repeat("-", 70))
		for _, src := range sources {
			fmt.Fprintf(&b, "  - %s\n", src)
		}
	}

	fmt.Fprintln(&b, "\n"+rule)
	return []byte(b.String()), nil
}

// jsonRecord is the serialized shape of one answer record.
type jsonRecord struct {
	Timestamp    string        `json:"timestamp"`
	Question     string        `json:"question"`
	Intent       types.Intent  `json:"intent"`
	DocumentType string        `json:"document_type,omitempty"`
	Urgency      types.Urgency `json:"urgency"`
	Answer       string        `json:"answer"`
	Summary      string        `json:"summary"`
	Details      string        `json:"details"`
	Tips         string        `json:"tips"`
	Verified     bool          `json:"is_verified"`
	Warnings     []string      `json:"warnings"`
	Sources      []string      `json:"sources"`
}

func renderJSON(state types.State, ts time.Time) ([]byte, error) {
	record := jsonRecord{
		Timestamp:    ts.Format(time.RFC3339),
		Question:     state.Question,
		Intent:       state.Analysis.Intent,
		DocumentType: state.Analysis.DocumentType,
		Urgency:      state.Analysis.Urgency,
		Answer:       state.Draft.Answer,
		Summary:      state.Draft.Summary,
		Details:      state.Draft.Details,
		Tips:         state.Draft.Tips,
		Verified:     state.Verification.Verified,
		Warnings:     state.Verification.Warnings,
		Sources:      collectSources(state.Retrieval),
	}
	return json.MarshalIndent(record, "", "  ")
}

func renderMarkdown(state types.State, ts time.Time) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Answer record\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n---\n\n", ts.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "## Question\n\n%s\n\n", state.Question)
	fmt.Fprintf(&b, "- **Intent**: %s\n- **Urgency**: %s\n\n", state.Analysis.Intent, state.Analysis.Urgency)
	fmt.Fprintf(&b, "## Answer\n\n%s\n\n", state.Draft.Answer)

	if len(state.Verification.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range state.Verification.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		fmt.Fprintln(&b)
	}

	if sources := collectSources(state.Retrieval); len(sources) > 0 {
		fmt.Fprintf(&b, "## Reference documents\n\n")
		for _, src := range sources {
			fmt.Fprintf(&b, "- %s\n", src)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "---")
	return []byte(b.String()), nil
}

// collectSources returns the distinct sources across the search results
// and all three buckets, in first-seen order.
func collectSources(r types.Retrieval) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, chunks := range [][]types.Chunk{r.SearchResults, r.Templates, r.Examples, r.Related} {
		for _, c := range chunks {
			if src := c.Metadata.Source; src != "" && !seen[src] {
				seen[src] = true
				sources = append(sources, src)
			}
		}
	}
	return sources
}
