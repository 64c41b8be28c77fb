// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// analysisReply mirrors the JSON object the classification prompt asks
// for. DocumentType is a pointer so an explicit null and a missing key
// both collapse to "absent".
type analysisReply struct {
	Intent       string  `json:"intent"`
	DocumentType *string `json:"document_type"`
	Urgency      string  `json:"urgency"`
}

var (
	// jsonFence matches a code block explicitly tagged as JSON.
	jsonFence = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

	// anyFence matches any fenced code block holding an object.
	anyFence = regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```")

	// braceObject matches the first balanced-brace JSON object,
	// supporting one level of nested braces.
	braceObject = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
)

// extractJSON pulls the classification object out of a model reply.
// Replies wrapped in fenced code blocks are unwrapped first, preferring
// a block tagged as JSON; the first balanced-brace object in whatever
// remains is then parsed.
func extractJSON(text string) (analysisReply, error) {
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	} else if m := anyFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	obj := braceObject.FindString(text)
	if obj == "" {
		return analysisReply{}, fmt.Errorf("no JSON object found in reply")
	}

	var reply analysisReply
	if err := json.Unmarshal([]byte(obj), &reply); err != nil {
		return analysisReply{}, fmt.Errorf("unmarshaling %q: %w", obj, err)
	}
	return reply, nil
}
