// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import "strings"

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// splitText cuts text into rune windows of at most size runes with the
// given overlap between consecutive windows. Each cut point prefers a
// paragraph break, then a line break, then a space, searched backwards
// from the window end so chunks end on natural boundaries when possible.
func splitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	runes := []rune(text)
	if len(runes) <= size {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// breakPoint searches backwards from end for a natural boundary, but
// never moves the cut before the middle of the window.
func breakPoint(runes []rune, start, end int) int {
	min := start + (end-start)/2

	for _, sep := range []string{"\n\n", "\n", " "} {
		window := string(runes[min:end])
		if i := strings.LastIndex(window, sep); i >= 0 {
			return min + len([]rune(window[:i])) + len([]rune(sep))
		}
	}
	return end
}
