// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import "strings"

// Section markers the generation prompt demands, in reply order.
// Splitting prose on glyphs is fragile against model drift, so all of
// that fragility lives in ParseAnswer and nowhere else.
const (
	summaryMarker = "📌"
	detailsMarker = "📝"
	tipsMarker    = "💡"
)

// Parsed holds the sections recovered from a generated answer. Fields
// are empty when their marker is absent from the reply.
type Parsed struct {
	Summary string
	Details string
	Tips    string
}

// ParseAnswer splits a raw model reply on the three section markers.
// It is a total function: it never fails, and a reply with no markers
// yields an all-empty Parsed while the caller keeps the raw answer.
func ParseAnswer(raw string) Parsed {
	return Parsed{
		Summary: cleanSection(between(raw, summaryMarker, detailsMarker), "Summary", "요약"),
		Details: cleanSection(between(raw, detailsMarker, tipsMarker), "Details", "상세 설명"),
		Tips:    cleanSection(after(raw, tipsMarker), "Tips", "작성 팁 및 주의사항"),
	}
}

// between returns the text after the first start marker, cut at the
// first end marker if one follows. Empty when start is absent.
func between(s, start, end string) string {
	_, rest, found := strings.Cut(s, start)
	if !found {
		return ""
	}
	if head, _, ok := strings.Cut(rest, end); ok {
		return head
	}
	return rest
}

// after returns the text following the first marker, or "".
func after(s, marker string) string {
	_, rest, found := strings.Cut(s, marker)
	if !found {
		return ""
	}
	return rest
}

// cleanSection strips the section's label words and colons, then trims
// surrounding whitespace.
func cleanSection(s string, labels ...string) string {
	for _, label := range labels {
		s = strings.ReplaceAll(s, label, "")
	}
	s = strings.ReplaceAll(s, ":", "")
	return strings.TrimSpace(s)
}
