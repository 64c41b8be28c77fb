// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// yearPattern matches a plausible publication year in a file name,
// e.g. "budget_request_2024.docx" or "press_release_(2023).pdf".
var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// inferYear extracts a publication year from a file name, or 0.
// The last match wins, since trailing years are the common convention.
func inferYear(name string) int {
	matches := yearPattern.FindAllString(name, -1)
	if len(matches) == 0 {
		return 0
	}
	year, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return 0
	}
	return year
}

// docTypeKeywords maps file-name markers to canonical document-type
// labels. Korean markers match the naming convention of the source
// document set.
var docTypeKeywords = []struct {
	marker string
	label  string
}{
	{"template", "template"},
	{"템플릿", "template"},
	{"form", "form"},
	{"양식", "form"},
	{"example", "example"},
	{"예시", "example"},
	{"case", "case"},
	{"사례", "case"},
	{"report", "report"},
	{"보고서", "report"},
	{"guide", "guide"},
	{"가이드", "guide"},
	{"안내", "guide"},
	{"faq", "faq"},
}

// inferDocumentType derives a document-type label from a file name, or
// returns the empty string. First marker wins, checked in a fixed order
// so names carrying several markers classify deterministically.
func inferDocumentType(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range docTypeKeywords {
		if strings.Contains(lower, kw.marker) {
			return kw.label
		}
	}
	return ""
}
