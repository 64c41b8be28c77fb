// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	assert.Equal(t, []string{"hello world"}, splitText("  hello world  ", 1000, 200))
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Nil(t, splitText("", 1000, 200))
	assert.Nil(t, splitText("   \n\n  ", 1000, 200))
}

func TestSplitTextWindowSize(t *testing.T) {
	text := strings.Repeat("a", 2500)
	chunks := splitText(text, 1000, 200)

	require.True(t, len(chunks) >= 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1000)
	}

	// Every rune of the input appears in some chunk.
	total := 0
	for _, c := range chunks {
		total += len([]rune(c))
	}
	assert.GreaterOrEqual(t, total, 2500)
}

func TestSplitTextPrefersParagraphBreaks(t *testing.T) {
	para := strings.Repeat("b", 700)
	text := para + "\n\n" + para

	chunks := splitText(text, 1000, 0)
	require.Len(t, chunks, 2)
	assert.Equal(t, para, chunks[0])
	assert.Equal(t, para, chunks[1])
}

func TestSplitTextOverlap(t *testing.T) {
	// Unbreakable text forces hard cuts, so windows must share exactly
	// the configured overlap.
	text := strings.Repeat("x", 1800)
	chunks := splitText(text, 1000, 200)

	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[0]), 1000)
	assert.Len(t, []rune(chunks[1]), 1000)
}

func TestSplitTextCountsRunesNotBytes(t *testing.T) {
	// Multi-byte runes must not be split mid-character.
	text := strings.Repeat("한", 1500)
	chunks := splitText(text, 1000, 200)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1000)
		for _, r := range c {
			assert.Equal(t, '한', r)
		}
	}
}

func TestSplitTextDefaults(t *testing.T) {
	text := strings.Repeat("y", 1200)

	// Non-positive size and out-of-range overlap fall back to defaults
	// instead of looping or panicking.
	assert.NotEmpty(t, splitText(text, 0, -5))
	assert.NotEmpty(t, splitText(text, 100, 100))
}

func TestSplitTextAlwaysAdvances(t *testing.T) {
	// Overlap one below size is the worst case for progress.
	text := strings.Repeat("z", 50)
	chunks := splitText(text, 10, 9)
	assert.NotEmpty(t, chunks)
	assert.Less(t, len(chunks), 100)
}
