package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconstruct(text string, spans []Span) string {
	runes := []rune(text)
	var b strings.Builder
	prevEnd := 0
	for _, s := range spans {
		b.WriteString(string(runes[prevEnd:s.End]))
		prevEnd = s.End
	}
	return b.String()
}

func TestSplitSpans(t *testing.T) {
	prose := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 120)
	paragraphs := strings.Repeat("First paragraph line.\nSecond line here.\n\n", 80)
	solid := strings.Repeat("x", 3500)

	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
	}{
		{name: "prose default sizes", text: prose, chunkSize: 1000, overlap: 200},
		{name: "paragraphs", text: paragraphs, chunkSize: 1000, overlap: 200},
		{name: "no whitespace hard cut", text: solid, chunkSize: 1000, overlap: 200},
		{name: "small window", text: prose, chunkSize: 50, overlap: 10},
		{name: "no overlap", text: prose, chunkSize: 300, overlap: 0},
		{name: "multibyte runes", text: strings.Repeat("héllo wörld ünïcode ", 200), chunkSize: 100, overlap: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := SplitSpans(tt.text, tt.chunkSize, tt.overlap)
			require.NotEmpty(t, spans)

			assert.Equal(t, 0, spans[0].Start)
			assert.Equal(t, len([]rune(tt.text)), spans[len(spans)-1].End)

			for i, s := range spans {
				assert.LessOrEqual(t, s.End-s.Start, tt.chunkSize, "span %d too long", i)
				if i > 0 {
					prev := spans[i-1]
					assert.Equal(t, tt.overlap, prev.End-s.Start, "span %d overlap", i)
					assert.Greater(t, s.Start, prev.Start, "span %d must advance", i)
				}
			}

			assert.Equal(t, tt.text, reconstruct(tt.text, spans))
		})
	}
}

func TestSplitSpans_PrefersWhitespace(t *testing.T) {
	text := strings.Repeat("word ", 400)
	spans := SplitSpans(text, 1000, 200)
	runes := []rune(text)

	for _, s := range spans[:len(spans)-1] {
		assert.Equal(t, ' ', runes[s.End-1], "cut should land after a space")
	}
}

func TestSplitSpans_EdgeCases(t *testing.T) {
	assert.Nil(t, SplitSpans("", 1000, 200))
	assert.Equal(t, []Span{{Start: 0, End: 5}}, SplitSpans("short", 1000, 200))

	// overlap >= chunkSize falls back to no overlap
	spans := SplitSpans(strings.Repeat("a", 30), 10, 10)
	assert.Len(t, spans, 3)
}

func TestSplitText_Deterministic(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. ", 60)

	first := SplitText(text, 1000, 200)
	second := SplitText(text, 1000, 200)

	assert.Equal(t, first, second)
	assert.Greater(t, len(first), 1)
}
