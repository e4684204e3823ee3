package utils

import "unicode"

// Span is a half-open [Start, End) window over the runes of a text.
type Span struct {
	Start int
	End   int
}

// SplitSpans windows text into spans of at most chunkSize runes. Consecutive spans
// share exactly overlap runes, so the spans cover the text without gaps.
// When a window has to be cut, the cut prefers a paragraph break, then a line
// break, then a space, as long as the window stays at least half full.
func SplitSpans(text string, chunkSize int, overlap int) []Span {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen == 0 {
		return nil
	}
	if chunkSize <= 0 || totalLen <= chunkSize {
		return []Span{{Start: 0, End: totalLen}}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0 // fallback if overlap >= chunkSize
	}

	var spans []Span
	start := 0
	for {
		end := start + chunkSize
		if end >= totalLen {
			spans = append(spans, Span{Start: start, End: totalLen})
			break
		}

		minEnd := start + overlap + 1
		if half := start + chunkSize/2; half > minEnd {
			minEnd = half
		}
		end = preferBoundary(runes, minEnd, end)

		spans = append(spans, Span{Start: start, End: end})
		start = end - overlap
	}

	return spans
}

// SplitText splits a long string into chunks of at most chunkSize runes with
// overlap runes shared between neighbours.
func SplitText(text string, chunkSize int, overlap int) []string {
	spans := SplitSpans(text, chunkSize, overlap)
	runes := []rune(text)

	chunks := make([]string, 0, len(spans))
	for _, s := range spans {
		chunks = append(chunks, string(runes[s.Start:s.End]))
	}
	return chunks
}

func preferBoundary(runes []rune, minEnd, maxEnd int) int {
	matchers := []func(i int) bool{
		func(i int) bool { return i >= 2 && runes[i-1] == '\n' && runes[i-2] == '\n' },
		func(i int) bool { return runes[i-1] == '\n' },
		func(i int) bool { return unicode.IsSpace(runes[i-1]) },
	}
	for _, match := range matchers {
		for i := maxEnd; i >= minEnd; i-- {
			if match(i) {
				return i
			}
		}
	}
	return maxEnd
}
