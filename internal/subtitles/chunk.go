package subtitles

import "strings"

// chunkDelimiters are searched in priority order when deciding where to cut
// a window of narration text.
var chunkDelimiters = []rune{'。', '、', '！', '？'}

// SplitChunks breaks narration into display chunks of at most maxChars
// runes. When a window would end mid-text, the cut prefers a delimiter in
// the last 60% of the window; otherwise it falls back to a hard cut at the
// maxChars boundary. Leading/trailing whitespace is stripped from each
// chunk, and a whitespace-only window stays in the result as an empty
// chunk so that it keeps holding its share of the scene's duration.
func SplitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 1
	}
	runes := []rune(text)
	var chunks []string

	pos := 0
	for pos < len(runes) {
		end := pos + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		window := runes[pos:end]

		if end < len(runes) {
			if cut := delimiterCut(window); cut != -1 {
				window = window[:cut]
				end = pos + cut
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(window)))
		pos = end
	}

	return chunks
}

// delimiterCut returns the rune index just past the best delimiter in the
// window, or -1 when no delimiter falls in the last 60% of it.
func delimiterCut(window []rune) int {
	for _, delim := range chunkDelimiters {
		idx := -1
		for i := len(window) - 1; i >= 0; i-- {
			if window[i] == delim {
				idx = i
				break
			}
		}
		if idx != -1 && float64(idx) > float64(len(window))*0.4 {
			return idx + 1
		}
	}
	return -1
}
