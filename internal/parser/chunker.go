package parser

import (
	"strings"
	"unicode/utf8"
)

// splitText splits content into pieces of at most maxChars characters,
// each overlapping its predecessor by overlapChars. The split is
// deterministic and order preserving; together the pieces cover the
// whole content. When possible the cut is moved back to the nearest
// space, newline, or sentence end within the last tenth of the piece.
func splitText(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	content = strings.TrimSpace(content)
	contentLen := len(content)
	if contentLen == 0 {
		return nil
	}
	if contentLen <= maxChars {
		return []string{content}
	}

	var pieces []string
	start := 0
	for start < contentLen {
		end := min(start+maxChars, contentLen)

		if end < contentLen {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}
		end = runeBoundary(content, start, end)

		piece := strings.TrimSpace(content[start:end])
		if piece != "" {
			pieces = append(pieces, piece)
		}

		if end == contentLen {
			break
		}
		next := runeBoundary(content, start, end-overlapChars)
		if next <= start {
			// overlap larger than the advance would stall the scan
			next = end
		}
		start = next
	}

	return pieces
}

// runeBoundary moves pos back to the nearest rune start so a cut never
// lands inside a multi-byte UTF-8 sequence. If walking back would reach
// start, it walks forward instead to keep the scan advancing.
func runeBoundary(content string, start, pos int) int {
	if pos <= start {
		return pos
	}
	if pos >= len(content) {
		return len(content)
	}
	back := pos
	for back > start && !utf8.RuneStart(content[back]) {
		back--
	}
	if back > start {
		return back
	}
	for pos < len(content) && !utf8.RuneStart(content[pos]) {
		pos++
	}
	return pos
}
