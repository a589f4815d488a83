// Package extract isolates the best-guess JSON payload from raw model
// output. Models routinely wrap their answer in markdown fences, prose, or
// smart quotes; the extractor trims all of that down to a single balanced
// object or array for the repair chain to parse.
package extract

import "strings"

var quoteNormalizer = strings.NewReplacer(
	"“", `"`, // left double curly quote
	"”", `"`, // right double curly quote
	"‘", `"`, // left single curly quote
	"’", `"`, // right single curly quote
	"`", `"`,
)

// JSON returns the most plausible JSON substring of raw. It strips one
// surrounding code fence, normalizes curly quotes and backticks to straight
// double quotes, then scans from the first opening brace or bracket until
// nesting depth returns to zero. The scan is string-aware: braces inside
// quoted literals do not affect depth, and backslash escapes are honored.
//
// When no balanced close exists the remainder of the text is returned so the
// parser fails with a real error instead of a silently truncated payload.
// Text with no opening brace or bracket at all is returned unchanged.
func JSON(raw string) string {
	text := quoteNormalizer.Replace(stripFence(raw))

	start := openingIndex(text)
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return text[start:]
}

// stripFence removes a single leading ```json or ``` fence line and, when
// present, the matching trailing fence.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// openingIndex locates the first '{' or '[', whichever occurs earlier.
func openingIndex(text string) int {
	brace := strings.IndexByte(text, '{')
	bracket := strings.IndexByte(text, '[')
	switch {
	case brace < 0:
		return bracket
	case bracket < 0:
		return brace
	case brace < bracket:
		return brace
	default:
		return bracket
	}
}
