// Package repair turns extractor output into parsed JSON through an ordered
// chain of increasingly permissive strategies.
package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/titanous/json5"
)

// ErrUnrecoverable is the terminal repair failure. Callers must not retry
// with the same input; they escalate to the remote repairer or fail.
var ErrUnrecoverable = errors.New("model output is not recoverable JSON")

// A strategy either yields canonical JSON bytes for the input or signals
// "try next" with an error. Each one is pure and independently testable.
type strategy func(text string) (json.RawMessage, error)

var strategies = []strategy{
	parseStrict,
	parseWithoutTrailingCommas,
	parseJSON5,
}

// Parse runs the strategy chain over text and returns the first successful
// result as canonical JSON bytes.
func Parse(text string) (json.RawMessage, error) {
	var lastErr error
	for _, s := range strategies {
		raw, err := s(text)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrUnrecoverable, lastErr)
}

func parseStrict(text string) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

func parseWithoutTrailingCommas(text string) (json.RawMessage, error) {
	return parseStrict(StripTrailingCommas(text))
}

func parseJSON5(text string) (json.RawMessage, error) {
	var v any
	if err := json5.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	// Re-encode so downstream schema decoding sees plain JSON.
	return json.Marshal(v)
}

// StripTrailingCommas removes commas that sit immediately before a closing
// brace or bracket, ignoring anything inside string literals. The operation
// is idempotent.
func StripTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			b.WriteByte(c)
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
		case ',':
			if closerFollows(text, i+1) {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// closerFollows reports whether the next non-whitespace byte at or after
// position i closes an object or array.
func closerFollows(text string, i int) bool {
	for ; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
