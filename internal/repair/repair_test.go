package repair

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStrictSucceeds(t *testing.T) {
	t.Parallel()

	raw, err := Parse(`{"siteName": "Acme", "pages": []}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if v["siteName"] != "Acme" {
		t.Fatalf("siteName = %v", v["siteName"])
	}
}

func TestParseRecoversTrailingCommas(t *testing.T) {
	t.Parallel()

	raw, err := Parse(`{"pages": [{"slug": "index",},],}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
}

func TestParseRecoversJSON5(t *testing.T) {
	t.Parallel()

	// Unquoted and single-quoted keys plus a comment.
	raw, err := Parse(`{siteName: 'Acme', /* theme */ theme: 'dark'}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if v["theme"] != "dark" {
		t.Fatalf("theme = %v", v["theme"])
	}
}

func TestParseUnrecoverable(t *testing.T) {
	t.Parallel()

	_, err := Parse("this is not json at all")
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("err = %v, want ErrUnrecoverable", err)
	}
}

func TestStripTrailingCommas(t *testing.T) {
	t.Parallel()

	in := `{"a": [1, 2, ], "b": {"c": 3, }, }`
	want := `{"a": [1, 2 ], "b": {"c": 3 } }`
	if got := StripTrailingCommas(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStripTrailingCommasIdempotent(t *testing.T) {
	t.Parallel()

	in := `{"a": [1, 2,], "s": "a comma, before ]",}`
	once := StripTrailingCommas(in)
	twice := StripTrailingCommas(once)
	if once != twice {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}

func TestStripTrailingCommasLeavesStringsAlone(t *testing.T) {
	t.Parallel()

	in := `{"s": "trailing, }"}`
	if got := StripTrailingCommas(in); got != in {
		t.Fatalf("string content modified: %q", got)
	}
}
