package extract

import "testing"

func TestJSONStripsFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"siteName\":\"Acme\"}\n```"
	if got := JSON(raw); got != `{"siteName":"Acme"}` {
		t.Fatalf("JSON(%q) = %q", raw, got)
	}
}

func TestJSONStripsBareFence(t *testing.T) {
	t.Parallel()

	raw := "```\n[1, 2, 3]\n```"
	if got := JSON(raw); got != "[1, 2, 3]" {
		t.Fatalf("got %q", got)
	}
}

func TestJSONIgnoresSurroundingProse(t *testing.T) {
	t.Parallel()

	raw := "Sure! Here is your site:\n{\"a\": {\"b\": 1}}\nLet me know if you need anything else."
	if got := JSON(raw); got != `{"a": {"b": 1}}` {
		t.Fatalf("got %q", got)
	}
}

func TestJSONBracesInsideStringsDoNotAffectDepth(t *testing.T) {
	t.Parallel()

	raw := `{"headline": "curly } brace and ] bracket", "x": 1} trailing`
	want := `{"headline": "curly } brace and ] bracket", "x": 1}`
	if got := JSON(raw); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONHonorsEscapedQuotes(t *testing.T) {
	t.Parallel()

	raw := `{"quote": "she said \"}\" loudly"} rest`
	want := `{"quote": "she said \"}\" loudly"}`
	if got := JSON(raw); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONNormalizesSmartQuotes(t *testing.T) {
	t.Parallel()

	raw := "{“siteName”: “Acme”}"
	if got := JSON(raw); got != `{"siteName": "Acme"}` {
		t.Fatalf("got %q", got)
	}
}

func TestJSONArrayBeforeObject(t *testing.T) {
	t.Parallel()

	raw := `[{"a":1}] {"b":2}`
	if got := JSON(raw); got != `[{"a":1}]` {
		t.Fatalf("got %q", got)
	}
}

func TestJSONUnbalancedReturnsRemainder(t *testing.T) {
	t.Parallel()

	raw := `prefix {"a": [1, 2`
	if got := JSON(raw); got != `{"a": [1, 2` {
		t.Fatalf("got %q", got)
	}
}

func TestJSONNoOpenerReturnsNormalizedText(t *testing.T) {
	t.Parallel()

	raw := "no json here at all"
	if got := JSON(raw); got != raw {
		t.Fatalf("got %q", got)
	}
}
