package prompts

import "fmt"

// SchemaDescription is the compact structural description of the canonical
// Project shape. It is embedded in every prompt that asks the model for
// site JSON, and reused verbatim by the repair prompt.
const SchemaDescription = `{
  "siteName": string,
  "theme": "green" | "light" | "dark",
  "pages": [
    {
      "slug": string (lowercase kebab-case, unique, e.g. "index", "about"),
      "title": string,
      "sections": [
        { "type": "hero", "headline": string, "subheadline"?: string, "ctaLabel"?: string }
        | { "type": "features", "title"?: string, "items": [ { "title": string, "description": string, "icon"?: string } ] }
        | { "type": "testimonial", "quote": string, "author": string }
        | { "type": "cta", "headline": string, "ctaLabel"?: string }
      ]
    }
  ]
}`

// SiteGenerationSystemPrompt instructs the model to answer with Project
// JSON only. The formatting constraints are advisory; the recovery pipeline
// never assumes the model obeyed them.
func SiteGenerationSystemPrompt(multiPage bool) string {
	pageRule := "Generate exactly one page with slug \"index\"."
	if multiPage {
		pageRule = "Generate 2-5 pages. The landing page must use slug \"index\"."
	}
	return fmt.Sprintf(`You are a website generator AI. Given a user's description of the site they want, respond with a single JSON object describing the site.

The JSON must conform exactly to this shape:

%s

Rules:
- %s
- Every page needs at least one section; start the landing page with a hero.
- Use only the four section types listed above.
- Slugs must be lowercase kebab-case.
- Respond with raw JSON only: no markdown fences, no commentary, no trailing commas.`, SchemaDescription, pageRule)
}

// RepairPrompt asks the model to coerce earlier, unparseable output into the
// target shape. Sent with deterministic decoding and a reduced output budget.
func RepairPrompt(badText, diagnostic string) string {
	context := ""
	if diagnostic != "" {
		context = fmt.Sprintf("\nThe previous attempt failed validation: %s\n", diagnostic)
	}
	return fmt.Sprintf(`The following text was supposed to be a JSON object with this shape:

%s
%s
Convert the text below into valid JSON conforming exactly to that shape. Infer sensible defaults for missing required fields and discard unrecognized fields. Respond with the JSON only, no markdown fences and no commentary.

---
%s
---`, SchemaDescription, context, badText)
}
