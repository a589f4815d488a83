package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"site_ai_server/internal/types"
)

func mustValidate(t *testing.T, text string) *types.Project {
	t.Helper()
	p, err := Validate(json.RawMessage(text))
	if err != nil {
		t.Fatalf("Validate(%s): %v", text, err)
	}
	return p
}

func TestValidateMultiPage(t *testing.T) {
	t.Parallel()

	p := mustValidate(t, `{
		"siteName": "Acme",
		"theme": "dark",
		"pages": [
			{"slug": "index", "title": "Home", "sections": [
				{"type": "hero", "headline": "Welcome"}
			]},
			{"slug": "about", "title": "About", "sections": [
				{"type": "testimonial", "quote": "Great", "author": "Ada"}
			]}
		]
	}`)
	if p.SiteName != "Acme" || p.Theme != types.ThemeDark || len(p.Pages) != 2 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if p.Pages[1].Slug != "about" {
		t.Fatalf("slug = %q", p.Pages[1].Slug)
	}
}

func TestValidateLegacyNormalization(t *testing.T) {
	t.Parallel()

	p := mustValidate(t, `{"title":"T","sections":[{"type":"hero","headline":"H"}]}`)
	if len(p.Pages) != 1 {
		t.Fatalf("page count = %d, want 1", len(p.Pages))
	}
	if p.Pages[0].Slug != "index" {
		t.Fatalf("slug = %q, want index", p.Pages[0].Slug)
	}
	if p.Pages[0].Title != "T" || p.SiteName != "T" {
		t.Fatalf("title not copied: %+v", p)
	}
	if p.Theme != types.ThemeGreen {
		t.Fatalf("theme = %q, want green default", p.Theme)
	}
	if len(p.Pages[0].Sections) != 1 || p.Pages[0].Sections[0].Type != types.SectionHero {
		t.Fatalf("sections = %+v", p.Pages[0].Sections)
	}
}

func TestValidateRejectsEmptySections(t *testing.T) {
	t.Parallel()

	if _, err := Validate(json.RawMessage(`{"title":"T","sections":[]}`)); err == nil {
		t.Fatal("legacy empty sections accepted")
	}
	if _, err := Validate(json.RawMessage(`{"siteName":"S","pages":[{"slug":"index","title":"T","sections":[]}]}`)); err == nil {
		t.Fatal("multi-page empty sections accepted")
	}
}

func TestValidateRejectsEmptyPages(t *testing.T) {
	t.Parallel()

	if _, err := Validate(json.RawMessage(`{"siteName":"S","pages":[]}`)); err == nil {
		t.Fatal("empty pages accepted")
	}
}

func TestValidateRejectsUnknownSectionType(t *testing.T) {
	t.Parallel()

	_, err := Validate(json.RawMessage(`{
		"siteName": "S",
		"pages": [{"slug": "index", "title": "T", "sections": [{"type": "banner", "headline": "X"}]}]
	}`))
	if err == nil {
		t.Fatal("unknown section type accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	if !strings.Contains(verr.Diagnostic(), `"banner"`) {
		t.Fatalf("diagnostic missing offending tag: %s", verr.Diagnostic())
	}
}

func TestValidateIgnoresExtraFields(t *testing.T) {
	t.Parallel()

	p := mustValidate(t, `{
		"siteName": "S",
		"vibe": "chill",
		"pages": [{"slug": "index", "title": "T", "extra": true, "sections": [
			{"type": "hero", "headline": "H", "animation": "fade"}
		]}]
	}`)
	if p.Pages[0].Sections[0].Headline != "H" {
		t.Fatalf("headline = %q", p.Pages[0].Sections[0].Headline)
	}
}

func TestValidateNormalizesSlugs(t *testing.T) {
	t.Parallel()

	p := mustValidate(t, `{
		"siteName": "S",
		"pages": [{"slug": "About Us!", "title": "About", "sections": [
			{"type": "cta", "headline": "Go"}
		]}]
	}`)
	if p.Pages[0].Slug != "about-us" {
		t.Fatalf("slug = %q, want about-us", p.Pages[0].Slug)
	}
}

func TestValidateRejectsDuplicateSlugs(t *testing.T) {
	t.Parallel()

	_, err := Validate(json.RawMessage(`{
		"siteName": "S",
		"pages": [
			{"slug": "a", "title": "A", "sections": [{"type": "hero", "headline": "H"}]},
			{"slug": "a", "title": "B", "sections": [{"type": "hero", "headline": "H"}]}
		]
	}`))
	if err == nil {
		t.Fatal("duplicate slugs accepted")
	}
}

func TestValidateDefaultsInvalidTheme(t *testing.T) {
	t.Parallel()

	p := mustValidate(t, `{
		"siteName": "S",
		"theme": "neon",
		"pages": [{"slug": "index", "title": "T", "sections": [{"type": "hero", "headline": "H"}]}]
	}`)
	if p.Theme != types.ThemeGreen {
		t.Fatalf("theme = %q, want green default", p.Theme)
	}
}

func TestValidateMultiPageDiagnosticsWinOverLegacy(t *testing.T) {
	t.Parallel()

	// Fails both schemas; the error must carry multi-page field paths.
	_, err := Validate(json.RawMessage(`{"siteName": "S", "pages": [{"slug": "index", "title": "T", "sections": []}]}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(verr.Diagnostic(), "pages[0].sections") {
		t.Fatalf("diagnostic = %s", verr.Diagnostic())
	}
}

func TestValidateRoundTrip(t *testing.T) {
	t.Parallel()

	original := &types.Project{
		SiteName: "Acme",
		Theme:    types.ThemeLight,
		Pages: []types.Page{{
			Slug:  "index",
			Title: "Home",
			Sections: []types.Section{
				{Type: types.SectionHero, Headline: "Hi", Subheadline: "Sub", CTALabel: "Go"},
				{Type: types.SectionFeatures, Title: "Why", Items: []types.FeatureItem{
					{Title: "Fast", Description: "Quick", Icon: "*"},
				}},
			},
		}},
	}
	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, _ := json.Marshal(p)
	if string(got) != string(raw) {
		t.Fatalf("round trip mismatch:\n%s\n%s", raw, got)
	}
}

func TestCheckProject(t *testing.T) {
	t.Parallel()

	good := &types.Project{
		SiteName: "S",
		Theme:    types.ThemeGreen,
		Pages: []types.Page{{Slug: "index", Title: "T", Sections: []types.Section{
			{Type: types.SectionHero, Headline: "H"},
		}}},
	}
	if err := CheckProject(good); err != nil {
		t.Fatalf("CheckProject(good): %v", err)
	}

	bad := &types.Project{
		SiteName: "S",
		Theme:    "neon",
		Pages:    []types.Page{{Slug: "Bad Slug", Title: "T"}},
	}
	if err := CheckProject(bad); err == nil {
		t.Fatal("CheckProject accepted invalid project")
	}
}
