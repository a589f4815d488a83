// Package schema validates parsed model output against the accepted wire
// shapes and normalizes the result into the canonical Project form.
//
// Two shapes are accepted, in order: the multi-page Project shape
// ({siteName, theme?, pages}) and the legacy single-page shape
// ({title, theme?, sections}). Legacy results are wrapped into a one-page
// Project with slug "index". The multi-page schema is authoritative: when
// both fail, the error carries its field-level diagnostics.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"site_ai_server/internal/types"
	"site_ai_server/internal/utils"
)

// ValidationError aggregates field-level diagnostics from the multi-page
// schema pass.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "project validation failed"
	}
	return "project validation failed: " + strings.Join(e.Issues, "; ")
}

// Diagnostic returns the issue list as one string, suitable for inclusion
// in a repair prompt.
func (e *ValidationError) Diagnostic() string {
	return strings.Join(e.Issues, "; ")
}

type multiPageWire struct {
	SiteName string     `json:"siteName"`
	Theme    string     `json:"theme"`
	Pages    []pageWire `json:"pages"`
}

type pageWire struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Sections []types.Section `json:"sections"`
}

type legacyWire struct {
	Title    string          `json:"title"`
	Theme    string          `json:"theme"`
	Sections []types.Section `json:"sections"`
}

// Validate normalizes a parsed value into a canonical Project. Unknown
// fields anywhere are ignored; required fields and section type tags are
// enforced.
func Validate(raw json.RawMessage) (*types.Project, error) {
	project, multiErr := validateMultiPage(raw)
	if multiErr == nil {
		return project, nil
	}

	if project, legacyErr := validateLegacy(raw); legacyErr == nil {
		return project, nil
	}

	// Multi-page diagnostics win; legacy is a compatibility shim only.
	return nil, multiErr
}

func validateMultiPage(raw json.RawMessage) (*types.Project, error) {
	var wire multiPageWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &ValidationError{Issues: []string{"root: expected a JSON object: " + err.Error()}}
	}

	var issues []string
	if wire.SiteName == "" {
		issues = append(issues, "siteName: required")
	}
	if len(wire.Pages) == 0 {
		issues = append(issues, "pages: at least one page is required")
	}

	seen := make(map[string]bool, len(wire.Pages))
	pages := make([]types.Page, 0, len(wire.Pages))
	for i, p := range wire.Pages {
		path := fmt.Sprintf("pages[%d]", i)
		slug := normalizeSlug(p.Slug, p.Title)
		switch {
		case slug == "":
			issues = append(issues, path+".slug: required (no usable slug or title)")
		case seen[slug]:
			issues = append(issues, fmt.Sprintf("%s.slug: duplicate slug %q", path, slug))
		default:
			seen[slug] = true
		}
		if p.Title == "" {
			issues = append(issues, path+".title: required")
		}
		issues = append(issues, checkSections(path, p.Sections)...)
		pages = append(pages, types.Page{Slug: slug, Title: p.Title, Sections: p.Sections})
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &types.Project{
		SiteName: wire.SiteName,
		Theme:    normalizeTheme(wire.Theme),
		Pages:    pages,
	}, nil
}

func validateLegacy(raw json.RawMessage) (*types.Project, error) {
	var wire legacyWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &ValidationError{Issues: []string{"root: expected a JSON object: " + err.Error()}}
	}

	var issues []string
	if wire.Title == "" {
		issues = append(issues, "title: required")
	}
	issues = append(issues, checkSections("", wire.Sections)...)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	return &types.Project{
		SiteName: wire.Title,
		Theme:    normalizeTheme(wire.Theme),
		Pages: []types.Page{{
			Slug:     "index",
			Title:    wire.Title,
			Sections: wire.Sections,
		}},
	}, nil
}

func checkSections(path string, sections []types.Section) []string {
	prefix := "sections"
	if path != "" {
		prefix = path + ".sections"
	}
	if len(sections) == 0 {
		return []string{prefix + ": at least one section is required"}
	}
	var issues []string
	for i, s := range sections {
		issues = append(issues, checkSection(fmt.Sprintf("%s[%d]", prefix, i), s)...)
	}
	return issues
}

func checkSection(path string, s types.Section) []string {
	var issues []string
	switch s.Type {
	case types.SectionHero, types.SectionCTA:
		if s.Headline == "" {
			issues = append(issues, path+".headline: required")
		}
	case types.SectionFeatures:
		if len(s.Items) == 0 {
			issues = append(issues, path+".items: at least one item is required")
		}
		for i, item := range s.Items {
			if item.Title == "" {
				issues = append(issues, fmt.Sprintf("%s.items[%d].title: required", path, i))
			}
			if item.Description == "" {
				issues = append(issues, fmt.Sprintf("%s.items[%d].description: required", path, i))
			}
		}
	case types.SectionTestimonial:
		if s.Quote == "" {
			issues = append(issues, path+".quote: required")
		}
		if s.Author == "" {
			issues = append(issues, path+".author: required")
		}
	case "":
		issues = append(issues, path+".type: required")
	default:
		issues = append(issues, fmt.Sprintf("%s.type: unrecognized section type %q", path, s.Type))
	}
	return issues
}

// normalizeSlug coerces model-provided slugs into lowercase kebab-case,
// falling back to the page title when the slug itself yields nothing.
func normalizeSlug(slug, title string) string {
	if utils.ValidSlug(slug) {
		return slug
	}
	if s := utils.Slugify(slug); s != "" {
		return s
	}
	return utils.Slugify(title)
}

func normalizeTheme(theme string) types.Theme {
	if t := types.Theme(theme); types.ValidTheme(t) {
		return t
	}
	return types.DefaultTheme
}

// CheckProject re-validates a canonical Project supplied by a caller, for
// use at the export boundary where malformed input indicates a contract
// violation rather than a model failure.
func CheckProject(p *types.Project) error {
	var issues []string
	if p == nil {
		return &ValidationError{Issues: []string{"project: required"}}
	}
	if p.SiteName == "" {
		issues = append(issues, "siteName: required")
	}
	if !types.ValidTheme(p.Theme) {
		issues = append(issues, fmt.Sprintf("theme: unrecognized theme %q", p.Theme))
	}
	if len(p.Pages) == 0 {
		issues = append(issues, "pages: at least one page is required")
	}
	seen := make(map[string]bool, len(p.Pages))
	for i, page := range p.Pages {
		path := fmt.Sprintf("pages[%d]", i)
		switch {
		case !utils.ValidSlug(page.Slug):
			issues = append(issues, fmt.Sprintf("%s.slug: not lowercase kebab-case: %q", path, page.Slug))
		case seen[page.Slug]:
			issues = append(issues, fmt.Sprintf("%s.slug: duplicate slug %q", path, page.Slug))
		default:
			seen[page.Slug] = true
		}
		if page.Title == "" {
			issues = append(issues, path+".title: required")
		}
		issues = append(issues, checkSections(path, page.Sections)...)
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
