package types

// Theme selects the color palette used by the exporter.
type Theme string

const (
	ThemeGreen Theme = "green"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is applied whenever the model omits the theme or produces a
// value outside the accepted set.
const DefaultTheme = ThemeGreen

// ValidTheme reports whether t is one of the accepted palettes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeGreen, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Section type tags. The set is closed; validation rejects anything else.
const (
	SectionHero        = "hero"
	SectionFeatures    = "features"
	SectionTestimonial = "testimonial"
	SectionCTA         = "cta"
)

// FeatureItem is one card inside a features section.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Section is one content block on a page. Type discriminates which of the
// remaining fields are meaningful:
//
//	hero        -> Headline (required), Subheadline, CTALabel
//	features    -> Title, Items (required, non-empty)
//	testimonial -> Quote, Author (both required)
//	cta         -> Headline (required), CTALabel
type Section struct {
	Type        string        `json:"type"`
	Headline    string        `json:"headline,omitempty"`
	Subheadline string        `json:"subheadline,omitempty"`
	CTALabel    string        `json:"ctaLabel,omitempty"`
	Title       string        `json:"title,omitempty"`
	Items       []FeatureItem `json:"items,omitempty"`
	Quote       string        `json:"quote,omitempty"`
	Author      string        `json:"author,omitempty"`
}

// Page is one route within a generated site. Slug is lowercase kebab-case
// and unique within its project.
type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Project is the canonical in-memory representation of a generated site.
// It is produced exactly once by validation and treated as immutable
// afterwards; the exporter never mutates it.
type Project struct {
	SiteName string `json:"siteName"`
	Theme    Theme  `json:"theme"`
	Pages    []Page `json:"pages"`
}

// GenerationKind tags what the caller intends to do with the result.
type GenerationKind string

const (
	KindPreview   GenerationKind = "preview"
	KindFullstack GenerationKind = "fullstack"
	KindMultiPage GenerationKind = "multi-page"
)

// GenerationRequest carries one user-visible generation attempt through the
// orchestrator. Immutable once issued.
type GenerationRequest struct {
	Prompt          string
	Kind            GenerationKind
	Temperature     float64
	MaxOutputTokens int
}
