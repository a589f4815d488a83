package export

import (
	"fmt"
	"html"
	"strings"

	"site_ai_server/internal/types"
)

// esc escapes every user-supplied string before interpolation: & < > " '.
// No exceptions, attribute contexts included.
func esc(s string) string { return html.EscapeString(s) }

const baseCSS = `* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: "Inter", "Segoe UI", system-ui, sans-serif;
  background: var(--bg);
  color: var(--fg);
  line-height: 1.6;
}
main { max-width: 960px; margin: 0 auto; padding: 0 1.5rem; }
section { padding: 4rem 0; }
h1 { font-size: 2.75rem; line-height: 1.15; }
h2 { font-size: 2rem; margin-bottom: 1.5rem; }
.btn {
  display: inline-block;
  margin-top: 1.5rem;
  padding: 0.75rem 1.75rem;
  border-radius: 8px;
  background: var(--accent);
  color: var(--accent-fg);
  text-decoration: none;
  font-weight: 600;
}
.hero { position: relative; text-align: center; padding: 6rem 0; }
.hero-glow {
  position: absolute;
  inset: 0;
  background: radial-gradient(circle at 50% 0%, var(--glow), transparent 70%);
  pointer-events: none;
}
.hero p { margin-top: 1rem; font-size: 1.25rem; color: var(--muted); }
.features .grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(240px, 1fr));
  gap: 1.5rem;
}
.card {
  background: var(--card);
  border: 1px solid var(--border);
  border-radius: 12px;
  padding: 1.5rem;
}
.card .icon { font-size: 1.75rem; margin-bottom: 0.75rem; }
.card h3 { margin-bottom: 0.5rem; }
.card p { color: var(--muted); }
.testimonial { text-align: center; }
.testimonial blockquote { font-size: 1.5rem; font-style: italic; }
.testimonial cite { display: block; margin-top: 1rem; color: var(--muted); }
.cta { text-align: center; }
`

var themeVars = map[types.Theme]string{
	types.ThemeGreen: `:root {
  --bg: #f3faf5;
  --fg: #10321c;
  --accent: #16a34a;
  --accent-fg: #ffffff;
  --glow: rgba(22, 163, 74, 0.25);
  --card: #ffffff;
  --border: #d5eadc;
  --muted: #4d6d58;
}`,
	types.ThemeLight: `:root {
  --bg: #ffffff;
  --fg: #1f2933;
  --accent: #2563eb;
  --accent-fg: #ffffff;
  --glow: rgba(37, 99, 235, 0.2);
  --card: #f8fafc;
  --border: #e2e8f0;
  --muted: #52606d;
}`,
	types.ThemeDark: `:root {
  --bg: #0f172a;
  --fg: #e2e8f0;
  --accent: #38bdf8;
  --accent-fg: #0f172a;
  --glow: rgba(56, 189, 248, 0.25);
  --card: #1e293b;
  --border: #334155;
  --muted: #94a3b8;
}`,
}

// darkFallback is appended for the light theme so dark-mode readers get a
// matching palette without any script.
const darkFallback = `@media (prefers-color-scheme: dark) {
  :root {
    --bg: #0f172a;
    --fg: #e2e8f0;
    --card: #1e293b;
    --border: #334155;
    --muted: #94a3b8;
  }
}`

// Stylesheet returns the shared CSS for the given theme.
func Stylesheet(theme types.Theme) string {
	vars, ok := themeVars[theme]
	if !ok {
		vars = themeVars[types.DefaultTheme]
	}
	css := vars + "\n" + baseCSS
	if theme == types.ThemeLight {
		css += darkFallback + "\n"
	}
	return css
}

func renderSection(b *strings.Builder, s types.Section) {
	switch s.Type {
	case types.SectionHero:
		b.WriteString(`  <section class="hero">` + "\n")
		b.WriteString(`    <div class="hero-glow"></div>` + "\n")
		fmt.Fprintf(b, "    <h1>%s</h1>\n", esc(s.Headline))
		if s.Subheadline != "" {
			fmt.Fprintf(b, "    <p>%s</p>\n", esc(s.Subheadline))
		}
		if s.CTALabel != "" {
			fmt.Fprintf(b, "    <a class=\"btn\" href=\"#\">%s</a>\n", esc(s.CTALabel))
		}
		b.WriteString("  </section>\n")
	case types.SectionFeatures:
		b.WriteString(`  <section class="features">` + "\n")
		if s.Title != "" {
			fmt.Fprintf(b, "    <h2>%s</h2>\n", esc(s.Title))
		}
		b.WriteString(`    <div class="grid">` + "\n")
		for _, item := range s.Items {
			b.WriteString(`      <div class="card">` + "\n")
			if item.Icon != "" {
				fmt.Fprintf(b, "        <div class=\"icon\">%s</div>\n", esc(item.Icon))
			}
			fmt.Fprintf(b, "        <h3>%s</h3>\n", esc(item.Title))
			fmt.Fprintf(b, "        <p>%s</p>\n", esc(item.Description))
			b.WriteString("      </div>\n")
		}
		b.WriteString("    </div>\n  </section>\n")
	case types.SectionTestimonial:
		b.WriteString(`  <section class="testimonial">` + "\n")
		fmt.Fprintf(b, "    <blockquote>%s</blockquote>\n", esc(s.Quote))
		fmt.Fprintf(b, "    <cite>%s</cite>\n", esc(s.Author))
		b.WriteString("  </section>\n")
	case types.SectionCTA:
		b.WriteString(`  <section class="cta">` + "\n")
		fmt.Fprintf(b, "    <h2>%s</h2>\n", esc(s.Headline))
		if s.CTALabel != "" {
			fmt.Fprintf(b, "    <a class=\"btn\" href=\"#\">%s</a>\n", esc(s.CTALabel))
		}
		b.WriteString("  </section>\n")
	}
}

func renderBody(page types.Page) string {
	var b strings.Builder
	b.WriteString("<main>\n")
	for _, s := range page.Sections {
		renderSection(&b, s)
	}
	b.WriteString("</main>")
	return b.String()
}

// RenderStandalone renders one page of the project as a self-contained HTML
// document with the stylesheet inlined. It is a pure function of its input.
func RenderStandalone(p *types.Project, slug string) (string, error) {
	page, err := findPage(p, slug)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s | %s</title>\n", esc(page.Title), esc(p.SiteName))
	b.WriteString("<style>\n")
	b.WriteString(Stylesheet(p.Theme))
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(renderBody(*page))
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}

func findPage(p *types.Project, slug string) (*types.Page, error) {
	if slug == "" && len(p.Pages) > 0 {
		return &p.Pages[0], nil
	}
	for i := range p.Pages {
		if p.Pages[i].Slug == slug {
			return &p.Pages[i], nil
		}
	}
	return nil, fmt.Errorf("no page with slug %q", slug)
}
