// Package export renders a canonical Project into downloadable static-site
// artifacts. Every function here is a pure function of its input: exporting
// the same project twice reproduces the same bytes.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"site_ai_server/internal/types"
	"site_ai_server/internal/utils"
)

const scriptJS = `document.addEventListener("DOMContentLoaded", function () {
  var sections = document.querySelectorAll("main section");
  if (!("IntersectionObserver" in window)) {
    return;
  }
  var observer = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (entry.isIntersecting) {
        entry.target.style.opacity = "1";
        entry.target.style.transform = "none";
        observer.unobserve(entry.target);
      }
    });
  }, { threshold: 0.1 });
  sections.forEach(function (section) {
    section.style.opacity = "0";
    section.style.transform = "translateY(12px)";
    section.style.transition = "opacity 0.5s ease, transform 0.5s ease";
    observer.observe(section);
  });
});
`

// FileName derives the download filename for a single-page export from the
// page title. Titles that slugify to nothing fall back to "site".
func FileName(title string) string {
	slug := utils.Slugify(title)
	if slug == "" {
		slug = "site"
	}
	return slug + ".html"
}

// Bundle assembles the multi-file project layout: one HTML file per page
// (index.html for the "index" slug), a shared stylesheet and script, the
// canonical project manifest, and a README. The map is built fresh on every
// call and all paths are forward-slash relative.
func Bundle(p *types.Project) (map[string]string, error) {
	files := make(map[string]string, len(p.Pages)+4)
	for _, page := range p.Pages {
		doc, err := bundlePage(p, page)
		if err != nil {
			return nil, err
		}
		files[page.Slug+".html"] = doc
	}

	files["styles.css"] = Stylesheet(p.Theme)
	files["script.js"] = scriptJS

	manifest, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal site manifest: %w", err)
	}
	files["site.json"] = string(manifest) + "\n"
	files["README.md"] = readme(p)
	return files, nil
}

// bundlePage extracts the body inner content from the standalone render and
// wraps it with links to the shared stylesheet and script.
func bundlePage(p *types.Project, page types.Page) (string, error) {
	standalone, err := RenderStandalone(p, page.Slug)
	if err != nil {
		return "", err
	}
	inner, err := bodyContent(standalone)
	if err != nil {
		return "", fmt.Errorf("page %q: %w", page.Slug, err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s | %s</title>\n", esc(page.Title), esc(p.SiteName))
	b.WriteString("<link rel=\"stylesheet\" href=\"styles.css\">\n")
	b.WriteString("<script src=\"script.js\" defer></script>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(inner)
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}

func bodyContent(doc string) (string, error) {
	start := strings.Index(doc, "<body>")
	end := strings.LastIndex(doc, "</body>")
	if start < 0 || end < 0 || end <= start {
		return "", fmt.Errorf("render produced no body element")
	}
	return strings.TrimSpace(doc[start+len("<body>") : end]), nil
}

func readme(p *types.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.SiteName)
	b.WriteString("Static site generated from a text prompt.\n\n")
	fmt.Fprintf(&b, "Theme: %s\n\n", p.Theme)
	b.WriteString("## Pages\n\n")
	for _, page := range p.Pages {
		fmt.Fprintf(&b, "- `%s.html`: %s\n", page.Slug, page.Title)
	}
	b.WriteString("\n## Files\n\n")
	b.WriteString("- `styles.css`: shared stylesheet\n")
	b.WriteString("- `script.js`: entry animations\n")
	b.WriteString("- `site.json`: machine-readable site description\n")
	return b.String()
}

// sortedPaths returns the bundle paths in stable order, for deterministic
// archiving and directory writes.
func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
