// Package extraction turns opaque import formats (HTML exports, PDF resumes)
// into CV data, using text recovery plus LLM-backed structuring.
package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// HTMLToText extracts the visible text of an HTML document. Script, style,
// and other non-content elements are dropped; block elements are separated by
// newlines so downstream prompts keep the section structure.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, iframe, template").Remove()

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, td, dt, dd").Each(func(_ int, s *goquery.Selection) {
		text := collapseSpaces(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n"), nil
	}

	// Fall back to whole-body text for markup without block elements.
	body := collapseSpaces(doc.Find("body").Text())
	if body != "" {
		return body, nil
	}
	return collapseSpaces(doc.Text()), nil
}

func collapseSpaces(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
