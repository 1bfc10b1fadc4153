// Package textblock segments free-form CV text into renderable blocks shared
// by every rendering surface, so the on-screen preview and the PDF export
// never visually diverge.
package textblock

import (
	"regexp"
	"strings"
)

// Kind distinguishes the two block variants.
type Kind string

// Block kinds produced by Parse.
const (
	Paragraph Kind = "paragraph"
	ListItem  Kind = "listItem"
)

// Block is one renderable unit of text: a paragraph or a list item.
type Block struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

var (
	bulletMarker = regexp.MustCompile(`^[-*•◦▪▫]\s+`)
	numberMarker = regexp.MustCompile(`^\d+[.)]\s+`)
	// marker-only lines: a bullet or number with nothing after it
	bareBullet = regexp.MustCompile(`^[-*•◦▪▫]\s*$`)
	bareNumber = regexp.MustCompile(`^\d+[.)]\s*$`)
)

// Parse segments text into an ordered block sequence. Paragraphs spanning
// multiple physical lines are joined with single spaces; blank lines separate
// paragraphs; bullet and numbered markers each start a list item. Empty input
// yields an empty sequence. If no block could be produced from non-empty
// input, the original text is returned as a single paragraph so no content is
// silently dropped.
func Parse(text string) []Block {
	if text == "" {
		return []Block{}
	}

	blocks := []Block{}
	var pending []string

	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, Block{Kind: Paragraph, Content: strings.Join(pending, " ")})
			pending = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
		case bulletMarker.MatchString(line):
			flush()
			blocks = append(blocks, Block{Kind: ListItem, Content: bulletMarker.ReplaceAllString(line, "")})
		case numberMarker.MatchString(line):
			flush()
			blocks = append(blocks, Block{Kind: ListItem, Content: numberMarker.ReplaceAllString(line, "")})
		case bareBullet.MatchString(line) || bareNumber.MatchString(line):
			flush()
			blocks = append(blocks, Block{Kind: ListItem, Content: ""})
		default:
			pending = append(pending, line)
		}
	}
	flush()

	if len(blocks) == 0 && strings.TrimSpace(text) != "" {
		return []Block{{Kind: Paragraph, Content: text}}
	}
	return blocks
}
