// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	return text
}

var (
	headingMarker  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldMarker     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarker   = regexp.MustCompile(`(?:^|[^*])\*([^*\n]+)\*`)
	underMarker    = regexp.MustCompile(`__([^_]+)__`)
	inlineCode     = regexp.MustCompile("`([^`\n]+)`")
	bulletAsterisk = regexp.MustCompile(`(?m)^\s*\*\s+`)
)

// StripMarkdown removes residual markdown formatting from a plain-text model
// response: code fences, heading markers, bold/italic emphasis, and inline
// code spans. Rewrites are inserted into plain text fields, so any formatting
// the model adds is noise.
func StripMarkdown(text string) string {
	text = CleanJSONBlock(text)
	text = headingMarker.ReplaceAllString(text, "")
	text = bulletAsterisk.ReplaceAllString(text, "- ")
	text = boldMarker.ReplaceAllString(text, "$1")
	text = underMarker.ReplaceAllString(text, "$1")
	text = italicMarker.ReplaceAllStringFunc(text, func(m string) string {
		inner := italicMarker.FindStringSubmatch(m)
		if len(inner) < 2 {
			return m
		}
		prefix := ""
		if m[0] != '*' {
			prefix = string(m[0])
		}
		return prefix + inner[1]
	})
	text = inlineCode.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
