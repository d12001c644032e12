package synth

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	relevantSelector = "h1, h2, h3, h4, h5, h6, p, a, button, form, input, select, textarea, label"
	maxTextRunes     = 80
)

// attributes worth showing to the model, in output order
var keptAttributes = []string{
	"id", "name", "type", "role", "aria-label", "data-testid", "href",
	"placeholder", "for", "action", "method", "title", "value",
}

// Snapshot reduces a page to its headings, paragraphs and interactive elements,
// one compact tag per line and at most limit lines. Pages without any of those
// fall back to the raw HTML cut to maxBytes.
func Snapshot(page string, limit, maxBytes int) string {
	lines, err := extractElements(page, limit)
	if err != nil || len(lines) == 0 {
		return truncateUTF8(page, maxBytes)
	}
	return truncateUTF8(strings.Join(lines, "\n"), maxBytes)
}

func extractElements(page string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	lines := make([]string, 0, limit)
	doc.Find(relevantSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if line, ok := describe(sel); ok {
			lines = append(lines, line)
		}
		return len(lines) < limit
	})
	return lines, nil
}

func describe(sel *goquery.Selection) (string, bool) {
	tag := goquery.NodeName(sel)
	if tag == "input" && strings.EqualFold(sel.AttrOr("type", ""), "hidden") {
		return "", false
	}

	var b strings.Builder
	b.WriteString("<" + tag)
	hasAttrs := false
	for _, name := range keptAttributes {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			fmt.Fprintf(&b, " %s=\"%s\"", name, html.EscapeString(shorten(v)))
			hasAttrs = true
		}
	}
	b.WriteString(">")

	switch tag {
	case "form", "input":
		return b.String(), true
	}

	text := shorten(sel.Text())
	if text == "" && !hasAttrs {
		return "", false
	}
	b.WriteString(html.EscapeString(text))
	b.WriteString("</" + tag + ">")
	return b.String(), true
}

// shorten collapses whitespace and cuts to maxTextRunes.
func shorten(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxTextRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxTextRunes]) + "…"
}

func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
