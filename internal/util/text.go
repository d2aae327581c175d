package util

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText strips residual markup from stored article content,
// returning visible text only. Plain text passes through with
// whitespace normalized.
func CleanText(content string) string {
	if !strings.Contains(content, "<") {
		return normalizeWhitespace(content)
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return normalizeWhitespace(content)
	}

	return normalizeWhitespace(visibleText(doc))
}

// visibleText extracts text nodes from HTML, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n bytes without splitting the final rune
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	// Back off any partial UTF-8 sequence at the boundary
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut
}
