package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText parses HTML content and returns the visible text. Segmentation
// and field extraction operate on this plain text, never on markup.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return NodeText(doc), nil
}

// NodeText returns the visible text under a parsed HTML node, skipping
// script, style, noscript and iframe subtrees.
func NodeText(root *html.Node) string {
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

	walk(root)
	return buf.String()
}

// collapseWhitespace reduces all whitespace runs to single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
