package sozdik

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
)

var (
	absoluteURLRe    = regexp.MustCompile(`^https?://`)
	escapedOrdinalRe = regexp.MustCompile(`(\d+)\\\.`)
	straySpanRe      = regexp.MustCompile(`</?span>`)
)

// markupToMarkdown converts the dictionary backend's HTML payload into the
// lightweight markdown dialect the messaging platforms render. Abbreviation
// markers become emphasis, relative sozdik.kz links are rewritten to
// absolute canonical URLs with their titles preserved.
func markupToMarkdown(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, node := range doc.Find("body").Nodes {
		renderChildren(&sb, node)
	}

	text := strings.TrimSpace(sb.String())
	text = escapedOrdinalRe.ReplaceAllString(text, "$1.")
	text = straySpanRe.ReplaceAllString(text, "")

	return text, nil
}

func renderNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		renderElement(sb, n)
	}
}

func renderElement(sb *strings.Builder, n *html.Node) {
	switch n.Data {
	case "abbr", "em", "i":
		sb.WriteString("_")
		renderChildren(sb, n)
		sb.WriteString("_")
	case "strong", "b":
		sb.WriteString("**")
		renderChildren(sb, n)
		sb.WriteString("**")
	case "a":
		href := attrValue(n, "href")
		if href == "" || absoluteURLRe.MatchString(href) {
			renderChildren(sb, n)
			return
		}
		sb.WriteString("[")
		renderChildren(sb, n)
		sb.WriteString("](")
		sb.WriteString(constants.SozdikAPIConfig.SiteBaseURL + href)
		if title := attrValue(n, "title"); title != "" {
			sb.WriteString(` "` + title + `"`)
		}
		sb.WriteString(")")
	case "br":
		sb.WriteString("\n")
	case "p", "div", "li", "tr":
		renderChildren(sb, n)
		sb.WriteString("\n")
	case "script", "style":
		// not renderable
	default:
		renderChildren(sb, n)
	}
}

func renderChildren(sb *strings.Builder, n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderNode(sb, child)
	}
}

func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
