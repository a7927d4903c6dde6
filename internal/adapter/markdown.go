package adapter

import (
	"regexp"
	"strings"
)

var markdownLinkRe = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

var markdownMarkerReplacer = strings.NewReplacer(
	"**", "",
	"__", "",
	"*", "",
	"_", "",
	"`", "",
)

// StripMarkdown reduces the markdown dialect produced by the lookup client
// to plain text: links collapse to their label, emphasis markers vanish.
func StripMarkdown(text string) string {
	text = markdownLinkRe.ReplaceAllString(text, "$1")
	return markdownMarkerReplacer.Replace(text)
}
