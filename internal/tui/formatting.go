package tui

import (
	"regexp"
	"strings"
)

// markdownEscaper escapes characters glamour would otherwise treat as markup.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"~", `\~`,
)

// blockMarker matches a leading list item, ordered list item or thematic
// break marker.
var blockMarker = regexp.MustCompile(`^(?:[-+=]|\d+[.)])`)

// normalizeFact collapses runs of whitespace, including newlines, so a fact
// wraps as a single paragraph.
func normalizeFact(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// escapeMarkdown makes text render literally through glamour.
func escapeMarkdown(text string) string {
	text = markdownEscaper.Replace(text)
	if loc := blockMarker.FindStringIndex(text); loc != nil {
		end := loc[1]
		return text[:end-1] + `\` + text[end-1:]
	}
	return text
}
