// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Chat text is rendered as plain text by every client, so all markup is
// stripped. script/style bodies are dropped with their tags.
var strict = bluemonday.StrictPolicy()

// PlainText strips every tag from s and returns readable text with
// entities decoded and surrounding whitespace trimmed.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
