package validate

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// StripMarkup removes any HTML markup from free-text input so tags never
// survive into committed values or the submission payload. The sanitizer
// entity-escapes its output, so the result is unescaped back to plain text
// ("O'Brien" stays "O'Brien").
func StripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(markupPolicy.Sanitize(raw))
}
