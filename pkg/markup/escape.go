// Package markup guards text that ends up inside rendered HTML.
//
// Anything that originates from backend data (service names, usernames,
// emails) must pass through Escape before being interpolated into option
// labels or form values.
package markup

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five markup-significant characters with their HTML
// entities. A string containing none of them is returned unchanged, so the
// transform is safe to apply to already-clean text.
func Escape(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	return escaper.Replace(s)
}
