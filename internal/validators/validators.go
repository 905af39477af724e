package validators

import "strings"

// NormalizeEmail is applied before every email is stored or looked up.
// Format is checked by the request binding tags.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
