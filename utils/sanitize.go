package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Blog titles, authors and usernames are plain text, so the strict policy
// removes markup entirely rather than allowing a UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips any HTML from free-text input to prevent stored XSS.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
