package utils

import "github.com/microcosm-cc/bluemonday"

// User-generated-content policy: basic formatting survives, scripts and
// event handlers do not.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips dangerous HTML from user-submitted text. Post, comment and
// reply bodies pass through here before they are stored.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
