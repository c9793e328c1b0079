package format

import (
	"regexp"
	"strings"
)

var (
	typeMismatchPattern = regexp.MustCompile(`(?i)expected:?\s+[^,]+,\s*(received|given):?\s+\S+`)
	tooShortPattern     = regexp.MustCompile(`(?i)must contain at least \d+ character\(s\)|string length must be greater than or equal to \d+`)
)

// SimplifyMessage rewrites common technical phrasings into generic,
// user-safe ones. Unmatched messages are returned unchanged.
func SimplifyMessage(msg string) string {
	switch {
	case typeMismatchPattern.MatchString(msg):
		return "Invalid value type"
	case tooShortPattern.MatchString(msg):
		return "Value is too short"
	case strings.Contains(strings.ToLower(msg), "invalid"):
		return "Invalid value"
	default:
		return msg
	}
}
