package format

import (
	"fmt"
	"strings"

	provErrors "mercator-hq/provconf/pkg/errors"
)

// CreateUserMessage summarizes errs in one sentence for end users.
func CreateUserMessage(errs []*provErrors.ValidationError) string {
	switch len(errs) {
	case 0:
		return "Validation successful"
	case 1:
		return errs[0].Message
	}

	ids := make([]string, 0, len(errs))
	for _, e := range errs {
		ids = append(ids, summaryName(e))
	}
	return fmt.Sprintf("Configuration has %d validation errors. Please check the following fields: %s",
		len(errs), strings.Join(ids, ", "))
}

// summaryName names e in the user summary: its field id, else its location,
// else "document" for root-level errors.
func summaryName(e *provErrors.ValidationError) string {
	switch {
	case e.FieldID != "":
		return e.FieldID
	case e.Location() != "":
		return e.Location()
	default:
		return "document"
	}
}

// CreateDeveloperMessage lists every error on its own line with its location,
// position and expected type.
func CreateDeveloperMessage(errs []*provErrors.ValidationError) string {
	if len(errs) == 0 {
		return "Validation successful"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Validation failed with %d error(s):\n", len(errs))
	for _, e := range errs {
		sb.WriteString("  ")
		if loc := e.Location(); loc != "" {
			sb.WriteString(loc)
			sb.WriteString(": ")
		}
		sb.WriteString(e.Message)
		if e.Line > 0 {
			fmt.Fprintf(&sb, " (line %d, column %d)", e.Line, e.Column)
		}
		sb.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&sb, "    Expected: %s\n", e.Expected)
		}
	}
	return sb.String()
}
