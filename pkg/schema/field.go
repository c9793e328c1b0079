package schema

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// ValidateField checks one untyped field declaration and decodes it on
// success. The returned declaration is nil whenever issues are reported.
func ValidateField(raw any) (fields.FieldDeclaration, []RawIssue) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, []RawIssue{{
			Code:     IssueInvalidType,
			Message:  fmt.Sprintf("Invalid type. Expected: object, given: %s", jsonTypeName(raw)),
			Expected: "object",
			Received: jsonTypeName(raw),
		}}
	}

	tag, _ := obj["type"].(string)
	kind := fields.Kind(tag)
	if !kind.Valid() {
		names := make([]string, 0, len(fields.Kinds()))
		for _, k := range fields.Kinds() {
			names = append(names, string(k))
		}
		msg := fmt.Sprintf("Invalid field type %q. Expected one of %s", tag, fields.KindNames())
		if hint := errors.SuggestKind(tag, names); tag != "" && strings.HasPrefix(hint, "Did you mean") {
			msg += ". " + hint
		}
		return nil, []RawIssue{customIssue(errors.CodeInvalidConfiguration, msg, "type")}
	}

	if issues := ValidateShape(shapeForKind(kind), obj); len(issues) > 0 {
		return nil, issues
	}
	if issues := refineField(kind, obj); len(issues) > 0 {
		return nil, issues
	}

	decl, err := fields.DecodeField(obj)
	if err != nil {
		return nil, []RawIssue{customIssue(errors.CodeInvalidConfiguration, err.Error())}
	}
	return decl, nil
}

// refineField runs the checks that JSON Schema cannot express. Each check is
// independent, so several may fire for one declaration.
func refineField(kind fields.Kind, obj map[string]any) []RawIssue {
	var issues []RawIssue

	if id, _ := obj["id"].(string); !isValidIdentifier(id) {
		issues = append(issues, customIssue(
			errors.CodeInvalidConfiguration,
			fmt.Sprintf("Invalid field id %q: must start with a letter or underscore and contain only letters, digits, underscores and hyphens", id),
			"id",
		))
	}

	if kind == fields.KindCheckbox {
		return issues
	}

	if _, has := obj["defaultValue"]; has && kind == fields.KindSecureText {
		issues = append(issues, customIssue(
			errors.CodeInvalidConfiguration,
			"Secure text fields cannot declare a default value",
			"defaultValue",
		))
	}

	minLen, hasMin := intAttr(obj, "minLength")
	maxLen, hasMax := intAttr(obj, "maxLength")
	if hasMin && hasMax && minLen > maxLen {
		issues = append(issues, customIssue(
			errors.CodeInvalidConfiguration,
			fmt.Sprintf("minLength (%d) must be less than or equal to maxLength (%d)", minLen, maxLen),
			"minLength",
		))
	}

	if pattern, ok := obj["pattern"].(string); ok {
		if _, err := regexp.Compile(pattern); err != nil {
			issues = append(issues, customIssue(
				errors.CodeInvalidConfiguration,
				fmt.Sprintf("Invalid regular expression pattern: %v", err),
				"pattern",
			))
		}
	}

	return issues
}

// isValidIdentifier reports whether s is a valid field id.
// Field ids must start with a letter or underscore, followed by letters,
// digits, underscores or hyphens.
func isValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}

	first := s[0]
	if !isLetter(first) && first != '_' {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '-' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// intAttr reads an integral attribute that already passed the base shape.
// Trees come from encoding/json (float64), yaml.v3 (int) or callers (any int).
// Values outside the int32 range are reported as absent.
func intAttr(obj map[string]any, key string) (int, bool) {
	var n int64
	switch v := obj[key].(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, false
		}
		n = int64(v)
	case interface{ Int64() (int64, error) }:
		var err error
		if n, err = v.Int64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64, float32, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
