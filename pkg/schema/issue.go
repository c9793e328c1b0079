package schema

import (
	"sort"
	"strings"

	"mercator-hq/provconf/pkg/errors"
)

// IssueCode classifies a structural issue independently of the library that
// reported it.
type IssueCode string

const (
	// IssueTooSmall is a lower-bound miss (string length, item count, minimum).
	IssueTooSmall IssueCode = "too_small"

	// IssueTooBig is an upper-bound miss.
	IssueTooBig IssueCode = "too_big"

	// IssueInvalidType is a JSON type mismatch.
	IssueInvalidType IssueCode = "invalid_type"

	// IssueInvalidString is a pattern or format failure.
	IssueInvalidString IssueCode = "invalid_string"

	// IssueRequired is a missing required property.
	IssueRequired IssueCode = "required"

	// IssueCustom is raised by refinements. Params["errorCode"] may carry the
	// error code to report.
	IssueCustom IssueCode = "custom"
)

// ParamErrorCode is the Params key a custom issue uses to pick its error code.
const ParamErrorCode = "errorCode"

// RawIssue is one structural violation.
type RawIssue struct {
	Code IssueCode

	// Path is the location of the offending value, one segment per object
	// key or array index. Empty for the root.
	Path []string

	Message string

	// Expected and Received are type hints for IssueInvalidType.
	Expected string
	Received string

	Params map[string]string
}

// ErrorCode maps the issue onto the public error taxonomy.
//
// A lower-bound miss is reported as REQUIRED_FIELD_MISSING even when the value
// is present but too short. Consumers rely on that mapping.
func (i RawIssue) ErrorCode() errors.Code {
	switch i.Code {
	case IssueTooSmall, IssueRequired:
		return errors.CodeRequiredFieldMissing
	case IssueTooBig:
		return errors.CodeValueTooLong
	case IssueInvalidType:
		return errors.CodeInvalidFieldType
	case IssueInvalidString:
		return errors.CodePatternMismatch
	case IssueCustom:
		if code := errors.Code(i.Params[ParamErrorCode]); code.Valid() {
			return code
		}
	}
	return errors.CodeInvalidConfiguration
}

// PathString joins the path with dots ("configuration.fields.0.id").
func (i RawIssue) PathString() string {
	return strings.Join(i.Path, ".")
}

// FieldID returns the last path segment, or "" for the root.
func (i RawIssue) FieldID() string {
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[len(i.Path)-1]
}

// ToValidationError converts the issue, keeping the library message.
func (i RawIssue) ToValidationError() *errors.ValidationError {
	return &errors.ValidationError{
		FieldID:  i.FieldID(),
		Path:     i.PathString(),
		Code:     i.ErrorCode(),
		Message:  i.Message,
		Expected: i.Expected,
	}
}

// ToValidationErrors converts every issue in order.
func ToValidationErrors(issues []RawIssue) []*errors.ValidationError {
	out := make([]*errors.ValidationError, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.ToValidationError())
	}
	return out
}

// WithPrefix returns copies of issues re-rooted under prefix.
func WithPrefix(issues []RawIssue, prefix ...string) []RawIssue {
	if len(prefix) == 0 {
		return issues
	}
	out := make([]RawIssue, len(issues))
	for idx, issue := range issues {
		path := make([]string, 0, len(prefix)+len(issue.Path))
		path = append(path, prefix...)
		path = append(path, issue.Path...)
		issue.Path = path
		out[idx] = issue
	}
	return out
}

func customIssue(code errors.Code, message string, path ...string) RawIssue {
	return RawIssue{
		Code:    IssueCustom,
		Path:    path,
		Message: message,
		Params:  map[string]string{ParamErrorCode: string(code)},
	}
}

// sortIssues orders issues by path, then by message, so output does not
// depend on the order a library walks object properties.
func sortIssues(issues []RawIssue) {
	sort.SliceStable(issues, func(a, b int) bool {
		pa, pb := issues[a].PathString(), issues[b].PathString()
		if pa != pb {
			return pa < pb
		}
		return issues[a].Message < issues[b].Message
	})
}
