package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"

	provErrors "mercator-hq/provconf/pkg/errors"
)

const (
	// MessageInvalidJSON replaces parser messages in production.
	MessageInvalidJSON = "Invalid JSON syntax in configuration file"

	// MessageReadFailed replaces I/O messages in production.
	MessageReadFailed = "Failed to read configuration file"
)

var (
	positionPattern   = regexp.MustCompile(`(?i)\bposition\s+(\d+)`)
	lineColumnPattern = regexp.MustCompile(`(?i)\bline\s+(\d+)(?:,?\s*column\s+(\d+))?`)
)

// FormatJSONError formats a parse failure of the file at path. content is the
// text that failed to parse; it may be empty, in which case no position is
// computed from an offset.
func (f *Formatter) FormatJSONError(err error, path, content string) *provErrors.ValidationError {
	if f.production() {
		return &provErrors.ValidationError{
			Code:    provErrors.CodeInvalidConfiguration,
			Message: MessageInvalidJSON,
		}
	}

	verr := &provErrors.ValidationError{
		File:    path,
		Code:    provErrors.CodeInvalidConfiguration,
		Message: err.Error(),
	}
	verr.Line, verr.Column = parsePosition(err, content)
	return verr
}

// parsePosition finds a 1-based line and column for err, or zeros.
func parsePosition(err error, content string) (line, column int) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) && content != "" {
		// Offset counts the bytes read, including the offending one.
		return provErrors.Position(content, int(syntaxErr.Offset)-1)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && content != "" {
		return provErrors.Position(content, int(typeErr.Offset)-1)
	}

	msg := err.Error()
	if m := positionPattern.FindStringSubmatch(msg); m != nil && content != "" {
		if offset, convErr := strconv.Atoi(m[1]); convErr == nil {
			return provErrors.Position(content, offset)
		}
	}
	if m := lineColumnPattern.FindStringSubmatch(msg); m != nil {
		line, _ = strconv.Atoi(m[1])
		column = 1
		if m[2] != "" {
			column, _ = strconv.Atoi(m[2])
		}
		return line, column
	}
	return 0, 0
}

// FormatFileError formats a failure to read the file at path.
func (f *Formatter) FormatFileError(err error, path string) *provErrors.ValidationError {
	if f.production() {
		return &provErrors.ValidationError{
			Code:    provErrors.CodeInvalidConfiguration,
			Message: MessageReadFailed,
		}
	}
	return &provErrors.ValidationError{
		File:    path,
		Code:    provErrors.Code(fileErrorName(err)),
		Message: err.Error(),
	}
}

// fileErrorName names err the way POSIX tools do where possible.
func fileErrorName(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "ENOENT"
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	case errors.Is(err, fs.ErrExist):
		return "EEXIST"
	default:
		return fmt.Sprintf("%T", err)
	}
}
