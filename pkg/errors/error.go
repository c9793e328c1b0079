package errors

import (
	"fmt"
	"strings"
)

// ValidationError describes one rejected declaration, value or document.
type ValidationError struct {
	// FieldID is the offending field id. Empty for document-level errors.
	FieldID string `json:"fieldId,omitempty"`

	// Path is the dotted location inside the validated tree
	// (e.g. "providers.0.configuration.fields"). Empty for value errors.
	Path string `json:"path,omitempty"`

	Code    Code   `json:"code"`
	Message string `json:"message"`

	// Value is the rejected value. Never set for secure-text fields.
	Value any `json:"value,omitempty"`

	// File is the source file of a parse or read error.
	File string `json:"file,omitempty"`

	// Line and Column are 1-based and only set for file parse errors.
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`

	// Expected is an optional expected-type hint ("string", "boolean").
	Expected string `json:"expected,omitempty"`

	// Suggestion is an optional hint on how to fix the error.
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", e.Code))

	if loc := e.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column))
	}
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Location returns the first of Path, FieldID and File that is set.
func (e *ValidationError) Location() string {
	switch {
	case e.Path != "":
		return e.Path
	case e.FieldID != "":
		return e.FieldID
	default:
		return e.File
	}
}

// ErrorList accumulates validation errors instead of failing on the first one.
type ErrorList struct {
	Errors []*ValidationError
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*ValidationError, 0),
	}
}

// Add appends an error to the list. Nil errors are ignored.
func (el *ErrorList) Add(err *ValidationError) {
	if err == nil {
		return
	}
	el.Errors = append(el.Errors, err)
}

// AddAll appends every non-nil error.
func (el *ErrorList) AddAll(errs []*ValidationError) {
	for _, err := range errs {
		el.Add(err)
	}
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(code Code, fieldID, message string) {
	el.Add(&ValidationError{
		FieldID: fieldID,
		Code:    code,
		Message: message,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d validation error(s):\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByCode returns all errors with the given code.
func (el *ErrorList) ByCode(code Code) []*ValidationError {
	var result []*ValidationError
	for _, err := range el.Errors {
		if err.Code == code {
			result = append(result, err)
		}
	}
	return result
}

// HasCode returns true if the list contains at least one error with the given code.
func (el *ErrorList) HasCode(code Code) bool {
	for _, err := range el.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Result is the outcome of a validation call.
type Result struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors"`
}

// NewResult builds a Result; Valid is true exactly when errs is empty.
func NewResult(errs []*ValidationError) Result {
	if errs == nil {
		errs = []*ValidationError{}
	}
	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// Err returns the errors as an *ErrorList, or nil when the result is valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ErrorList{Errors: r.Errors}
}

// FieldIDs returns the field id (or path) of every error in order.
func (r Result) FieldIDs() []string {
	ids := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		ids = append(ids, err.Location())
	}
	return ids
}
