package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// FieldValidator validates runtime values for one declared field.
type FieldValidator interface {
	// Validate returns nil when value is acceptable, otherwise the first
	// failing rule's error.
	Validate(value any) *errors.ValidationError

	// HasValue reports whether value counts as supplied for this field.
	HasValue(value any) bool
}

// NewFieldValidator returns the validator for decl.
// It panics if decl is nil or not one of the field variants.
func NewFieldValidator(decl fields.FieldDeclaration) FieldValidator {
	switch d := decl.(type) {
	case fields.Text:
		return newTextValidator(d)
	case fields.SecureText:
		return &secureTextValidator{decl: d, text: newTextValidator(d.AsText())}
	case fields.Checkbox:
		return &checkboxValidator{decl: d}
	default:
		panic(fmt.Sprintf("validator: unsupported field declaration %T", decl))
	}
}

type textValidator struct {
	decl       fields.Text
	pattern    *regexp.Regexp
	patternErr error
}

func newTextValidator(decl fields.Text) *textValidator {
	v := &textValidator{decl: decl}
	if decl.Pattern != "" {
		v.pattern, v.patternErr = regexp.Compile(decl.Pattern)
	}
	return v
}

func (v *textValidator) HasValue(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) != ""
}

func (v *textValidator) Validate(value any) *errors.ValidationError {
	label := v.decl.Label

	if value == nil {
		if v.decl.Required {
			return v.fail(errors.CodeRequiredFieldMissing, nil, "%s is required", label)
		}
		return nil
	}

	s, ok := value.(string)
	if !ok {
		err := v.fail(errors.CodeInvalidFieldType, value, "%s must be a string", label)
		err.Expected = "string"
		return err
	}

	if strings.TrimSpace(s) == "" {
		if v.decl.Required {
			return v.fail(errors.CodeRequiredFieldMissing, s, "%s is required", label)
		}
		return nil
	}

	length := utf8.RuneCountInString(s)
	if v.decl.MinLength != nil && length < *v.decl.MinLength {
		return v.fail(errors.CodeValueTooShort, s, "%s must be at least %d characters", label, *v.decl.MinLength)
	}
	if v.decl.MaxLength != nil && length > *v.decl.MaxLength {
		return v.fail(errors.CodeValueTooLong, s, "%s must be at most %d characters", label, *v.decl.MaxLength)
	}

	if v.patternErr != nil {
		return v.fail(errors.CodeInvalidConfiguration, nil, "%s declares an invalid pattern: %v", label, v.patternErr)
	}
	if v.pattern != nil && !v.pattern.MatchString(s) {
		return v.fail(errors.CodePatternMismatch, s, "%s format is invalid", label)
	}

	return nil
}

func (v *textValidator) fail(code errors.Code, value any, format string, args ...any) *errors.ValidationError {
	return &errors.ValidationError{
		FieldID: v.decl.ID,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	}
}

// secureTextValidator runs the text rules on a text view of the declaration,
// then the password strength rule. Its errors never carry the value.
type secureTextValidator struct {
	decl fields.SecureText
	text *textValidator
}

func (v *secureTextValidator) HasValue(value any) bool {
	return v.text.HasValue(value)
}

func (v *secureTextValidator) Validate(value any) *errors.ValidationError {
	if err := v.text.Validate(value); err != nil {
		err.Value = nil
		return err
	}

	s, _ := value.(string)
	if strings.TrimSpace(s) == "" || !LooksLikePassword(v.decl) {
		return nil
	}
	if PasswordStrength(s) < MinPasswordStrength {
		return &errors.ValidationError{
			FieldID: v.decl.ID,
			Code:    errors.CodeWeakPassword,
			Message: fmt.Sprintf("%s is too weak. Use at least 8 characters mixing upper and lower case letters, digits and symbols", v.decl.Label),
		}
	}
	return nil
}

type checkboxValidator struct {
	decl fields.Checkbox
}

// HasValue reports true for any bool. A nil checkbox reads as false.
func (v *checkboxValidator) HasValue(value any) bool {
	_, ok := value.(bool)
	return ok
}

func (v *checkboxValidator) Validate(value any) *errors.ValidationError {
	if value == nil {
		return nil
	}
	if _, ok := value.(bool); !ok {
		return &errors.ValidationError{
			FieldID:  v.decl.ID,
			Code:     errors.CodeInvalidFieldType,
			Message:  fmt.Sprintf("%s must be true or false", v.decl.Label),
			Value:    value,
			Expected: "boolean",
		}
	}
	return nil
}
