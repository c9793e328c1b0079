package fields

import (
	"encoding/json"
	"strings"
)

// Kind is the discriminant of a field declaration (the "type" tag on the wire).
type Kind string

const (
	// KindText is a free-form text field.
	KindText Kind = "text"
	// KindSecureText is a secret text field whose value must never be echoed.
	KindSecureText Kind = "secure-text"
	// KindCheckbox is a boolean field.
	KindCheckbox Kind = "checkbox"
)

// Kinds returns the closed set of field kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindText, KindSecureText, KindCheckbox}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindSecureText, KindCheckbox:
		return true
	default:
		return false
	}
}

// KindNames returns the known kinds as a comma separated, quoted list.
func KindNames() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, "'"+string(k)+"'")
	}
	return strings.Join(names, ", ")
}

// FieldDeclaration is the static description of one configurable input.
// It is implemented only by Text, SecureText and Checkbox.
type FieldDeclaration interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Base returns the attributes shared by every variant.
	Base() Common

	isFieldDeclaration()
}

// Common holds the attributes every field variant carries.
type Common struct {
	// ID identifies the field within its provider.
	ID string `json:"id"`

	// Label is the human readable name shown next to the input.
	Label string `json:"label"`

	// Required marks the field as mandatory for a complete configuration.
	Required bool `json:"required"`

	Placeholder string `json:"placeholder,omitempty"`
	HelperText  string `json:"helperText,omitempty"`
}

// Base returns c itself; it is promoted to every variant.
func (c Common) Base() Common { return c }

// Text is a free-form text field.
type Text struct {
	Common

	// DefaultValue is used when the user has not entered anything.
	DefaultValue *string `json:"defaultValue,omitempty"`

	// MinLength and MaxLength bound the value length in characters.
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Pattern is a regular expression the value must match.
	Pattern string `json:"pattern,omitempty"`
}

// Kind implements FieldDeclaration.
func (Text) Kind() Kind { return KindText }

func (Text) isFieldDeclaration() {}

// MarshalJSON emits the declaration with its "type" tag.
func (t Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindText, alias(t)})
}

// SecureText is a secret text field. It has the same constraints as Text but
// can never declare a default value.
type SecureText struct {
	Common

	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	Pattern string `json:"pattern,omitempty"`
}

// Kind implements FieldDeclaration.
func (SecureText) Kind() Kind { return KindSecureText }

func (SecureText) isFieldDeclaration() {}

// AsText returns a Text view of the secure field so that text rules can be
// reused by delegation. The view never carries a default value.
func (s SecureText) AsText() Text {
	return Text{
		Common:    s.Common,
		MinLength: s.MinLength,
		MaxLength: s.MaxLength,
		Pattern:   s.Pattern,
	}
}

// MarshalJSON emits the declaration with its "type" tag.
func (s SecureText) MarshalJSON() ([]byte, error) {
	type alias SecureText
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindSecureText, alias(s)})
}

// Checkbox is a boolean field.
type Checkbox struct {
	Common

	DefaultValue *bool `json:"defaultValue,omitempty"`
}

// Kind implements FieldDeclaration.
func (Checkbox) Kind() Kind { return KindCheckbox }

func (Checkbox) isFieldDeclaration() {}

// MarshalJSON emits the declaration with its "type" tag.
func (c Checkbox) MarshalJSON() ([]byte, error) {
	type alias Checkbox
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{KindCheckbox, alias(c)})
}

// Values is a user-entered configuration: field id to scalar value (string or
// bool). It is always interpreted against one provider's field declarations.
type Values map[string]any

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FieldByID returns the declaration with the given id.
func FieldByID(decls []FieldDeclaration, id string) (FieldDeclaration, bool) {
	for _, d := range decls {
		if d != nil && d.Base().ID == id {
			return d, true
		}
	}
	return nil, false
}

// IDs returns the field ids in declaration order.
func IDs(decls []FieldDeclaration) []string {
	ids := make([]string, 0, len(decls))
	for _, d := range decls {
		if d == nil {
			continue
		}
		ids = append(ids, d.Base().ID)
	}
	return ids
}

// IsSecret reports whether the declaration holds a secret value.
func IsSecret(decl FieldDeclaration) bool {
	return decl != nil && decl.Kind() == KindSecureText
}

// Int returns a pointer to n; handy for MinLength/MaxLength literals.
func Int(n int) *int { return &n }

// String returns a pointer to s; handy for Text.DefaultValue literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b; handy for Checkbox.DefaultValue literals.
func Bool(b bool) *bool { return &b }
