// Package fields defines the field-type model used to describe the
// configuration surface of a pluggable provider.
//
// A provider declares a flat list of named scalar fields. Every field is one
// of a closed set of variants:
//
//   - Text: a free-form string with optional length bounds, pattern and default
//   - SecureText: a secret string (API key, password); never has a default
//   - Checkbox: a boolean with an optional default
//
// The variants implement the sealed FieldDeclaration interface, so a type
// switch over Text, SecureText and Checkbox covers every declaration:
//
//	switch f := decl.(type) {
//	case fields.Text:
//	case fields.SecureText:
//	case fields.Checkbox:
//	}
//
// This package holds data only. Structural validation of declarations lives in
// package schema, and validation of user-entered values lives in package
// validator.
package fields
