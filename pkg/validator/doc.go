// Package validator checks user-entered configuration values against trusted
// field declarations.
//
// A FieldValidator exists per field variant. Rules run in a fixed order and
// the first failing rule is reported:
//
//  1. type (string for text kinds, bool for checkboxes)
//  2. required (blank strings count as missing)
//  3. length bounds, counted in characters
//  4. pattern
//  5. password strength, for secure-text fields that look like passwords
//
// Optional fields left blank are always valid.
//
// ConfigurationValidator applies the field validators to a whole map of
// values. Validate also reports required fields that are absent from the
// map; ValidatePartial does not, so it can be used while a form is still
// being filled in.
package validator
