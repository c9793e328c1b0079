// Package schema performs structural validation of field and provider
// declarations.
//
// Structural validation checks that a declaration tree is well formed before
// it is trusted: the type tag selects one field variant, the variant's base
// shape is checked against an embedded JSON Schema, and then a small set of
// refinements runs (identifier syntax, length bounds, pattern syntax, unique
// field ids, non-empty model set).
//
// Validation never stops at the first problem. Every violation found in a
// single pass is returned as a RawIssue, an engine-owned description that is
// independent of the JSON Schema library doing the base-shape checks. The
// mapping from issues to error codes lives in RawIssue.ErrorCode.
//
// Basic usage:
//
//	decl, issues := schema.ValidateProvider(raw)
//	if len(issues) > 0 {
//		return schema.ToValidationErrors(issues)
//	}
package schema
