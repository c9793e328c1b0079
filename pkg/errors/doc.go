// Package errors defines the error taxonomy shared by every validator.
//
// Validators never return Go errors for data problems. Each rejection is a
// *ValidationError carrying a stable Code, and rejections are accumulated in
// an ErrorList or returned inside a Result:
//
//	list := errors.NewErrorList()
//	list.Add(&errors.ValidationError{
//	    FieldID: "apiKey",
//	    Code:    errors.CodeRequiredFieldMissing,
//	    Message: "API Key is required",
//	})
//
//	result := errors.NewResult(list.Errors)
//	if !result.Valid {
//	    // inspect result.Errors
//	}
//
// # Codes
//
// Codes are plain strings so they survive JSON and process boundaries:
//
//	REQUIRED_FIELD_MISSING, INVALID_FIELD_TYPE, PATTERN_MISMATCH,
//	VALUE_TOO_SHORT, VALUE_TOO_LONG, INVALID_PROVIDER_ID, PROVIDER_NOT_FOUND,
//	INVALID_CONFIGURATION, DUPLICATE_INSTANCE_ID, INSECURE_VALUE,
//	ENCRYPTION_FAILED, WEAK_PASSWORD
//
// TRUNCATED is reserved for the formatter and never produced by a validator.
//
// # Suggestions
//
// SuggestFieldName uses Levenshtein distance to propose the closest declared
// field id when a configuration contains an unknown key:
//
//	errors.SuggestFieldName("apikey", []string{"apiKey", "baseUrl"})
//	// Returns: "Did you mean 'apiKey'?"
package errors
