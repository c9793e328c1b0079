package errors

// Code identifies the kind of a validation failure.
type Code string

const (
	CodeRequiredFieldMissing Code = "REQUIRED_FIELD_MISSING"
	CodeInvalidFieldType     Code = "INVALID_FIELD_TYPE"
	CodePatternMismatch      Code = "PATTERN_MISMATCH"
	CodeValueTooShort        Code = "VALUE_TOO_SHORT"
	CodeValueTooLong         Code = "VALUE_TOO_LONG"
	CodeInvalidProviderID    Code = "INVALID_PROVIDER_ID"
	CodeProviderNotFound     Code = "PROVIDER_NOT_FOUND"
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	CodeDuplicateInstanceID  Code = "DUPLICATE_INSTANCE_ID"
	CodeInsecureValue        Code = "INSECURE_VALUE"
	CodeEncryptionFailed     Code = "ENCRYPTION_FAILED"
	CodeWeakPassword         Code = "WEAK_PASSWORD"

	// CodeTruncated marks the synthetic entry appended by the formatter when
	// an error list exceeds its cap.
	CodeTruncated Code = "TRUNCATED"
)

// Codes returns every validator error code. CodeTruncated is not included.
func Codes() []Code {
	return []Code{
		CodeRequiredFieldMissing,
		CodeInvalidFieldType,
		CodePatternMismatch,
		CodeValueTooShort,
		CodeValueTooLong,
		CodeInvalidProviderID,
		CodeProviderNotFound,
		CodeInvalidConfiguration,
		CodeDuplicateInstanceID,
		CodeInsecureValue,
		CodeEncryptionFailed,
		CodeWeakPassword,
	}
}

// Valid reports whether c is a validator error code.
func (c Code) Valid() bool {
	for _, known := range Codes() {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }
