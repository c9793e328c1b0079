package validator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

func apiKeyField() fields.SecureText {
	return fields.SecureText{
		Common:    fields.Common{ID: "apiKey", Label: "API Key", Required: true},
		MinLength: fields.Int(20),
		Pattern:   "^sk-",
	}
}

func TestTextValidator(t *testing.T) {
	decl := fields.Text{
		Common:    fields.Common{ID: "org", Label: "Organization", Required: true},
		MinLength: fields.Int(3),
		MaxLength: fields.Int(8),
		Pattern:   "^[a-z]+$",
	}

	tests := []struct {
		name  string
		value any
		want  errors.Code
	}{
		{"valid", "acme", ""},
		{"exactly min", "abc", ""},
		{"exactly max", "abcdefgh", ""},
		{"wrong type", 42, errors.CodeInvalidFieldType},
		{"bool is wrong type", true, errors.CodeInvalidFieldType},
		{"nil is missing", nil, errors.CodeRequiredFieldMissing},
		{"empty is missing", "", errors.CodeRequiredFieldMissing},
		{"whitespace is missing", "   \t", errors.CodeRequiredFieldMissing},
		{"too short", "ab", errors.CodeValueTooShort},
		{"too long", "abcdefghi", errors.CodeValueTooLong},
		{"pattern", "ACME", errors.CodePatternMismatch},
		{"length checked before pattern", "AB", errors.CodeValueTooShort},
	}

	v := NewFieldValidator(decl)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			if tt.want == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Code)
			assert.Equal(t, "org", err.FieldID)
		})
	}
}

func TestTextValidator_Messages(t *testing.T) {
	v := NewFieldValidator(fields.Text{
		Common:    fields.Common{ID: "name", Label: "Name", Required: true},
		MinLength: fields.Int(2),
	})

	err := v.Validate("")
	require.NotNil(t, err)
	assert.Equal(t, "Name is required", err.Message)

	err = v.Validate("x")
	require.NotNil(t, err)
	assert.Equal(t, "Name must be at least 2 characters", err.Message)
	assert.Equal(t, "x", err.Value)

	err = v.Validate(3.5)
	require.NotNil(t, err)
	assert.Equal(t, "string", err.Expected)
}

func TestTextValidator_CountsCharacters(t *testing.T) {
	v := NewFieldValidator(fields.Text{
		Common:    fields.Common{ID: "city", Label: "City"},
		MaxLength: fields.Int(6),
	})
	// Six characters, twelve bytes.
	assert.Nil(t, v.Validate("Zürich"))
	assert.Nil(t, v.Validate("東京都渋谷区"))
}

func TestOptionalBlankSkipsRules(t *testing.T) {
	v := NewFieldValidator(fields.Text{
		Common:    fields.Common{ID: "proxy", Label: "Proxy"},
		MinLength: fields.Int(5),
		Pattern:   "^http",
	})
	for _, value := range []any{nil, "", "  "} {
		assert.Nil(t, v.Validate(value), "value %q", value)
	}
	assert.False(t, v.HasValue("  "))
	assert.True(t, v.HasValue("http://proxy"))
}

func TestCheckboxValidator(t *testing.T) {
	v := NewFieldValidator(fields.Checkbox{Common: fields.Common{ID: "stream", Label: "Stream", Required: true}})

	assert.Nil(t, v.Validate(true))
	assert.Nil(t, v.Validate(false))
	assert.Nil(t, v.Validate(nil), "nil normalises to false")

	err := v.Validate("true")
	require.NotNil(t, err)
	assert.Equal(t, errors.CodeInvalidFieldType, err.Code)
	assert.Equal(t, "boolean", err.Expected)

	assert.True(t, v.HasValue(false))
	assert.False(t, v.HasValue(nil))
}

func TestSecureTextValidator(t *testing.T) {
	v := NewFieldValidator(apiKeyField())

	assert.Nil(t, v.Validate("sk-123456789012345678901"))

	tests := []struct {
		name  string
		value any
		want  errors.Code
	}{
		{"missing", "", errors.CodeRequiredFieldMissing},
		{"short", "sk-123", errors.CodeValueTooShort},
		{"pattern", "pk-123456789012345678901", errors.CodePatternMismatch},
		{"type", 123, errors.CodeInvalidFieldType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Code)
			assert.Nil(t, err.Value, "secure text errors must not carry the value")
		})
	}
}

func TestSecureTextValidator_PasswordStrength(t *testing.T) {
	tests := []struct {
		name  string
		decl  fields.SecureText
		value string
		want  errors.Code
	}{
		{"weak password", fields.SecureText{Common: fields.Common{ID: "dbPassword", Label: "Database"}}, "password", errors.CodeWeakPassword},
		{"strong password", fields.SecureText{Common: fields.Common{ID: "dbPassword", Label: "Database"}}, "Passw0rd!", ""},
		{"label match", fields.SecureText{Common: fields.Common{ID: "pw", Label: "Admin Password"}}, "abc", errors.CodeWeakPassword},
		{"secret id", fields.SecureText{Common: fields.Common{ID: "Secret", Label: "Value"}}, "abcdefgh", errors.CodeWeakPassword},
		{"pass label", fields.SecureText{Common: fields.Common{ID: "x", Label: "PASS"}}, "aB1", ""},
		{"api key is not a password", fields.SecureText{Common: fields.Common{ID: "apiKey", Label: "API Key"}}, "abc", ""},
		{"blank optional password", fields.SecureText{Common: fields.Common{ID: "password", Label: "Password"}}, " ", ""},
		{"length failure wins", fields.SecureText{Common: fields.Common{ID: "password", Label: "Password"}, MinLength: fields.Int(10)}, "abc", errors.CodeValueTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFieldValidator(tt.decl).Validate(tt.value)
			if tt.want == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Code)
			assert.Nil(t, err.Value)
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcdefgh", 2},
		{"Abcdefgh", 3},
		{"Abcdefg1", 4},
		{"Abcdef1!", 5},
		{"12345678", 2},
		{"!!", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordStrength(tt.in), "PasswordStrength(%q)", tt.in)
	}
}

func TestNewFieldValidator_PanicsOnForeignDeclaration(t *testing.T) {
	assert.Panics(t, func() { NewFieldValidator(nil) })
	assert.PanicsWithValue(t, "validator: unsupported field declaration *fields.Text", func() {
		NewFieldValidator(&fields.Text{})
	})
}

func TestNewConfigurationValidator_SkipsNilDeclarations(t *testing.T) {
	decls := []fields.FieldDeclaration{nil, apiKeyField(), nil}

	var cv *ConfigurationValidator
	require.NotPanics(t, func() { cv = NewConfigurationValidator(decls) })

	result := cv.Validate(fields.Values{})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "apiKey", result.Errors[0].FieldID)
	assert.Equal(t, errors.CodeRequiredFieldMissing, result.Errors[0].Code)

	result = cv.Validate(fields.Values{"apiKey": "sk-123456789012345678901", "apikey2": "x"})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unknown field: apikey2", result.Errors[0].Message)
	assert.Equal(t, "Did you mean 'apiKey'?", result.Errors[0].Suggestion)

	assert.True(t, ValidatePartial(fields.Values{}, decls).Valid)
}

func TestValidate_MissingRequired(t *testing.T) {
	decls := []fields.FieldDeclaration{apiKeyField()}

	result := Validate(fields.Values{}, decls)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.CodeRequiredFieldMissing, result.Errors[0].Code)
	assert.Equal(t, "apiKey", result.Errors[0].FieldID)
	assert.Equal(t, "Required field 'API Key' is missing", result.Errors[0].Message)
}

func TestValidate_ValidAPIKey(t *testing.T) {
	decls := []fields.FieldDeclaration{apiKeyField()}

	result := Validate(fields.Values{"apiKey": "sk-123456789012345678901"}, decls)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_AccumulatesAndOrders(t *testing.T) {
	decls := []fields.FieldDeclaration{
		apiKeyField(),
		fields.Text{Common: fields.Common{ID: "baseUrl", Label: "Base URL"}, Pattern: "^https://"},
		fields.Checkbox{Common: fields.Common{ID: "stream", Label: "Stream"}},
		fields.Text{Common: fields.Common{ID: "org", Label: "Organization", Required: true}},
	}
	values := fields.Values{
		"zeta":    "x",
		"stream":  "yes",
		"baseURL": "http://example.com",
		"baseUrl": "http://example.com",
	}

	full := Validate(values, decls)
	partial := ValidatePartial(values, decls)

	want := []struct {
		id   string
		code errors.Code
	}{
		{"baseUrl", errors.CodePatternMismatch},
		{"stream", errors.CodeInvalidFieldType},
		{"baseURL", errors.CodeInvalidConfiguration},
		{"zeta", errors.CodeInvalidConfiguration},
		{"apiKey", errors.CodeRequiredFieldMissing},
		{"org", errors.CodeRequiredFieldMissing},
	}
	require.Len(t, full.Errors, len(want))
	for i, w := range want {
		assert.Equal(t, w.id, full.Errors[i].FieldID, "error %d", i)
		assert.Equal(t, w.code, full.Errors[i].Code, "error %d", i)
	}

	assert.Equal(t, "Unknown field: baseURL", full.Errors[2].Message)
	assert.Equal(t, "Did you mean 'baseUrl'?", full.Errors[2].Suggestion)

	if diff := cmp.Diff(full.Errors[:4], partial.Errors); diff != "" {
		t.Errorf("partial should report the same value errors (-full +partial):\n%s", diff)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	cv := NewConfigurationValidator([]fields.FieldDeclaration{apiKeyField()})
	values := fields.Values{"apiKey": "nope", "extra": true}

	first := cv.Validate(values)
	second := cv.Validate(values)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs:\n%s", diff)
	}
}

// Any value map that omits a required field but is otherwise valid passes
// partial validation and fails full validation.
func TestPartialFullDivergence(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 100; i++ {
		var decls []fields.FieldDeclaration
		values := fields.Values{}
		n := 1 + rng.IntN(5)
		requiredIdx := rng.IntN(n)

		for j := 0; j < n; j++ {
			id := fmt.Sprintf("field_%d", j)
			common := fields.Common{ID: id, Label: fmt.Sprintf("Field %d", j), Required: j == requiredIdx || rng.IntN(2) == 0}
			if rng.IntN(2) == 0 {
				decls = append(decls, fields.Checkbox{Common: common})
				if j != requiredIdx {
					values[id] = rng.IntN(2) == 0
				}
				continue
			}
			decls = append(decls, fields.Text{Common: common, MaxLength: fields.Int(16)})
			if j != requiredIdx {
				values[id] = strings.Repeat("v", 1+rng.IntN(16))
			}
		}

		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			assert.True(t, ValidatePartial(values, decls).Valid)
			full := Validate(values, decls)
			assert.False(t, full.Valid)
			require.Len(t, full.Errors, 1)
			assert.Equal(t, fmt.Sprintf("field_%d", requiredIdx), full.Errors[0].FieldID)
		})
	}
}

// Strings of exactly minLength or maxLength characters pass; one character
// outside either bound fails with the matching code.
func TestLengthBoundsAreMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	alphabet := []rune("abcXYZ019-_é東")

	gen := func(n int) string {
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return string(rs)
	}

	for i := 0; i < 200; i++ {
		minLen := 1 + rng.IntN(20)
		maxLen := minLen + rng.IntN(20)
		required := rng.IntN(2) == 0
		decl := fields.Text{
			Common:    fields.Common{ID: "v", Label: "V", Required: required},
			MinLength: fields.Int(minLen),
			MaxLength: fields.Int(maxLen),
		}
		v := NewFieldValidator(decl)

		assert.Nil(t, v.Validate(gen(minLen)), "len=min=%d", minLen)
		assert.Nil(t, v.Validate(gen(maxLen)), "len=max=%d", maxLen)

		if err := v.Validate(gen(maxLen + 1)); assert.NotNil(t, err) {
			assert.Equal(t, errors.CodeValueTooLong, err.Code)
		}

		// A zero-length value is blank, which is a required miss rather
		// than a length miss.
		if minLen > 1 {
			if err := v.Validate(gen(minLen - 1)); assert.NotNil(t, err) {
				assert.Equal(t, errors.CodeValueTooShort, err.Code)
			}
		}
	}
}
