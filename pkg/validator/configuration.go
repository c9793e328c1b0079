package validator

import (
	"fmt"
	"sort"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// ConfigurationValidator validates value maps against one provider's field
// declarations. It is immutable and safe for concurrent use.
type ConfigurationValidator struct {
	decls      []fields.FieldDeclaration
	validators map[string]FieldValidator
	ids        []string
}

// NewConfigurationValidator builds the field validators for decls.
// Nil declarations are skipped. It panics if a declaration is not a field
// variant.
func NewConfigurationValidator(decls []fields.FieldDeclaration) *ConfigurationValidator {
	kept := make([]fields.FieldDeclaration, 0, len(decls))
	for _, d := range decls {
		if d != nil {
			kept = append(kept, d)
		}
	}

	cv := &ConfigurationValidator{
		decls:      kept,
		validators: make(map[string]FieldValidator, len(kept)),
		ids:        fields.IDs(kept),
	}
	for _, d := range kept {
		cv.validators[d.Base().ID] = NewFieldValidator(d)
	}
	return cv
}

// Validate checks every supplied value and reports required fields that are
// absent from values.
func (cv *ConfigurationValidator) Validate(values fields.Values) errors.Result {
	return cv.validate(values, false)
}

// ValidatePartial checks every supplied value but tolerates absent required
// fields.
func (cv *ConfigurationValidator) ValidatePartial(values fields.Values) errors.Result {
	return cv.validate(values, true)
}

func (cv *ConfigurationValidator) validate(values fields.Values, partial bool) errors.Result {
	list := errors.NewErrorList()

	// Declared fields in declaration order.
	for _, d := range cv.decls {
		id := d.Base().ID
		value, ok := values[id]
		if !ok {
			continue
		}
		list.Add(cv.validators[id].Validate(value))
	}

	// Undeclared keys, sorted for stable output.
	unknown := make([]string, 0)
	for id := range values {
		if _, ok := cv.validators[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		list.Add(&errors.ValidationError{
			FieldID:    id,
			Code:       errors.CodeInvalidConfiguration,
			Message:    fmt.Sprintf("Unknown field: %s", id),
			Suggestion: errors.SuggestFieldName(id, cv.ids),
		})
	}

	if !partial {
		for _, d := range cv.decls {
			base := d.Base()
			if !base.Required {
				continue
			}
			if _, ok := values[base.ID]; !ok {
				list.Add(&errors.ValidationError{
					FieldID: base.ID,
					Code:    errors.CodeRequiredFieldMissing,
					Message: fmt.Sprintf("Required field '%s' is missing", base.Label),
				})
			}
		}
	}

	return errors.NewResult(list.Errors)
}

// Validate runs full validation of values against decls.
func Validate(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	return NewConfigurationValidator(decls).Validate(values)
}

// ValidatePartial runs partial validation of values against decls.
func ValidatePartial(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	return NewConfigurationValidator(decls).ValidatePartial(values)
}
