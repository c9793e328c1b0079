package provconf

import (
	"encoding/json"
	"fmt"

	"mercator-hq/provconf/pkg/document"
	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/schema"
)

var defaultEngine = New(Options{})

// Default returns the engine behind the package-level functions.
func Default() *Engine {
	return defaultEngine
}

// ValidateField checks one untyped field declaration.
func ValidateField(raw any) (fields.FieldDeclaration, errors.Result) {
	return defaultEngine.ValidateField(raw)
}

// ValidateProvider checks one untyped provider declaration.
func ValidateProvider(raw any) (*fields.ProviderDeclaration, errors.Result) {
	return defaultEngine.ValidateProvider(raw)
}

// ValidateConfigurationValues checks a complete set of values against decls.
func ValidateConfigurationValues(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	return defaultEngine.ValidateConfigurationValues(values, decls)
}

// ValidatePartialConfigurationValues checks only the values present.
func ValidatePartialConfigurationValues(values fields.Values, decls []fields.FieldDeclaration) errors.Result {
	return defaultEngine.ValidatePartialConfigurationValues(values, decls)
}

// ValidateFile checks an untyped providers document tree.
func ValidateFile(raw any) (*document.ProvidersDocument, errors.Result) {
	return defaultEngine.ValidateFile(raw)
}

// AssertProvider validates raw and returns the provider, or the
// *errors.ErrorList of every violation. raw may also be a
// fields.ProviderDeclaration, which is checked through its JSON form.
func AssertProvider(raw any) (fields.ProviderDeclaration, error) {
	tree, err := toTree(raw)
	if err != nil {
		return fields.ProviderDeclaration{}, err
	}

	provider, result := defaultEngine.ValidateProvider(tree)
	if !result.Valid {
		return fields.ProviderDeclaration{}, result.Err()
	}
	return *provider, nil
}

// MustProvider is like AssertProvider but panics with the *errors.ErrorList
// when the declaration is invalid. It is meant for declarations compiled
// into a program.
func MustProvider(raw any) fields.ProviderDeclaration {
	provider, err := AssertProvider(raw)
	if err != nil {
		panic(err)
	}
	return provider
}

// ValidateProviderID returns an INVALID_PROVIDER_ID error when id is not
// lowercase letters, digits and hyphens, and nil otherwise.
func ValidateProviderID(id string) *errors.ValidationError {
	if schema.ValidateProviderID(id) {
		return nil
	}
	return &errors.ValidationError{
		FieldID: "id",
		Code:    errors.CodeInvalidProviderID,
		Message: fmt.Sprintf("Invalid provider id %q: use lowercase letters, digits and hyphens", id),
		Value:   id,
	}
}

// FindProvider looks up a provider of doc by id. A missing provider yields
// PROVIDER_NOT_FOUND with a suggestion when a similar id exists.
func FindProvider(doc *document.ProvidersDocument, id string) (*fields.ProviderDeclaration, *errors.ValidationError) {
	if doc == nil {
		return nil, &errors.ValidationError{
			Code:    errors.CodeProviderNotFound,
			Message: fmt.Sprintf("Provider '%s' not found", id),
		}
	}
	return doc.Provider(id)
}

// DefaultValues returns the initial values of a configuration form.
func DefaultValues(decls []fields.FieldDeclaration) fields.Values {
	return fields.DefaultValues(decls)
}

// toTree turns typed declarations into the untyped form the schema
// validator checks. Untyped input is returned as is.
func toTree(raw any) (any, error) {
	switch v := raw.(type) {
	case fields.ProviderDeclaration, *fields.ProviderDeclaration:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode provider declaration: %w", err)
		}
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to decode provider declaration: %w", err)
		}
		return tree, nil
	default:
		return raw, nil
	}
}
