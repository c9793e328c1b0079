package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// providerIDPattern validates provider ids (e.g. "openai", "azure-openai").
var providerIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateProviderID reports whether id is a syntactically valid provider id.
func ValidateProviderID(id string) bool {
	return providerIDPattern.MatchString(id)
}

// providerHeader holds the provider attributes decoded without dispatch.
type providerHeader struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Models   map[string]string        `json:"models"`
	Metadata *fields.ProviderMetadata `json:"metadata"`
}

// ValidateProvider checks an untyped provider declaration and every field it
// declares. All violations are collected in one pass: base-shape issues
// first, then field issues in declaration order, then provider refinements.
// Refinements only need their own attribute to have the right type.
func ValidateProvider(raw any) (*fields.ProviderDeclaration, []RawIssue) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, []RawIssue{{
			Code:     IssueInvalidType,
			Message:  fmt.Sprintf("Invalid type. Expected: object, given: %s", jsonTypeName(raw)),
			Expected: "object",
			Received: jsonTypeName(raw),
		}}
	}

	issues := ValidateShape(ShapeProvider, obj)

	items := fieldItems(obj)
	decls := make([]fields.FieldDeclaration, 0, len(items))
	for i, item := range items {
		decl, fieldIssues := ValidateField(item)
		if len(fieldIssues) > 0 {
			issues = append(issues, WithPrefix(fieldIssues, "configuration", "fields", strconv.Itoa(i))...)
			continue
		}
		decls = append(decls, decl)
	}

	issues = append(issues, refineProvider(obj)...)
	if dup := duplicateFieldIDs(items); len(dup) > 0 {
		issues = append(issues, customIssue(
			errors.CodeInvalidConfiguration,
			fmt.Sprintf("Field ids must be unique within a provider. Duplicated: %s", strings.Join(dup, ", ")),
			"configuration", "fields",
		))
	}

	if len(issues) > 0 {
		return nil, issues
	}

	var header providerHeader
	if err := fields.Decode(obj, &header); err != nil {
		return nil, []RawIssue{customIssue(errors.CodeInvalidConfiguration, err.Error())}
	}
	return &fields.ProviderDeclaration{
		ID:            header.ID,
		Name:          header.Name,
		Models:        header.Models,
		Configuration: fields.ProviderConfiguration{Fields: decls},
		Metadata:      header.Metadata,
	}, nil
}

func refineProvider(obj map[string]any) []RawIssue {
	var issues []RawIssue

	// An empty id is already a base-shape issue.
	if id, ok := obj["id"].(string); ok && id != "" && !ValidateProviderID(id) {
		issues = append(issues, customIssue(
			errors.CodeInvalidProviderID,
			fmt.Sprintf("Invalid provider id %q: use lowercase letters, digits and hyphens", id),
			"id",
		))
	}

	if models, ok := obj["models"].(map[string]any); ok && len(models) == 0 {
		issues = append(issues, customIssue(
			errors.CodeInvalidConfiguration,
			"Provider must declare at least one model",
			"models",
		))
	}

	return issues
}

// fieldItems returns configuration.fields when it is an array.
func fieldItems(obj map[string]any) []any {
	cfg, ok := obj["configuration"].(map[string]any)
	if !ok {
		return nil
	}
	items, _ := cfg["fields"].([]any)
	return items
}

// duplicateFieldIDs returns every id declared more than once, sorted.
func duplicateFieldIDs(items []any) []string {
	seen := make(map[string]int, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := obj["id"].(string); ok && id != "" {
			seen[id]++
		}
	}

	var dup []string
	for id, n := range seen {
		if n > 1 {
			dup = append(dup, id)
		}
	}
	sort.Strings(dup)
	return dup
}
