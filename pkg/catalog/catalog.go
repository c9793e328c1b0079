package catalog

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"mercator-hq/provconf/pkg/document"
	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/provconf"
	"mercator-hq/provconf/pkg/source"
)

//go:embed providers/*.jsonc
var files embed.FS

var builtins = mustLoad()

// All returns every built-in provider, sorted by id.
func All() []fields.ProviderDeclaration {
	return slices.Clone(builtins.Providers)
}

// IDs returns the ids of the built-in providers.
func IDs() []string {
	return builtins.ProviderIDs()
}

// Get returns the built-in provider with the given id. An unknown id yields a
// PROVIDER_NOT_FOUND error, with a suggestion when a similar id exists.
func Get(id string) (fields.ProviderDeclaration, error) {
	p, verr := builtins.Provider(id)
	if verr != nil {
		return fields.ProviderDeclaration{}, verr
	}
	return *p, nil
}

// Document returns the built-ins as a providers document.
func Document() *document.ProvidersDocument {
	doc := document.New()
	doc.Providers = All()
	return doc
}

func mustLoad() *document.ProvidersDocument {
	doc, err := load()
	if err != nil {
		panic(err)
	}
	return doc
}

func load() (*document.ProvidersDocument, error) {
	entries, err := files.ReadDir("providers")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	doc := document.New()
	for _, entry := range entries {
		name := path.Join("providers", entry.Name())
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		tree, err := source.Parse(data, source.FormatJSONC, name)
		if err != nil {
			return nil, err
		}

		provider := provconf.MustProvider(tree)
		if _, dup := doc.Provider(provider.ID); dup == nil {
			return nil, &errors.ValidationError{
				File:    name,
				FieldID: provider.ID,
				Code:    errors.CodeDuplicateInstanceID,
				Message: fmt.Sprintf("Provider '%s' is declared twice", provider.ID),
			}
		}
		doc.Providers = append(doc.Providers, provider)
	}

	slices.SortFunc(doc.Providers, func(a, b fields.ProviderDeclaration) int {
		return strings.Compare(a.ID, b.ID)
	})
	return doc, nil
}
