package fields

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ProviderDeclaration describes one pluggable backend's configuration surface.
type ProviderDeclaration struct {
	// ID is lowercase alphanumeric plus hyphens (e.g. "openai", "azure-openai").
	ID string `json:"id"`

	// Name is the provider's display name.
	Name string `json:"name"`

	// Models maps model id to display name. Never empty for a valid provider.
	Models map[string]string `json:"models"`

	// Configuration holds the field declarations.
	Configuration ProviderConfiguration `json:"configuration"`

	// Metadata is advisory and never checked against Configuration.
	Metadata *ProviderMetadata `json:"metadata,omitempty"`
}

// Fields returns the provider's field declarations.
func (p ProviderDeclaration) Fields() []FieldDeclaration {
	return p.Configuration.Fields
}

// ModelIDs returns the model ids in sorted order.
func (p ProviderDeclaration) ModelIDs() []string {
	ids := make([]string, 0, len(p.Models))
	for id := range p.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ProviderConfiguration wraps the ordered field declarations of a provider.
type ProviderConfiguration struct {
	Fields []FieldDeclaration `json:"fields"`
}

// UnmarshalJSON decodes each field by dispatching on its "type" tag.
// It does not validate the declarations; use package schema for that.
func (c *ProviderConfiguration) UnmarshalJSON(data []byte) error {
	var raw struct {
		Fields []map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Fields = make([]FieldDeclaration, 0, len(raw.Fields))
	for i, item := range raw.Fields {
		decl, err := DecodeField(item)
		if err != nil {
			return fmt.Errorf("fields[%d]: %w", i, err)
		}
		c.Fields = append(c.Fields, decl)
	}
	return nil
}

// ProviderMetadata carries display hints and capability flags.
type ProviderMetadata struct {
	DisplayName  string          `json:"displayName,omitempty"`
	Description  string          `json:"description,omitempty"`
	Icon         string          `json:"icon,omitempty"`
	Capabilities map[string]bool `json:"capabilities,omitempty"`
}
