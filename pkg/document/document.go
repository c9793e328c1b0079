package document

import (
	"encoding/json"
	"fmt"
	"time"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// knownKeys are the top-level keys this schema version understands.
var knownKeys = map[string]bool{
	"version":   true,
	"providers": true,
	"metadata":  true,
}

// ProvidersDocument is a validated collection of provider declarations.
type ProvidersDocument struct {
	Version   string                       `json:"version"`
	Providers []fields.ProviderDeclaration `json:"providers"`
	Metadata  *Metadata                    `json:"metadata,omitempty"`

	// Extra holds unknown top-level keys. Values decoded by UnmarshalJSON are
	// json.RawMessage and are re-emitted byte for byte.
	Extra map[string]any `json:"-"`
}

// Metadata describes the document as a whole.
type Metadata struct {
	// LastUpdated is an RFC 3339 timestamp.
	LastUpdated string `json:"lastUpdated,omitempty"`
	Description string `json:"description,omitempty"`
}

// Updated parses LastUpdated.
func (m *Metadata) Updated() (time.Time, error) {
	if m == nil || m.LastUpdated == "" {
		return time.Time{}, fmt.Errorf("document has no lastUpdated timestamp")
	}
	return time.Parse(time.RFC3339, m.LastUpdated)
}

// New returns an empty document stamped with CurrentSchemaVersion.
func New() *ProvidersDocument {
	return &ProvidersDocument{
		Version:   CurrentSchemaVersion,
		Providers: []fields.ProviderDeclaration{},
		Metadata:  &Metadata{LastUpdated: time.Now().UTC().Format(time.RFC3339)},
	}
}

// Provider returns the provider with the given id.
func (d *ProvidersDocument) Provider(id string) (*fields.ProviderDeclaration, *errors.ValidationError) {
	for i := range d.Providers {
		if d.Providers[i].ID == id {
			return &d.Providers[i], nil
		}
	}
	return nil, &errors.ValidationError{
		FieldID:    id,
		Code:       errors.CodeProviderNotFound,
		Message:    fmt.Sprintf("Provider '%s' not found", id),
		Suggestion: errors.SuggestFieldName(id, d.ProviderIDs()),
	}
}

// ProviderIDs returns the provider ids in document order.
func (d *ProvidersDocument) ProviderIDs() []string {
	ids := make([]string, 0, len(d.Providers))
	for _, p := range d.Providers {
		ids = append(ids, p.ID)
	}
	return ids
}

// MarshalJSON writes the known keys plus every Extra key.
func (d ProvidersDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+len(knownKeys))
	for k, v := range d.Extra {
		if !knownKeys[k] {
			out[k] = v
		}
	}

	providers := d.Providers
	if providers == nil {
		providers = []fields.ProviderDeclaration{}
	}
	out["version"] = d.Version
	out["providers"] = providers
	if d.Metadata != nil {
		out["metadata"] = d.Metadata
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the known keys and keeps the rest in Extra.
// It does not validate; use Checker for untrusted input.
func (d *ProvidersDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var known struct {
		Version   string                       `json:"version"`
		Providers []fields.ProviderDeclaration `json:"providers"`
		Metadata  *Metadata                    `json:"metadata"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	d.Version = known.Version
	d.Providers = known.Providers
	d.Metadata = known.Metadata
	d.Extra = nil
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[k] = v
	}
	return nil
}
