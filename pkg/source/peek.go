package source

import (
	"github.com/tidwall/gjson"
)

// Summary is a cheap view of a document that does not validate it.
type Summary struct {
	Version   string            `json:"version"`
	Providers []ProviderSummary `json:"providers"`
	Extra     []string          `json:"extraKeys,omitempty"`
}

// ProviderSummary describes one provider entry as found in the document.
type ProviderSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ModelCount int    `json:"modelCount"`
	FieldCount int    `json:"fieldCount"`
}

// Peek reads the version and provider headers of a JSON document without
// decoding it. ok is false when data is not valid JSON.
func Peek(data []byte) (summary Summary, ok bool) {
	if !gjson.ValidBytes(data) {
		return Summary{}, false
	}

	root := gjson.ParseBytes(data)
	summary.Version = root.Get("version").String()

	root.Get("providers").ForEach(func(_, p gjson.Result) bool {
		models := 0
		p.Get("models").ForEach(func(_, _ gjson.Result) bool {
			models++
			return true
		})
		summary.Providers = append(summary.Providers, ProviderSummary{
			ID:         p.Get("id").String(),
			Name:       p.Get("name").String(),
			ModelCount: models,
			FieldCount: int(p.Get("configuration.fields.#").Int()),
		})
		return true
	})

	root.ForEach(func(key, _ gjson.Result) bool {
		switch key.String() {
		case "version", "providers", "metadata":
		default:
			summary.Extra = append(summary.Extra, key.String())
		}
		return true
	})
	return summary, true
}

// FieldIDs returns the declared field ids of one provider.
func FieldIDs(data []byte, providerID string) []string {
	var ids []string
	gjson.GetBytes(data, "providers").ForEach(func(_, p gjson.Result) bool {
		if p.Get("id").String() != providerID {
			return true
		}
		for _, id := range p.Get("configuration.fields.#.id").Array() {
			ids = append(ids, id.String())
		}
		return false
	})
	return ids
}

// PeekDocument converts doc to JSON and peeks at it.
func PeekDocument(doc *Document) (Summary, bool) {
	data, err := ToJSON(doc.Content, doc.Format)
	if err != nil {
		return Summary{}, false
	}
	return Peek(data)
}
