package catalog

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/provconf"
)

func TestAll(t *testing.T) {
	assert.Equal(t, []string{"anthropic", "openai", "openai-compatible"}, IDs())

	all := All()
	require.Len(t, all, 3)

	// All returns a copy.
	all[0].ID = "changed"
	assert.Equal(t, "anthropic", All()[0].ID)
}

func TestBuiltinsAreValid(t *testing.T) {
	for _, p := range All() {
		t.Run(p.ID, func(t *testing.T) {
			_, err := provconf.AssertProvider(p)
			assert.NoError(t, err)
			assert.NotEmpty(t, p.Models)
			assert.Nil(t, provconf.ValidateProviderID(p.ID))
		})
	}
}

func TestGet(t *testing.T) {
	openai, err := Get("openai")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", openai.Name)
	assert.Equal(t, []string{"apiKey", "baseUrl", "organization", "streaming"}, fields.IDs(openai.Fields()))
	assert.True(t, fields.IsSecret(openai.Fields()[0]))

	_, err = Get("opena")
	require.Error(t, err)

	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, errors.CodeProviderNotFound, verr.Code)
	assert.Equal(t, "Did you mean 'openai'?", verr.Suggestion)
}

func TestBuiltinValues(t *testing.T) {
	tests := []struct {
		provider string
		values   fields.Values
		codes    []errors.Code
	}{
		{
			provider: "openai",
			values:   fields.Values{"apiKey": "sk-proj-abcdefghijklmnopqrstuvwxyz"},
		},
		{
			provider: "openai",
			values:   fields.Values{"apiKey": "sk-ant-REDACTED", "organization": "acme"},
			codes:    []errors.Code{errors.CodePatternMismatch},
		},
		{
			provider: "anthropic",
			values:   fields.Values{"apiKey": "sk-proj-abcdefghijklmnopqrstuvwxyz"},
			codes:    []errors.Code{errors.CodePatternMismatch},
		},
		{
			provider: "anthropic",
			values:   fields.Values{"apiKey": "sk-ant-REDACTED", "apiVersion": "2023-06-01"},
		},
		{
			provider: "openai-compatible",
			values:   fields.Values{"baseUrl": "http://localhost:8000/v1"},
			codes:    []errors.Code{errors.CodeRequiredFieldMissing},
		},
		{
			provider: "openai-compatible",
			values:   fields.Values{"baseUrl": "http://localhost:8000/v1", "model": "llama-3-8b", "streaming": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := Get(tt.provider)
			require.NoError(t, err)

			result := provconf.ValidateConfigurationValues(tt.values, p.Fields())
			var codes []errors.Code
			for _, e := range result.Errors {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestDefaultValuesNeedOnlySecrets(t *testing.T) {
	openai, err := Get("openai")
	require.NoError(t, err)

	values := provconf.DefaultValues(openai.Fields())
	assert.Equal(t, "https://api.openai.com/v1", values["baseUrl"])
	assert.Equal(t, true, values["streaming"])

	result := provconf.ValidateConfigurationValues(values, openai.Fields())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "apiKey", result.Errors[0].FieldID)
	assert.Equal(t, errors.CodeRequiredFieldMissing, result.Errors[0].Code)
}

func TestDocument(t *testing.T) {
	data, err := json.Marshal(Document())
	require.NoError(t, err)

	var tree any
	require.NoError(t, json.Unmarshal(data, &tree))

	doc, result := provconf.ValidateFile(tree)
	require.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Equal(t, IDs(), doc.ProviderIDs())
}
