package provconf

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/format"
	"mercator-hq/provconf/pkg/telemetry/logging"
	"mercator-hq/provconf/pkg/telemetry/metrics"
)

const providerJSON = `{
  "id": "openai",
  "name": "OpenAI",
  "models": {"gpt-4o": "GPT-4o"},
  "configuration": {
    "fields": [
      {"type": "secure-text", "id": "apiKey", "label": "API Key", "required": true, "minLength": 20, "pattern": "^sk-"},
      {"type": "text", "id": "baseUrl", "label": "Base URL", "defaultValue": "https://api.openai.com/v1"},
      {"type": "checkbox", "id": "streaming", "label": "Streaming", "defaultValue": true}
    ]
  }
}`

func providerTree(t *testing.T) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(providerJSON), &tree))
	return tree
}

func documentJSON() string {
	return `{"version": "1.0.0", "providers": [` + providerJSON + `]}`
}

func TestValidateProvider(t *testing.T) {
	provider, result := ValidateProvider(providerTree(t))
	require.True(t, result.Valid, "%v", result.Err())
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.ID)
	assert.Len(t, provider.Fields(), 3)

	assert.Equal(t, fields.Values{
		"apiKey":    "",
		"baseUrl":   "https://api.openai.com/v1",
		"streaming": true,
	}, DefaultValues(provider.Fields()))
}

func TestValidateProvider_DuplicateFieldIDs(t *testing.T) {
	tree := providerTree(t)
	items := tree["configuration"].(map[string]any)["fields"].([]any)
	items[1].(map[string]any)["id"] = "apiKey"

	provider, result := ValidateProvider(tree)
	assert.Nil(t, provider)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "configuration.fields", result.Errors[0].Path)
	assert.Contains(t, result.Errors[0].Message, "unique")
}

func TestConfigurationScenarios(t *testing.T) {
	apiKey := fields.SecureText{
		Common:    fields.Common{ID: "apiKey", Label: "API Key", Required: true},
		MinLength: fields.Int(20),
		Pattern:   "^sk-",
	}
	decls := []fields.FieldDeclaration{apiKey}

	missing := ValidateConfigurationValues(fields.Values{}, decls)
	assert.False(t, missing.Valid)
	require.Len(t, missing.Errors, 1)
	assert.Equal(t, errors.CodeRequiredFieldMissing, missing.Errors[0].Code)
	assert.Equal(t, "apiKey", missing.Errors[0].FieldID)

	ok := ValidateConfigurationValues(fields.Values{"apiKey": "sk-123456789012345678901"}, decls)
	assert.True(t, ok.Valid, "%v", ok.Err())

	partial := ValidatePartialConfigurationValues(fields.Values{}, decls)
	assert.True(t, partial.Valid)
}

func TestAssertProvider(t *testing.T) {
	provider, err := AssertProvider(providerTree(t))
	require.NoError(t, err)

	// A typed declaration round-trips through the structural check.
	again, err := AssertProvider(provider)
	require.NoError(t, err)
	assert.Equal(t, provider, again)

	again, err = AssertProvider(&provider)
	require.NoError(t, err)
	assert.Equal(t, provider.ID, again.ID)

	bad := providerTree(t)
	bad["id"] = "Open AI"
	_, err = AssertProvider(bad)
	require.Error(t, err)

	var list *errors.ErrorList
	require.ErrorAs(t, err, &list)
	assert.True(t, list.HasCode(errors.CodeInvalidProviderID))
}

func TestMustProvider(t *testing.T) {
	assert.NotPanics(t, func() { MustProvider(providerTree(t)) })

	bad := providerTree(t)
	delete(bad, "models")

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		list, ok := r.(*errors.ErrorList)
		require.True(t, ok, "expected *errors.ErrorList, got %T", r)
		assert.True(t, list.HasErrors())
	}()
	MustProvider(bad)
}

func TestValidateProviderID(t *testing.T) {
	assert.Nil(t, ValidateProviderID("azure-openai"))

	err := ValidateProviderID("Azure_OpenAI")
	require.NotNil(t, err)
	assert.Equal(t, errors.CodeInvalidProviderID, err.Code)
	assert.Equal(t, "Azure_OpenAI", err.Value)
}

func TestFindProvider(t *testing.T) {
	var tree any
	require.NoError(t, json.Unmarshal([]byte(documentJSON()), &tree))

	doc, result := ValidateFile(tree)
	require.True(t, result.Valid, "%v", result.Err())

	provider, verr := FindProvider(doc, "openai")
	require.Nil(t, verr)
	assert.Equal(t, "OpenAI", provider.Name)

	_, verr = FindProvider(doc, "openal")
	require.NotNil(t, verr)
	assert.Equal(t, errors.CodeProviderNotFound, verr.Code)
	assert.Equal(t, "Did you mean 'openai'?", verr.Suggestion)

	_, verr = FindProvider(nil, "openai")
	require.NotNil(t, verr)
	assert.Equal(t, errors.CodeProviderNotFound, verr.Code)
}

func TestEngine_RecordsMetricsAndLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Level: "debug", Writer: buf, Redact: true})
	require.NoError(t, err)

	collector := metrics.NewCollector(nil, nil)
	engine := New(Options{Logger: logger.Slog(), Metrics: collector})

	provider, result := engine.ValidateProvider(providerTree(t))
	require.True(t, result.Valid)

	result = engine.ValidateProviderValues(*provider, fields.Values{"apiKey": "short"}, true)
	assert.False(t, result.Valid)

	_, result = engine.ValidateField(map[string]any{"type": "radio", "id": "x", "label": "X"})
	assert.False(t, result.Valid)

	count, err := testutil.GatherAndCount(collector.Registry(), "provconf_validations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Contains(t, buf.String(), `"target":"partial_configuration"`)
	assert.Contains(t, buf.String(), `"provider":"openai"`)
}

func TestEngine_Format(t *testing.T) {
	decls := []fields.FieldDeclaration{
		fields.SecureText{Common: fields.Common{ID: "apiKey", Label: "API Key"}, Pattern: "^sk-"},
		fields.Text{Common: fields.Common{ID: "org", Label: "Org"}, Pattern: "^org-"},
	}
	raw := ValidateConfigurationValues(fields.Values{"apiKey": "nope", "org": "acme"}, decls)
	require.Len(t, raw.Errors, 2)

	dev := New(Options{Formatter: format.New(format.Config{Mode: format.ModeDevelopment})})
	formatted := dev.Format(raw, decls)
	assert.Nil(t, formatted.Errors[0].Value)
	assert.Equal(t, "acme", formatted.Errors[1].Value)

	prod := New(Options{})
	formatted = prod.Format(raw, decls)
	for _, e := range formatted.Errors {
		assert.Nil(t, e.Value)
	}

	valid := errors.NewResult(nil)
	assert.Equal(t, valid, prod.Format(valid, decls))
}

func TestEngine_CheckFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	collector := metrics.NewCollector(nil, nil)
	dev := New(Options{
		Formatter: format.New(format.Config{Mode: format.ModeDevelopment}),
		Metrics:   collector,
	})

	t.Run("valid", func(t *testing.T) {
		report := dev.CheckFile(write("ok.json", documentJSON()))
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		require.NotNil(t, report.Document)
		assert.Equal(t, []string{"openai"}, report.Document.ProviderIDs())
	})

	t.Run("syntax error", func(t *testing.T) {
		path := write("broken.json", "{\n  \"version\": \"1.0.0\",\n  \"providers\": }\n")
		report := dev.CheckFile(path)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, path, report.Errors[0].File)
		assert.Equal(t, 3, report.Errors[0].Line)
		assert.Equal(t, 16, report.Errors[0].Column)
	})

	t.Run("invalid document", func(t *testing.T) {
		report := dev.CheckFile(write("bad.yaml", "version: \"2.0.0\"\nproviders: []\n"))
		assert.False(t, report.Valid)
		var paths []string
		for _, e := range report.Errors {
			paths = append(paths, e.Path)
		}
		assert.ElementsMatch(t, []string{"providers", "version"}, paths)
	})

	t.Run("missing file in production", func(t *testing.T) {
		report := New(Options{}).CheckFile(filepath.Join(dir, "missing.json"))
		require.Len(t, report.Errors, 1)
		assert.Equal(t, format.MessageReadFailed, report.Errors[0].Message)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		report := dev.CheckFile(write("providers.toml", ""))
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0].Message, "unsupported format")
	})

	// json success, json error, yaml success and unknown error
	loads, err := testutil.GatherAndCount(collector.Registry(), "provconf_documents_loaded_total")
	require.NoError(t, err)
	assert.Equal(t, 4, loads)
}

func TestFileReport_RenderText(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, FileReport{Path: "p.json", Valid: true}.RenderText(buf))
	assert.Equal(t, "p.json: Validation successful\n", buf.String())

	buf.Reset()
	report := FileReport{Path: "p.json", Errors: []*errors.ValidationError{
		{Path: "version", Code: errors.CodeInvalidConfiguration, Message: "bad version"},
	}}
	require.NoError(t, report.RenderText(buf))
	assert.Contains(t, buf.String(), "p.json: Validation failed with 1 error(s):\n")
	assert.Contains(t, buf.String(), "version: bad version")
}
