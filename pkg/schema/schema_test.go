package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
)

// parse decodes JSON into the untyped tree callers normally hand us.
func parse(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad test JSON: %v", err)
	}
	return v
}

func paths(issues []RawIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.PathString())
	}
	return out
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPaths []string
		wantCodes []errors.Code
	}{
		{
			name:  "valid text",
			input: `{"type":"text","id":"baseUrl","label":"Base URL","defaultValue":"http://x","minLength":1,"maxLength":200,"pattern":"^https?://"}`,
		},
		{
			name:  "valid secure text",
			input: `{"type":"secure-text","id":"apiKey","label":"API Key","required":true,"minLength":20,"pattern":"^sk-"}`,
		},
		{
			name:  "valid checkbox",
			input: `{"type":"checkbox","id":"stream_mode","label":"Streaming","defaultValue":true}`,
		},
		{
			name:      "unknown type",
			input:     `{"type":"number","id":"n","label":"N"}`,
			wantPaths: []string{"type"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration},
		},
		{
			name:      "missing type",
			input:     `{"id":"n","label":"N"}`,
			wantPaths: []string{"type"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration},
		},
		{
			name:      "missing label",
			input:     `{"type":"text","id":"baseUrl"}`,
			wantPaths: []string{"label"},
			wantCodes: []errors.Code{errors.CodeRequiredFieldMissing},
		},
		{
			name:      "empty id is too small",
			input:     `{"type":"text","id":"","label":"X"}`,
			wantPaths: []string{"id"},
			wantCodes: []errors.Code{errors.CodeRequiredFieldMissing},
		},
		{
			name:      "wrong attribute types",
			input:     `{"type":"checkbox","id":"c","label":"C","defaultValue":"yes","required":"no"}`,
			wantPaths: []string{"defaultValue", "required"},
			wantCodes: []errors.Code{errors.CodeInvalidFieldType, errors.CodeInvalidFieldType},
		},
		{
			name:      "negative length",
			input:     `{"type":"text","id":"t","label":"T","maxLength":-1}`,
			wantPaths: []string{"maxLength"},
			wantCodes: []errors.Code{errors.CodeRequiredFieldMissing},
		},
		{
			name:      "huge length bound",
			input:     `{"type":"text","id":"t","label":"T","minLength":1e20,"maxLength":5}`,
			wantPaths: []string{"minLength"},
			wantCodes: []errors.Code{errors.CodeValueTooLong},
		},
		{
			name:      "huge secure text length bound",
			input:     `{"type":"secure-text","id":"s","label":"S","maxLength":4294967296}`,
			wantPaths: []string{"maxLength"},
			wantCodes: []errors.Code{errors.CodeValueTooLong},
		},
		{
			name:      "bad id syntax",
			input:     `{"type":"text","id":"1st","label":"First"}`,
			wantPaths: []string{"id"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration},
		},
		{
			name:      "secure text default",
			input:     `{"type":"secure-text","id":"apiKey","label":"API Key","defaultValue":"sk-leaked"}`,
			wantPaths: []string{"defaultValue"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration},
		},
		{
			name:      "length bounds and pattern fire together",
			input:     `{"type":"text","id":"t","label":"T","minLength":10,"maxLength":5,"pattern":"(unclosed"}`,
			wantPaths: []string{"minLength", "pattern"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration, errors.CodeInvalidConfiguration},
		},
		{
			name:      "lookahead is not supported",
			input:     `{"type":"secure-text","id":"pw","label":"PW","pattern":"^(?=.*[A-Z]).+$"}`,
			wantPaths: []string{"pattern"},
			wantCodes: []errors.Code{errors.CodeInvalidConfiguration},
		},
		{
			name:      "not an object",
			input:     `"text"`,
			wantPaths: []string{""},
			wantCodes: []errors.Code{errors.CodeInvalidFieldType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, issues := ValidateField(parse(t, tt.input))

			if len(tt.wantPaths) == 0 {
				if len(issues) > 0 {
					t.Fatalf("unexpected issues: %+v", issues)
				}
				if decl == nil {
					t.Fatal("expected a declaration")
				}
				return
			}

			if decl != nil {
				t.Errorf("expected nil declaration, got %#v", decl)
			}
			if diff := cmp.Diff(tt.wantPaths, paths(issues)); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
			var codes []errors.Code
			for _, i := range issues {
				codes = append(codes, i.ErrorCode())
			}
			if diff := cmp.Diff(tt.wantCodes, codes); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateField_UnknownTypeNamesAllowedSet(t *testing.T) {
	_, issues := ValidateField(map[string]any{"type": "chekbox", "id": "x", "label": "X"})
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	msg := issues[0].Message
	if !strings.Contains(msg, "'text', 'secure-text', 'checkbox'") {
		t.Errorf("message should name the allowed set: %q", msg)
	}
	if !strings.Contains(msg, "Did you mean 'checkbox'?") {
		t.Errorf("message should suggest checkbox: %q", msg)
	}
}

func TestValidateField_InvalidTypeHints(t *testing.T) {
	_, issues := ValidateField(parse(t, `{"type":"text","id":"t","label":"T","minLength":"5"}`))
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", issues)
	}
	if issues[0].Code != IssueInvalidType {
		t.Errorf("Code = %s, want %s", issues[0].Code, IssueInvalidType)
	}
	if issues[0].Expected != "integer" || issues[0].Received != "string" {
		t.Errorf("hints = %q/%q, want integer/string", issues[0].Expected, issues[0].Received)
	}
}

func TestValidateField_DecodesYAMLStyleTrees(t *testing.T) {
	// yaml.v3 yields int, not float64.
	decl, issues := ValidateField(map[string]any{
		"type": "text", "id": "org", "label": "Organization", "minLength": 2, "maxLength": 40,
	})
	if len(issues) > 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	text := decl.(fields.Text)
	if *text.MinLength != 2 || *text.MaxLength != 40 {
		t.Errorf("bounds = %d..%d, want 2..40", *text.MinLength, *text.MaxLength)
	}
}

const validProvider = `{
  "id": "openai",
  "name": "OpenAI",
  "models": {"gpt-4o": "GPT-4o"},
  "configuration": {
    "fields": [
      {"type": "secure-text", "id": "apiKey", "label": "API Key", "required": true, "minLength": 20, "pattern": "^sk-"},
      {"type": "text", "id": "baseUrl", "label": "Base URL", "defaultValue": "https://api.openai.com/v1"},
      {"type": "checkbox", "id": "streaming", "label": "Streaming", "defaultValue": true}
    ]
  },
  "metadata": {"displayName": "OpenAI", "capabilities": {"streaming": true}}
}`

func TestValidateProvider_Valid(t *testing.T) {
	decl, issues := ValidateProvider(parse(t, validProvider))
	if len(issues) > 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}

	want := &fields.ProviderDeclaration{
		ID:     "openai",
		Name:   "OpenAI",
		Models: map[string]string{"gpt-4o": "GPT-4o"},
		Configuration: fields.ProviderConfiguration{Fields: []fields.FieldDeclaration{
			fields.SecureText{
				Common:    fields.Common{ID: "apiKey", Label: "API Key", Required: true},
				MinLength: fields.Int(20),
				Pattern:   "^sk-",
			},
			fields.Text{
				Common:       fields.Common{ID: "baseUrl", Label: "Base URL"},
				DefaultValue: fields.String("https://api.openai.com/v1"),
			},
			fields.Checkbox{
				Common:       fields.Common{ID: "streaming", Label: "Streaming"},
				DefaultValue: fields.Bool(true),
			},
		}},
		Metadata: &fields.ProviderMetadata{DisplayName: "OpenAI", Capabilities: map[string]bool{"streaming": true}},
	}
	if diff := cmp.Diff(want, decl); diff != "" {
		t.Errorf("declaration mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateProvider_DuplicateFieldIDs(t *testing.T) {
	raw := parse(t, `{
	  "id": "openai", "name": "OpenAI", "models": {"gpt-4o": "GPT-4o"},
	  "configuration": {"fields": [
	    {"type": "secure-text", "id": "apiKey", "label": "API Key"},
	    {"type": "text", "id": "apiKey", "label": "API Key again"}
	  ]}
	}`)

	decl, issues := ValidateProvider(raw)
	if decl != nil {
		t.Error("expected nil declaration")
	}
	if len(issues) != 1 {
		t.Fatalf("expected exactly 1 issue, got %+v", issues)
	}
	if got := issues[0].PathString(); got != "configuration.fields" {
		t.Errorf("path = %q, want configuration.fields", got)
	}
	if !strings.Contains(issues[0].Message, "unique") || !strings.Contains(issues[0].Message, "apiKey") {
		t.Errorf("message should mention uniqueness and the id: %q", issues[0].Message)
	}

	verr := issues[0].ToValidationError()
	if verr.FieldID != "fields" || verr.Code != errors.CodeInvalidConfiguration {
		t.Errorf("converted = %+v", verr)
	}
}

func TestValidateProvider_CollectsEverything(t *testing.T) {
	raw := parse(t, `{
	  "id": "Open AI", "name": "OpenAI", "models": {},
	  "configuration": {"fields": [
	    {"type": "text", "id": "ok", "label": "OK"},
	    {"type": "text", "id": "noLabel"},
	    {"type": "radio", "id": "r", "label": "R"}
	  ]}
	}`)

	_, issues := ValidateProvider(raw)

	wantPaths := []string{
		"configuration.fields.1.label",
		"configuration.fields.2.type",
		"id",
		"models",
	}
	if diff := cmp.Diff(wantPaths, paths(issues)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if issues[2].ErrorCode() != errors.CodeInvalidProviderID {
		t.Errorf("provider id code = %s", issues[2].ErrorCode())
	}
	if issues[3].ErrorCode() != errors.CodeInvalidConfiguration {
		t.Errorf("models code = %s", issues[3].ErrorCode())
	}

	t.Run("refinements run alongside base-shape issues", func(t *testing.T) {
		_, issues := ValidateProvider(parse(t, `{"id": "Bad ID", "name": "", "models": {}, "configuration": {"fields": []}}`))

		got := make([]string, 0, len(issues))
		for _, issue := range issues {
			got = append(got, issue.PathString()+"="+string(issue.ErrorCode()))
		}
		want := []string{
			"name=REQUIRED_FIELD_MISSING",
			"id=INVALID_PROVIDER_ID",
			"models=INVALID_CONFIGURATION",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("issues mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("mistyped attributes are left to the base shape", func(t *testing.T) {
		_, issues := ValidateProvider(parse(t, `{"id": 7, "name": "N", "models": [], "configuration": {"fields": []}}`))

		wantPaths := []string{"id", "models"}
		if diff := cmp.Diff(wantPaths, paths(issues)); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}
		for _, issue := range issues {
			if issue.ErrorCode() != errors.CodeInvalidFieldType {
				t.Errorf("%v code = %s", issue.Path, issue.ErrorCode())
			}
		}
	})
}

func TestValidateProvider_BaseShape(t *testing.T) {
	_, issues := ValidateProvider(parse(t, `{"name": "", "models": {"m": 1}}`))

	wantPaths := []string{"configuration", "id", "models.m", "name"}
	if diff := cmp.Diff(wantPaths, paths(issues)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	_, issues = ValidateProvider([]any{})
	if len(issues) != 1 || issues[0].ErrorCode() != errors.CodeInvalidFieldType {
		t.Errorf("non-object provider: %+v", issues)
	}
}

func TestValidateProvider_Idempotent(t *testing.T) {
	inputs := []string{
		validProvider,
		`{"id": "X", "models": {}, "configuration": {"fields": [{"type": "text"}, {"type": "text"}]}}`,
	}
	for _, in := range inputs {
		raw := parse(t, in)
		d1, i1 := ValidateProvider(raw)
		d2, i2 := ValidateProvider(raw)
		if diff := cmp.Diff(i1, i2); diff != "" {
			t.Errorf("issues differ between runs:\n%s", diff)
		}
		if diff := cmp.Diff(d1, d2); diff != "" {
			t.Errorf("declarations differ between runs:\n%s", diff)
		}
	}
}

func TestValidateProviderID(t *testing.T) {
	for id, want := range map[string]bool{
		"openai":       true,
		"azure-openai": true,
		"llama3":       true,
		"OpenAI":       false,
		"open_ai":      false,
		"":             false,
	} {
		if got := ValidateProviderID(id); got != want {
			t.Errorf("ValidateProviderID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestValidateShape_Document(t *testing.T) {
	issues := ValidateShape(ShapeDocument, parse(t, `{
	  "version": "1.0.0",
	  "providers": [],
	  "metadata": {"lastUpdated": "yesterday"},
	  "x-extension": {"kept": true}
	}`))

	want := []struct {
		path string
		code IssueCode
	}{
		{"metadata.lastUpdated", IssueInvalidString},
		{"providers", IssueTooSmall},
	}
	if len(issues) != len(want) {
		t.Fatalf("expected %d issues, got %+v", len(want), issues)
	}
	for i, w := range want {
		if issues[i].PathString() != w.path || issues[i].Code != w.code {
			t.Errorf("issue %d = %s/%s, want %s/%s", i, issues[i].PathString(), issues[i].Code, w.path, w.code)
		}
	}
}

func TestRawIssue_ErrorCode(t *testing.T) {
	tests := []struct {
		issue RawIssue
		want  errors.Code
	}{
		{RawIssue{Code: IssueTooSmall}, errors.CodeRequiredFieldMissing},
		{RawIssue{Code: IssueRequired}, errors.CodeRequiredFieldMissing},
		{RawIssue{Code: IssueTooBig}, errors.CodeValueTooLong},
		{RawIssue{Code: IssueInvalidType}, errors.CodeInvalidFieldType},
		{RawIssue{Code: IssueInvalidString}, errors.CodePatternMismatch},
		{RawIssue{Code: IssueCustom}, errors.CodeInvalidConfiguration},
		{RawIssue{Code: IssueCustom, Params: map[string]string{ParamErrorCode: "INVALID_PROVIDER_ID"}}, errors.CodeInvalidProviderID},
		{RawIssue{Code: IssueCustom, Params: map[string]string{ParamErrorCode: "BOGUS"}}, errors.CodeInvalidConfiguration},
		{RawIssue{Code: "something_else"}, errors.CodeInvalidConfiguration},
	}
	for _, tt := range tests {
		if got := tt.issue.ErrorCode(); got != tt.want {
			t.Errorf("%s/%v: ErrorCode() = %s, want %s", tt.issue.Code, tt.issue.Params, got, tt.want)
		}
	}
}

func TestWithPrefix(t *testing.T) {
	issues := []RawIssue{{Code: IssueRequired, Path: []string{"label"}}, {Code: IssueCustom}}
	got := WithPrefix(issues, "providers", "0")

	if diff := cmp.Diff([]string{"providers.0.label", "providers.0"}, paths(got)); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if issues[0].PathString() != "label" {
		t.Error("WithPrefix must not modify its input")
	}

	errs := ToValidationErrors(got)
	if errs[0].FieldID != "label" || errs[0].Path != "providers.0.label" {
		t.Errorf("converted = %+v", errs[0])
	}
	if errs[1].FieldID != "0" {
		t.Errorf("FieldID = %q, want last segment", errs[1].FieldID)
	}
}

func TestSchemaSource(t *testing.T) {
	for _, shape := range allShapes {
		data, err := SchemaSource(shape)
		if err != nil {
			t.Fatalf("SchemaSource(%s): %v", shape, err)
		}
		if !json.Valid(data) {
			t.Errorf("schema %s is not valid JSON", shape)
		}
	}
}

func TestIntAttr(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"json number", float64(20), 20, true},
		{"yaml int", 7, 7, true},
		{"int64", int64(3), 3, true},
		{"json.Number", json.Number("12"), 12, true},
		{"huge float", 1e20, 0, false},
		{"huge int64", int64(1) << 40, 0, false},
		{"fractional json.Number", json.Number("1.5"), 0, false},
		{"string", "12", 0, false},
		{"absent", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := intAttr(map[string]any{"minLength": tt.value}, "minLength")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("intAttr(%v) = %d, %v; want %d, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
