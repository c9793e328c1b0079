package logging

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"mercator-hq/provconf/pkg/config"
	"mercator-hq/provconf/pkg/fields"
)

// Mask replaces every redacted secret.
const Mask = "***"

// Built-in pattern names.
const (
	PatternAPIKey      = "api_key"
	PatternBearerToken = "bearer_token"
	PatternPassword    = "password"
)

var defaultPatterns = []config.RedactPattern{
	{Name: PatternAPIKey, Pattern: `sk-(?:ant-)?[A-Za-z0-9_-]{4,}`, Replacement: "sk-" + Mask},
	{Name: PatternBearerToken, Pattern: `Bearer\s+[A-Za-z0-9\-._~+/]+=*`, Replacement: "Bearer " + Mask},
	{Name: PatternPassword, Pattern: `(?i)(password|passwd|pwd)\s*[:=]\s*\S+`, Replacement: "$1=" + Mask},
}

// sensitiveKeys marks attribute keys whose values are always masked.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"secret", "token", "api_key", "apikey",
	"auth", "credential", "private_key", "privatekey",
}

type compiledPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Redactor masks secrets in log attributes and configuration values.
type Redactor struct {
	patterns []compiledPattern
}

// NewRedactor compiles the built-in patterns followed by custom.
func NewRedactor(custom []config.RedactPattern) (*Redactor, error) {
	r := &Redactor{}
	for _, p := range append(append([]config.RedactPattern{}, defaultPatterns...), custom...) {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p.Name, err)
		}
		r.patterns = append(r.patterns, compiledPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}
	return r, nil
}

// Patterns returns the names of the compiled patterns in application order.
func (r *Redactor) Patterns() []string {
	names := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		names[i] = p.name
	}
	return names
}

// RedactString replaces every pattern match in value.
func (r *Redactor) RedactString(value string) string {
	if r == nil || value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr masks the value of a sensitive key and applies the patterns to
// string values. Groups are redacted recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	if r == nil {
		return a
	}

	v := a.Value.Resolve()
	switch {
	case v.Kind() == slog.KindGroup:
		group := v.Group()
		redacted := make([]slog.Attr, len(group))
		for i, ga := range group {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case IsSensitiveKey(a.Key):
		return slog.String(a.Key, Mask)
	case v.Kind() == slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case v.Kind() == slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// RedactValues returns a copy of values in which every non-empty secure-text
// value, and every string value under a sensitive key, is replaced by Mask.
func (r *Redactor) RedactValues(values fields.Values, decls []fields.FieldDeclaration) fields.Values {
	return RedactValues(values, decls)
}

// RedactValues is the redactor-independent form of (*Redactor).RedactValues.
func RedactValues(values fields.Values, decls []fields.FieldDeclaration) fields.Values {
	if values == nil {
		return nil
	}

	out := make(fields.Values, len(values))
	for id, value := range values {
		s, isString := value.(string)
		secret := IsSensitiveKey(id)
		if decl, ok := fields.FieldByID(decls, id); ok {
			secret = fields.IsSecret(decl)
		}
		if secret && isString && s != "" {
			out[id] = Mask
			continue
		}
		out[id] = value
	}
	return out
}

// IsSensitiveKey reports whether key names a secret.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactAPIKey keeps only the first four characters of apiKey.
func RedactAPIKey(apiKey string) string {
	if len(apiKey) <= 4 {
		return Mask
	}
	return apiKey[:4] + Mask
}
