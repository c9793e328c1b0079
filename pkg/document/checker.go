package document

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/schema"
)

// CheckerConfig configures a Checker.
type CheckerConfig struct {
	// CurrentVersion is the supported schema version.
	// Default: CurrentSchemaVersion
	CurrentVersion string

	// Logger records migration decisions. Default: discard.
	Logger *slog.Logger
}

// Checker validates providers documents. It holds no mutable state.
type Checker struct {
	current string
	logger  *slog.Logger
}

// NewChecker creates a Checker, filling in defaults.
func NewChecker(cfg CheckerConfig) *Checker {
	if cfg.CurrentVersion == "" {
		cfg.CurrentVersion = CurrentSchemaVersion
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{current: cfg.CurrentVersion, logger: cfg.Logger}
}

// CurrentVersion returns the supported schema version.
func (c *Checker) CurrentVersion() string {
	return c.current
}

// Validate checks an untyped document tree. Every provider is validated even
// when an earlier one fails; provider issues are reported under
// "providers.<index>". The document is nil whenever the result is invalid.
func (c *Checker) Validate(raw any) (*ProvidersDocument, errors.Result) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewResult([]*errors.ValidationError{{
			Code:     errors.CodeInvalidConfiguration,
			Message:  "Providers document must be an object",
			Expected: "object",
		}})
	}

	list := errors.NewErrorList()
	list.AddAll(schema.ToValidationErrors(schema.ValidateShape(schema.ShapeDocument, obj)))

	version, isString := obj["version"].(string)
	if isString {
		switch {
		case !ValidVersion(version):
			list.Add(versionError(fmt.Sprintf("Invalid schema version '%s': expected MAJOR.MINOR.PATCH", version)))
		case !IsCompatible(version, c.current):
			list.Add(versionError(fmt.Sprintf("Schema version %s is not compatible with supported version %s", version, c.current)))
		}
	}

	items, _ := obj["providers"].([]any)
	providers := make([]fields.ProviderDeclaration, 0, len(items))
	for i, item := range items {
		decl, issues := schema.ValidateProvider(item)
		if len(issues) > 0 {
			list.AddAll(schema.ToValidationErrors(schema.WithPrefix(issues, "providers", strconv.Itoa(i))))
			continue
		}
		providers = append(providers, *decl)
	}

	if dup := duplicateProviderIDs(items); len(dup) > 0 {
		list.Add(&errors.ValidationError{
			FieldID: "providers",
			Path:    "providers",
			Code:    errors.CodeDuplicateInstanceID,
			Message: fmt.Sprintf("Provider ids must be unique within a document. Duplicated: %s", strings.Join(dup, ", ")),
		})
	}

	if list.HasErrors() {
		return nil, errors.NewResult(list.Errors)
	}

	if version != c.current {
		c.Migrate(obj, version, c.current)
	}

	doc := &ProvidersDocument{Version: version, Providers: providers}
	if meta, ok := obj["metadata"]; ok && meta != nil {
		doc.Metadata = &Metadata{}
		if err := fields.Decode(meta, doc.Metadata); err != nil {
			return nil, errors.NewResult([]*errors.ValidationError{{
				FieldID: "metadata",
				Path:    "metadata",
				Code:    errors.CodeInvalidConfiguration,
				Message: err.Error(),
			}})
		}
	}
	for k, v := range obj {
		if knownKeys[k] {
			continue
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]any)
		}
		doc.Extra[k] = v
	}

	return doc, errors.NewResult(nil)
}

func versionError(msg string) *errors.ValidationError {
	return &errors.ValidationError{
		FieldID:  "version",
		Path:     "version",
		Code:     errors.CodeInvalidConfiguration,
		Message:  msg,
		Expected: "MAJOR.MINOR.PATCH",
	}
}

// MigrationReport describes the outcome of Migrate.
type MigrationReport struct {
	From    string
	To      string
	Applied bool
}

// Migrate upgrades a document tree from one schema version to another.
// No migrations exist yet, so data is returned unchanged.
func (c *Checker) Migrate(data any, from, to string) (any, MigrationReport) {
	c.logger.Info("no schema migration applied",
		"from_version", from,
		"to_version", to,
	)
	return data, MigrationReport{From: from, To: to, Applied: false}
}

func duplicateProviderIDs(items []any) []string {
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
