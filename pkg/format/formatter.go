package format

import (
	"fmt"
	"strings"

	provErrors "mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/schema"
)

// Mode selects how much detail formatted errors expose.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// DefaultMaxErrorCount is the cap used when Config.MaxErrorCount is zero.
const DefaultMaxErrorCount = 10

// ParseMode parses "development"/"dev" or "production"/"prod".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeProduction, nil
	default:
		return "", fmt.Errorf("invalid mode %q (must be development or production)", s)
	}
}

// Config configures a Formatter.
type Config struct {
	// Mode defaults to ModeProduction.
	Mode Mode

	// MaxErrorCount caps formatted lists. Default: DefaultMaxErrorCount
	MaxErrorCount int
}

// Formatter formats validation errors. It is immutable.
type Formatter struct {
	mode     Mode
	maxCount int
}

// New creates a Formatter from cfg, filling in defaults.
func New(cfg Config) *Formatter {
	if cfg.Mode != ModeDevelopment {
		cfg.Mode = ModeProduction
	}
	if cfg.MaxErrorCount <= 0 {
		cfg.MaxErrorCount = DefaultMaxErrorCount
	}
	return &Formatter{mode: cfg.Mode, maxCount: cfg.MaxErrorCount}
}

// Mode returns the formatter's mode.
func (f *Formatter) Mode() Mode { return f.mode }

// MaxErrorCount returns the formatter's cap.
func (f *Formatter) MaxErrorCount() int { return f.maxCount }

func (f *Formatter) production() bool { return f.mode == ModeProduction }

// FormatSchemaIssues converts structural issues into field errors. When the
// issue points at a declared field, the message names the field's label;
// otherwise the library message is kept (simplified in production).
func (f *Formatter) FormatSchemaIssues(issues []schema.RawIssue, decls []fields.FieldDeclaration) []*provErrors.ValidationError {
	out := make([]*provErrors.ValidationError, 0, len(issues))
	for _, issue := range issues {
		verr := issue.ToValidationError()

		if decl, ok := fields.FieldByID(decls, verr.FieldID); ok {
			verr.Message = labelMessage(verr.Code, decl.Base().Label)
		} else if f.production() {
			verr.Message = SimplifyMessage(verr.Message)
		}
		out = append(out, verr)
	}
	return f.Truncate(out)
}

func labelMessage(code provErrors.Code, label string) string {
	switch code {
	case provErrors.CodeRequiredFieldMissing:
		return label + " is required"
	case provErrors.CodePatternMismatch:
		return label + " format is invalid"
	default:
		return label + " must be a valid value"
	}
}

// FormatErrors prepares value and document errors for display. Production
// simplifies messages and drops every value. Development keeps values except
// for secure-text fields. The input is not modified.
func (f *Formatter) FormatErrors(errs []*provErrors.ValidationError, decls []fields.FieldDeclaration) []*provErrors.ValidationError {
	out := make([]*provErrors.ValidationError, 0, len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		c := *e
		if f.production() {
			c.Message = SimplifyMessage(c.Message)
			c.Value = nil
		} else if decl, ok := fields.FieldByID(decls, c.FieldID); ok && fields.IsSecret(decl) {
			c.Value = nil
		}
		out = append(out, &c)
	}
	return f.Truncate(out)
}

// Truncate caps errs at MaxErrorCount entries and appends one TRUNCATED
// entry counting the rest.
func (f *Formatter) Truncate(errs []*provErrors.ValidationError) []*provErrors.ValidationError {
	if len(errs) <= f.maxCount {
		return errs
	}
	out := make([]*provErrors.ValidationError, 0, f.maxCount+1)
	out = append(out, errs[:f.maxCount]...)
	return append(out, &provErrors.ValidationError{
		Code:    provErrors.CodeTruncated,
		Message: fmt.Sprintf("...and %d more errors", len(errs)-f.maxCount),
	})
}
