// Package logging provides structured logging with secret redaction.
//
// The logger wraps log/slog. When redaction is enabled every attribute that
// reaches the handler, including attributes added through With and
// attributes logged by packages that only see the *slog.Logger returned by
// Slog, passes through a Redactor:
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Redact: true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	logger.Info("values checked",
//	    "provider", "openai",
//	    "api_key", "sk-abc123", // logged as ***
//	)
//
// Configuration values are redacted with RedactValues, which masks every
// secure-text field of a provider before the values are logged or printed.
//
// Run, document and provider identifiers stored in a context with WithRunID,
// WithDocument and WithProvider are added to records logged through the
// *Context methods.
package logging
