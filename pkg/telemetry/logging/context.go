package logging

import "context"

type contextKey string

const (
	// RunIDKey identifies one CLI invocation or watch cycle.
	RunIDKey contextKey = "run_id"

	// DocumentKey is the path of the document being validated.
	DocumentKey contextKey = "document"

	// ProviderKey is the provider id being validated.
	ProviderKey contextKey = "provider"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	runID, _ := ctx.Value(RunIDKey).(string)
	return runID
}

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentKey, path)
}

// GetDocument retrieves the document path from the context.
func GetDocument(ctx context.Context) string {
	path, _ := ctx.Value(DocumentKey).(string)
	return path
}

// WithProvider adds a provider id to the context.
func WithProvider(ctx context.Context, providerID string) context.Context {
	return context.WithValue(ctx, ProviderKey, providerID)
}

// GetProvider retrieves the provider id from the context.
func GetProvider(ctx context.Context) string {
	providerID, _ := ctx.Value(ProviderKey).(string)
	return providerID
}

// extractContextFields returns the identifiers stored in ctx as key-value
// pairs suitable for Logger.With.
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any
	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, string(RunIDKey), runID)
	}
	if path := GetDocument(ctx); path != "" {
		fields = append(fields, string(DocumentKey), path)
	}
	if providerID := GetProvider(ctx); providerID != "" {
		fields = append(fields, string(ProviderKey), providerID)
	}
	return fields
}
