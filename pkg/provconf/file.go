package provconf

import (
	"errors"
	"io"
	"time"

	"mercator-hq/provconf/pkg/document"
	provErrors "mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/format"
	"mercator-hq/provconf/pkg/source"
)

// FileReport is the formatted outcome of checking one document file.
type FileReport struct {
	Path     string                        `json:"path"`
	Format   source.Format                 `json:"format,omitempty"`
	Valid    bool                          `json:"valid"`
	Errors   []*provErrors.ValidationError `json:"errors"`
	Document *document.ProvidersDocument   `json:"-"`
	Duration time.Duration                 `json:"-"`
}

// CheckFile reads, parses and validates the document at path. Read and
// parse failures become formatted errors instead of Go errors, so one bad
// file never hides the report of another.
func (e *Engine) CheckFile(path string) FileReport {
	start := time.Now()
	doc, err := source.ReadFile(path)
	if err != nil {
		docFormat, _ := source.FormatFor(path)
		e.metrics.RecordDocumentLoad(string(docFormat), err)
		report := FileReport{Path: path, Format: docFormat}
		report.Errors = []*provErrors.ValidationError{e.loadError(err, path)}
		report.Duration = time.Since(start)
		return report
	}
	e.metrics.RecordDocumentLoad(string(doc.Format), nil)

	report := e.CheckDocument(doc)
	report.Duration = time.Since(start)
	return report
}

// CheckDocument validates an already parsed document.
func (e *Engine) CheckDocument(doc *source.Document) FileReport {
	start := time.Now()
	parsed, result := e.ValidateFile(doc.Tree)
	result = e.Format(result, nil)

	return FileReport{
		Path:     doc.Path,
		Format:   doc.Format,
		Valid:    result.Valid,
		Errors:   result.Errors,
		Document: parsed,
		Duration: time.Since(start),
	}
}

func (e *Engine) loadError(err error, path string) *provErrors.ValidationError {
	var parseErr *source.ParseError
	if errors.As(err, &parseErr) {
		return e.formatter.FormatJSONError(parseErr.Err, path, parseErr.Content)
	}
	if errors.Is(err, source.ErrUnsupportedFormat) {
		return &provErrors.ValidationError{
			File:    path,
			Code:    provErrors.CodeInvalidConfiguration,
			Message: err.Error(),
		}
	}
	return e.formatter.FormatFileError(err, path)
}

// RenderText writes the report in the human-readable form used by the CLI.
func (r FileReport) RenderText(w io.Writer) error {
	var msg string
	if r.Valid {
		msg = r.Path + ": " + format.CreateDeveloperMessage(nil) + "\n"
	} else {
		msg = r.Path + ": " + format.CreateDeveloperMessage(r.Errors)
	}
	_, err := io.WriteString(w, msg)
	return err
}
