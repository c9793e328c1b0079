package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
)

// ErrUnsupportedFormat is wrapped by FormatFor and Parse for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Extensions lists the file extensions FormatFor recognizes.
var Extensions = []string{".json", ".jsonc", ".yaml", ".yml"}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonc":
		return FormatJSONC, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: file extension %q (expected one of %s)", ErrUnsupportedFormat, filepath.Ext(path), strings.Join(Extensions, ", "))
	}
}

// ParseError is a syntax error in a document.
type ParseError struct {
	Path    string
	Format  Format
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes data into an untyped tree. path is only used for errors.
func Parse(data []byte, format Format, path string) (any, error) {
	var (
		tree any
		err  error
	)

	switch format {
	case FormatJSON:
		tree, err = parseJSON(data)
	case FormatJSONC:
		tree, err = parseJSONC(data)
	case FormatYAML:
		tree, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Content: string(data), Err: err}
	}
	return tree, nil
}

func parseJSON(data []byte) (any, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// parseJSONC strips comments and trailing commas. Standardize keeps every
// byte offset, so decoder offsets still point into the original content.
func parseJSONC(data []byte) (any, error) {
	v, err := hujson.Parse(bytes.Clone(data))
	if err != nil {
		return nil, err
	}
	v.Standardize()
	return parseJSON(v.Pack())
}

func parseYAML(data []byte) (any, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return normalize(tree), nil
}

// normalize converts YAML specific values into their JSON equivalents.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}

// ToJSON renders data in format as standard JSON.
func ToJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatJSONC:
		return hujson.Standardize(bytes.Clone(data))
	default:
		tree, err := Parse(data, format, "")
		if err != nil {
			return nil, err
		}
		return json.Marshal(tree)
	}
}
