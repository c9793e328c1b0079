package schema

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"mercator-hq/provconf/pkg/fields"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Shape names one of the embedded base-shape schemas.
type Shape string

const (
	ShapeText       Shape = "text"
	ShapeSecureText Shape = "secure-text"
	ShapeCheckbox   Shape = "checkbox"
	ShapeProvider   Shape = "provider"
	ShapeDocument   Shape = "document"
)

var allShapes = []Shape{ShapeText, ShapeSecureText, ShapeCheckbox, ShapeProvider, ShapeDocument}

var (
	compileOnce sync.Once
	compiled    map[Shape]*gojsonschema.Schema
)

// loadShapes compiles every embedded schema. A broken embedded schema is a
// build defect, so it panics.
func loadShapes() {
	compiled = make(map[Shape]*gojsonschema.Schema, len(allShapes))
	for _, shape := range allShapes {
		data, err := schemaFiles.ReadFile("schemas/" + string(shape) + ".json")
		if err != nil {
			panic(fmt.Sprintf("schema: missing embedded schema %q: %v", shape, err))
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			panic(fmt.Sprintf("schema: invalid embedded schema %q: %v", shape, err))
		}
		compiled[shape] = s
	}
}

// SchemaSource returns the raw JSON Schema text of shape.
func SchemaSource(shape Shape) ([]byte, error) {
	return schemaFiles.ReadFile("schemas/" + string(shape) + ".json")
}

func shapeForKind(kind fields.Kind) Shape {
	switch kind {
	case fields.KindSecureText:
		return ShapeSecureText
	case fields.KindCheckbox:
		return ShapeCheckbox
	default:
		return ShapeText
	}
}

// ValidateShape checks raw against the embedded base-shape schema and returns
// the violations sorted by path. It performs no refinements.
func ValidateShape(shape Shape, raw any) []RawIssue {
	compileOnce.Do(loadShapes)

	s, ok := compiled[shape]
	if !ok {
		return []RawIssue{customIssue("", fmt.Sprintf("Unknown schema %q", shape))}
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return []RawIssue{customIssue("", fmt.Sprintf("Declaration could not be read: %v", err))}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]RawIssue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, fromJSONSchema(re))
	}
	sortIssues(issues)
	return issues
}

// fromJSONSchema adapts one gojsonschema error.
func fromJSONSchema(re gojsonschema.ResultError) RawIssue {
	issue := RawIssue{
		Code:    issueCodeFor(re.Type()),
		Path:    contextPath(re.Context()),
		Message: re.Description(),
	}

	details := re.Details()
	switch issue.Code {
	case IssueRequired:
		if prop, ok := details["property"].(string); ok {
			issue.Path = append(issue.Path, prop)
		}
	case IssueInvalidType:
		issue.Expected = detailString(details, "expected")
		issue.Received = detailString(details, "given")
	}
	return issue
}

func issueCodeFor(errType string) IssueCode {
	switch errType {
	case "required":
		return IssueRequired
	case "invalid_type":
		return IssueInvalidType
	case "string_gte", "array_min_items", "array_min_properties", "number_gte", "number_gt":
		return IssueTooSmall
	case "string_lte", "array_max_items", "array_max_properties", "number_lte", "number_lt":
		return IssueTooBig
	case "pattern", "format":
		return IssueInvalidString
	default:
		return IssueCustom
	}
}

// contextPath turns "(root).configuration.fields.0" into its segments.
func contextPath(ctx *gojsonschema.JsonContext) []string {
	if ctx == nil {
		return nil
	}
	segments := strings.Split(ctx.String(), ".")
	if len(segments) > 0 && segments[0] == gojsonschema.STRING_CONTEXT_ROOT {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}

func detailString(details gojsonschema.ErrorDetails, key string) string {
	if v, ok := details[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
