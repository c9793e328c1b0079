package fields

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeField converts an untyped field tree (as produced by encoding/json or
// yaml.v3) into the variant selected by its "type" tag.
//
// DecodeField only maps attributes; it does not check constraints. Callers
// handling untrusted input should use schema.ValidateField instead.
func DecodeField(raw map[string]any) (FieldDeclaration, error) {
	tag, _ := raw["type"].(string)

	switch Kind(tag) {
	case KindText:
		var t Text
		if err := decode(raw, &t); err != nil {
			return nil, err
		}
		return t, nil
	case KindSecureText:
		var s SecureText
		if err := decode(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case KindCheckbox:
		var c Checkbox
		if err := decode(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown field type %q (expected one of %s)", tag, KindNames())
	}
}

// Decode maps an untyped tree onto out using the json tags of the target.
// Embedded structs are squashed and unknown keys are ignored.
func Decode(raw any, out any) error {
	return decode(raw, out)
}

func decode(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode field declaration: %w", err)
	}
	return nil
}
