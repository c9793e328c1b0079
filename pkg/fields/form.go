package fields

// FormEntry is the UI-facing state of one field.
type FormEntry struct {
	Kind Kind `json:"kind"`

	// Text holds the value of text and secure-text fields.
	Text string `json:"text,omitempty"`

	// Checked holds the value of checkbox fields.
	Checked bool `json:"checked,omitempty"`

	// Masked tells the renderer to hide the value.
	Masked bool `json:"masked,omitempty"`
}

// FormState is the UI-facing view of a configuration, keyed by field id.
type FormState map[string]FormEntry

// ToFormState maps persisted values into form entries. Keys that are not
// declared, or whose value does not have the declared kind, are skipped.
func ToFormState(values Values, decls []FieldDeclaration) FormState {
	state := make(FormState, len(values))
	for id, value := range values {
		decl, ok := FieldByID(decls, id)
		if !ok {
			continue
		}

		switch decl.Kind() {
		case KindText, KindSecureText:
			s, ok := value.(string)
			if !ok {
				continue
			}
			state[id] = FormEntry{
				Kind:   decl.Kind(),
				Text:   s,
				Masked: decl.Kind() == KindSecureText,
			}
		case KindCheckbox:
			b, ok := value.(bool)
			if !ok {
				continue
			}
			state[id] = FormEntry{Kind: KindCheckbox, Checked: b}
		}
	}
	return state
}

// ToValues maps form entries back into persisted values.
// ToValues(ToFormState(v, decls)) equals v for every v whose keys are declared
// and whose values have the declared kind.
func ToValues(state FormState) Values {
	values := make(Values, len(state))
	for id, entry := range state {
		switch entry.Kind {
		case KindCheckbox:
			values[id] = entry.Checked
		default:
			values[id] = entry.Text
		}
	}
	return values
}
