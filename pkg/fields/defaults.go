package fields

// DefaultValueFor returns the declared default of decl, or the zero value of
// its kind when no default is declared: "" for text kinds and false for
// checkboxes. SecureText always yields "".
func DefaultValueFor(decl FieldDeclaration) any {
	switch f := decl.(type) {
	case Text:
		if f.DefaultValue != nil {
			return *f.DefaultValue
		}
		return ""
	case SecureText:
		return ""
	case Checkbox:
		if f.DefaultValue != nil {
			return *f.DefaultValue
		}
		return false
	default:
		return nil
	}
}

// DefaultValues builds a Values map holding the default of every declaration.
func DefaultValues(decls []FieldDeclaration) Values {
	values := make(Values, len(decls))
	for _, d := range decls {
		if d == nil {
			continue
		}
		values[d.Base().ID] = DefaultValueFor(d)
	}
	return values
}
