package forms

import "strings"

// Control is the rendered view of one schema field: everything a client needs
// to draw the input, plus the field's current value and error.
type Control struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Multiline   bool      `json:"multiline,omitempty"`
	Multiple    bool      `json:"multiple,omitempty"`
	Accept      []string  `json:"accept,omitempty"`
	Hint        string    `json:"hint,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
	Value       any       `json:"value,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Render turns an enabled schema plus the current state into one control per
// field, in schema order. A disabled or empty schema renders nothing: callers
// must fall back to the manual contact path.
func Render(schema Schema, st State) []Control {
	if !schema.Active() {
		return nil
	}
	controls := make([]Control, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		controls = append(controls, renderField(f, st, false))
	}
	return controls
}

// Preview renders the field list with every input disabled, so an
// administrator can sanity-check the form before enabling it. Unlike Render
// it ignores the enabled gate; only an empty field list yields nothing.
func Preview(schema Schema) []Control {
	if len(schema.Fields) == 0 {
		return nil
	}
	controls := make([]Control, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		controls = append(controls, renderField(f, NewState(), true))
	}
	return controls
}

func renderField(f Field, st State, disabled bool) Control {
	c := Control{
		ID:          f.ID,
		Type:        f.Type,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Required:    f.Required,
		Disabled:    disabled,
		Error:       st.Error(f.ID),
	}

	switch f.Type {
	case FieldText, FieldEmail, FieldPhone:
		c.Value = st.Value(f.ID)
	case FieldTextarea:
		c.Multiline = true
		c.Value = st.Value(f.ID)
	case FieldDropdown, FieldRadio:
		c.Options = f.Options
		c.Value = st.Value(f.ID)
	case FieldCheckbox:
		c.Options = f.Options
		c.Multiple = true
		c.Value = st.Values(f.ID)
	case FieldFile:
		if f.Validation != nil && len(f.Validation.FileTypes) > 0 {
			c.Accept = f.Validation.FileTypes
			c.Hint = "Allowed: " + strings.Join(f.Validation.FileTypes, ", ")
		}
		c.Value = st.Value(f.ID)
	}
	return c
}
