package forms

// Direction moves a field one slot within the list.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// FieldUpdate is a partial edit of a field. Nil members leave the current
// value untouched.
type FieldUpdate struct {
	Label       *string          `json:"label,omitempty"`
	Placeholder *string          `json:"placeholder,omitempty"`
	Required    *bool            `json:"required,omitempty"`
	Options     []string         `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// Builder mutates a schema under administrator control. Every mutation emits
// the full current snapshot to the change callback so the owning event always
// holds a consistent schema without a separate save step.
type Builder struct {
	schema   Schema
	selected string
	onChange func(Schema)
}

// NewBuilder wraps an existing schema. onChange may be nil.
func NewBuilder(schema Schema, onChange func(Schema)) *Builder {
	return &Builder{schema: schema, onChange: onChange}
}

// Schema returns the current snapshot.
func (b *Builder) Schema() Schema {
	return b.schema
}

// Selected returns the id of the field currently open for editing, if any.
func (b *Builder) Selected() string {
	return b.selected
}

// AddField appends a new field of the given type with a default label, marks
// it as selected for editing and returns it. Choice types start with two
// placeholder options.
func (b *Builder) AddField(t FieldType) Field {
	field := Field{
		ID:       NewFieldID(),
		Type:     t,
		Label:    t.DisplayName(),
		Required: false,
	}
	if t.HasOptions() {
		field.Options = []string{"Option 1", "Option 2"}
	}
	b.schema.Fields = append(b.schema.Fields, field)
	b.selected = field.ID
	b.notify()
	return field
}

// UpdateField merges the partial update into the identified field. An unknown
// id is a silent no-op, but the change notification still fires. An empty
// label is ignored: every field keeps a label for its lifetime.
func (b *Builder) UpdateField(fieldID string, upd FieldUpdate) {
	for i := range b.schema.Fields {
		if b.schema.Fields[i].ID != fieldID {
			continue
		}
		f := &b.schema.Fields[i]
		if upd.Label != nil && *upd.Label != "" {
			f.Label = *upd.Label
		}
		if upd.Placeholder != nil {
			f.Placeholder = *upd.Placeholder
		}
		if upd.Required != nil {
			f.Required = *upd.Required
		}
		if upd.Options != nil {
			f.Options = upd.Options
		}
		if upd.Validation != nil {
			f.Validation = upd.Validation
		}
		break
	}
	b.notify()
}

// DeleteField removes the field, clearing the selection if it pointed there.
func (b *Builder) DeleteField(fieldID string) {
	fields := b.schema.Fields[:0]
	for _, f := range b.schema.Fields {
		if f.ID != fieldID {
			fields = append(fields, f)
		}
	}
	b.schema.Fields = fields
	if b.selected == fieldID {
		b.selected = ""
	}
	b.notify()
}

// MoveField swaps the field with its immediate neighbor. Moving the first
// field up, the last down or an unknown id returns without notifying.
func (b *Builder) MoveField(fieldID string, dir Direction) {
	index := -1
	for i, f := range b.schema.Fields {
		if f.ID == fieldID {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}
	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(b.schema.Fields) {
		return
	}
	fields := b.schema.Fields
	fields[index], fields[target] = fields[target], fields[index]
	b.notify()
}

// SetEnabled toggles the schema-level gate.
func (b *Builder) SetEnabled(enabled bool) {
	b.schema.Enabled = enabled
	b.notify()
}

func (b *Builder) notify() {
	if b.onChange != nil {
		b.onChange(b.schema)
	}
}
