package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldType is the closed set of input kinds a schema field can take.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldTextarea FieldType = "textarea"
	FieldDropdown FieldType = "dropdown"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
)

// FieldTypes lists every valid type in display order.
var FieldTypes = []FieldType{
	FieldText, FieldEmail, FieldPhone, FieldTextarea,
	FieldDropdown, FieldRadio, FieldCheckbox, FieldFile,
}

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldEmail, FieldPhone, FieldTextarea,
		FieldDropdown, FieldRadio, FieldCheckbox, FieldFile:
		return true
	}
	return false
}

// DisplayName is the human label for a type, used as the default field label.
func (t FieldType) DisplayName() string {
	switch t {
	case FieldText:
		return "Text Input"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldTextarea:
		return "Text Area"
	case FieldDropdown:
		return "Dropdown"
	case FieldRadio:
		return "Radio Buttons"
	case FieldCheckbox:
		return "Checkboxes"
	case FieldFile:
		return "File Upload"
	}
	return "Field"
}

// HasOptions reports whether the type renders from an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldDropdown || t == FieldRadio || t == FieldCheckbox
}

// FieldValidation carries optional constraints. Only file fields use it today.
type FieldValidation struct {
	FileTypes   []string `bson:"fileTypes,omitempty" json:"fileTypes,omitempty"`     // allowed extensions, each with a leading dot
	MaxFileSize int64    `bson:"maxFileSize,omitempty" json:"maxFileSize,omitempty"` // megabytes, 0 means the default cap
}

// DefaultMaxFileSizeMB applies when a file field sets no explicit cap.
const DefaultMaxFileSizeMB int64 = 5

func (v *FieldValidation) MaxFileBytes() int64 {
	size := DefaultMaxFileSizeMB
	if v != nil && v.MaxFileSize > 0 {
		size = v.MaxFileSize
	}
	return size * 1024 * 1024
}

// Field is one named, typed input slot within a schema. The id is generated
// once at creation and keys the field's response for the field's lifetime.
type Field struct {
	ID          string           `bson:"id" json:"id"`
	Type        FieldType        `bson:"type" json:"type"`
	Label       string           `bson:"label" json:"label"`
	Placeholder string           `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool             `bson:"required" json:"required"`
	Options     []string         `bson:"options,omitempty" json:"options,omitempty"`
	Validation  *FieldValidation `bson:"validation,omitempty" json:"validation,omitempty"`
}

// Schema is an administrator-authored registration form definition. It has no
// identity of its own: it lives inside its owning event document.
type Schema struct {
	Enabled bool    `bson:"enabled" json:"enabled"`
	Fields  []Field `bson:"fields" json:"fields"`
}

// Active reports whether the form should render at all. A disabled or empty
// schema is inert and registration falls back to the contact path.
func (s Schema) Active() bool {
	return s.Enabled && len(s.Fields) > 0
}

// Field returns the field with the given id and whether it exists.
func (s Schema) Field(id string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks schema integrity before it is persisted: every field must
// carry a known type, a label and an id unique within the schema.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.ID == "" {
			return fmt.Errorf("field %q has no id", f.Label)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("duplicate field id %s", f.ID)
		}
		seen[f.ID] = struct{}{}
		if !f.Type.Valid() {
			return fmt.Errorf("field %s has unknown type %q", f.ID, f.Type)
		}
		if f.Label == "" {
			return fmt.Errorf("field %s has no label", f.ID)
		}
	}
	return nil
}

// NewFieldID generates a unique, stable field identifier.
func NewFieldID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("field_%d_%s", time.Now().UnixMilli(), suffix)
}
