package forms

import "mime/multipart"

// State bundles the collected values, held file handles and current error
// messages for one in-progress submission. Updates return a fresh State; the
// validator and assembler read it as a pure input.
type State struct {
	values map[string][]string
	files  map[string]*multipart.FileHeader
	errors map[string]string
}

func NewState() State {
	return State{}
}

// StateFromMultipart collects a parsed multipart form into a State, keeping
// only keys that name fields of the schema. Checkbox fields keep every posted
// value; file fields hold the first file part under their id, with the file's
// name mirrored into the value map for display.
func StateFromMultipart(schema Schema, form *multipart.Form) State {
	st := NewState()
	if form == nil {
		return st
	}
	for _, f := range schema.Fields {
		if f.Type == FieldFile {
			if headers := form.File[f.ID]; len(headers) > 0 {
				st = st.WithFile(f.ID, headers[0])
			}
			continue
		}
		if values := form.Value[f.ID]; len(values) > 0 {
			st = st.WithValue(f.ID, values...)
		}
	}
	return st
}

// Value returns the scalar value for a field, or "" when unset.
func (s State) Value(fieldID string) string {
	if v := s.values[fieldID]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Values returns every collected value for a field (checkbox selections).
func (s State) Values(fieldID string) []string {
	return s.values[fieldID]
}

// File returns the held file handle for a field, or nil.
func (s State) File(fieldID string) *multipart.FileHeader {
	return s.files[fieldID]
}

// Error returns the current error message for a field, or "".
func (s State) Error(fieldID string) string {
	return s.errors[fieldID]
}

// HasErrors reports whether any field currently carries an error.
func (s State) HasErrors() bool {
	return len(s.errors) > 0
}

// Errors returns a copy of the error map keyed by field id.
func (s State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// WithValue records values for a field and clears its error.
func (s State) WithValue(fieldID string, values ...string) State {
	next := s.clone()
	next.values[fieldID] = values
	delete(next.errors, fieldID)
	return next
}

// WithFile records a held file for a field, mirrors the file name into the
// value map and clears the field's error.
func (s State) WithFile(fieldID string, file *multipart.FileHeader) State {
	next := s.clone()
	next.files[fieldID] = file
	if file != nil {
		next.values[fieldID] = []string{file.Filename}
	} else {
		delete(next.values, fieldID)
	}
	delete(next.errors, fieldID)
	return next
}

// WithErrors replaces the whole error map, as produced by Validate.
func (s State) WithErrors(errs map[string]string) State {
	next := s.clone()
	next.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		next.errors[k] = v
	}
	return next
}

func (s State) clone() State {
	next := State{
		values: make(map[string][]string, len(s.values)),
		files:  make(map[string]*multipart.FileHeader, len(s.files)),
		errors: make(map[string]string, len(s.errors)),
	}
	for k, v := range s.values {
		next.values[k] = v
	}
	for k, v := range s.files {
		next.files[k] = v
	}
	for k, v := range s.errors {
		next.errors[k] = v
	}
	return next
}
