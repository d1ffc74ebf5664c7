package forms

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// ValidateField checks one field's collected value against its definition and
// returns a human-readable message, or "" when the value is acceptable.
// Rules apply in order; the first failing rule wins.
func ValidateField(field Field, values []string, file *multipart.FileHeader) string {
	if field.Type == FieldCheckbox {
		// count only selections the assembler will store
		values = selectedOptions(field, values)
	}
	if field.Required && isEmpty(values) {
		return fmt.Sprintf("%s is required", field.Label)
	}

	value := ""
	if len(values) > 0 {
		value = values[0]
	}

	switch field.Type {
	case FieldEmail:
		if value != "" && !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldPhone:
		if value != "" {
			digits := nonDigitPattern.ReplaceAllString(value, "")
			if len(digits) != 10 {
				return "Please enter a valid 10-digit phone number"
			}
		}
	case FieldFile:
		if file != nil {
			return validateFile(field, file)
		}
	}
	return ""
}

func validateFile(field Field, file *multipart.FileHeader) string {
	var allowed []string
	if field.Validation != nil {
		allowed = field.Validation.FileTypes
	}
	if len(allowed) > 0 {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		ok := false
		for _, t := range allowed {
			if strings.ToLower(t) == ext {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Sprintf("Only %s files are allowed", strings.Join(allowed, ", "))
		}
	}

	if file.Size > field.Validation.MaxFileBytes() {
		size := DefaultMaxFileSizeMB
		if field.Validation != nil && field.Validation.MaxFileSize > 0 {
			size = field.Validation.MaxFileSize
		}
		return fmt.Sprintf("File size must be less than %dMB", size)
	}
	return ""
}

// Validate applies ValidateField to every field of the schema and collects
// the failures into a map keyed by field id. Submission proceeds only when
// the map is empty. Pure: no network, no clock.
func Validate(schema Schema, st State) map[string]string {
	errs := make(map[string]string)
	for _, f := range schema.Fields {
		if msg := ValidateField(f, st.Values(f.ID), st.File(f.ID)); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

func isEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
