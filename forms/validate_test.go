package forms

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateFieldRequired(t *testing.T) {
	tests := []struct {
		name   string
		field  Field
		values []string
		want   string
	}{
		{"empty text", Field{Type: FieldText, Label: "Name", Required: true}, nil, "Name is required"},
		{"blank text", Field{Type: FieldText, Label: "Name", Required: true}, []string{""}, "Name is required"},
		{"empty checkbox", Field{Type: FieldCheckbox, Label: "Interests", Required: true, Options: []string{"A", "B"}}, nil, "Interests is required"},
		{"filled text", Field{Type: FieldText, Label: "Name", Required: true}, []string{"Alex"}, ""},
		{"checked checkbox", Field{Type: FieldCheckbox, Label: "Interests", Required: true, Options: []string{"A", "B"}}, []string{"A"}, ""},
		{"optional empty", Field{Type: FieldText, Label: "Nickname"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.field, tt.values, nil))
		})
	}
}

func TestValidateFieldCheckboxCountsOnlyKnownOptions(t *testing.T) {
	field := Field{Type: FieldCheckbox, Label: "Days", Required: true, Options: []string{"Mon", "Tue"}}

	// values outside the option list never reach the stored response, so
	// they cannot satisfy the required check either
	assert.Equal(t, "Days is required", ValidateField(field, []string{"Funday"}, nil))
	assert.Empty(t, ValidateField(field, []string{"Funday", "Mon"}, nil))
}

func TestValidateFieldEmail(t *testing.T) {
	field := Field{Type: FieldEmail, Label: "Email"}

	assert.Empty(t, ValidateField(field, []string{"user@example.com"}, nil))
	assert.Equal(t, "Please enter a valid email address",
		ValidateField(field, []string{"not-an-email"}, nil))
	assert.Equal(t, "Please enter a valid email address",
		ValidateField(field, []string{"a b@example.com"}, nil))
	// empty optional email passes; required wins over shape
	assert.Empty(t, ValidateField(field, nil, nil))
	required := Field{Type: FieldEmail, Label: "Email", Required: true}
	assert.Equal(t, "Email is required", ValidateField(required, nil, nil))
}

func TestValidateFieldPhone(t *testing.T) {
	field := Field{Type: FieldPhone, Label: "Phone"}

	// non-digits are stripped before counting
	assert.Empty(t, ValidateField(field, []string{"98765-43210"}, nil))
	assert.Empty(t, ValidateField(field, []string{"(555) 123-4567"}, nil))
	// country-code digits survive stripping and push the count past ten
	assert.Equal(t, "Please enter a valid 10-digit phone number",
		ValidateField(field, []string{"+91-98765-43210"}, nil))
}

func TestValidateFieldPhoneDigitCount(t *testing.T) {
	field := Field{Type: FieldPhone, Label: "Phone"}

	assert.Empty(t, ValidateField(field, []string{"9876543210"}, nil))
	assert.Equal(t, "Please enter a valid 10-digit phone number",
		ValidateField(field, []string{"987654321"}, nil)) // 9 digits
	assert.Equal(t, "Please enter a valid 10-digit phone number",
		ValidateField(field, []string{"98765432101"}, nil)) // 11 digits
	assert.Empty(t, ValidateField(field, nil, nil))
}

func TestValidateFieldFileTypes(t *testing.T) {
	field := Field{
		Type:       FieldFile,
		Label:      "Resume",
		Validation: &FieldValidation{FileTypes: []string{".pdf", ".jpg"}},
	}

	assert.Equal(t, "Only .pdf, .jpg files are allowed",
		ValidateField(field, []string{"resume.docx"}, fileHeader("resume.docx", 100)))
	assert.Empty(t, ValidateField(field, []string{"resume.pdf"}, fileHeader("resume.pdf", 100)))
	// extension check is case-insensitive
	assert.Empty(t, ValidateField(field, []string{"resume.PDF"}, fileHeader("resume.PDF", 100)))
	// no held file, nothing to check
	assert.Empty(t, ValidateField(field, nil, nil))
}

func TestValidateFieldFileSize(t *testing.T) {
	noCap := Field{Type: FieldFile, Label: "Attachment"}
	capped := Field{
		Type:       FieldFile,
		Label:      "Attachment",
		Validation: &FieldValidation{MaxFileSize: 2},
	}

	sixMB := int64(6 * 1024 * 1024)
	assert.Equal(t, "File size must be less than 5MB",
		ValidateField(noCap, []string{"big.pdf"}, fileHeader("big.pdf", sixMB)))
	assert.Empty(t, ValidateField(noCap, []string{"ok.pdf"}, fileHeader("ok.pdf", 4*1024*1024)))

	assert.Equal(t, "File size must be less than 2MB",
		ValidateField(capped, []string{"big.pdf"}, fileHeader("big.pdf", 3*1024*1024)))
}

func TestValidateFieldFirstFailingRuleWins(t *testing.T) {
	field := Field{
		Type:       FieldFile,
		Label:      "Resume",
		Required:   true,
		Validation: &FieldValidation{FileTypes: []string{".pdf"}},
	}

	// required beats the type check
	assert.Equal(t, "Resume is required", ValidateField(field, nil, nil))
	// type check beats the size check
	huge := fileHeader("resume.docx", 100*1024*1024)
	assert.Equal(t, "Only .pdf files are allowed",
		ValidateField(field, []string{"resume.docx"}, huge))
}

func TestValidateWholeForm(t *testing.T) {
	schema := Schema{
		Enabled: true,
		Fields: []Field{
			{ID: "f1", Type: FieldText, Label: "Name", Required: true},
			{ID: "f2", Type: FieldEmail, Label: "Email", Required: true},
			{ID: "f3", Type: FieldPhone, Label: "Phone"},
		},
	}

	st := NewState().
		WithValue("f2", "bad-email").
		WithValue("f3", "12345")

	errs := Validate(schema, st)
	require.Len(t, errs, 3)
	assert.Equal(t, "Name is required", errs["f1"])
	assert.Equal(t, "Please enter a valid email address", errs["f2"])
	assert.Equal(t, "Please enter a valid 10-digit phone number", errs["f3"])

	st = st.
		WithValue("f1", "Alex").
		WithValue("f2", "alex@example.com").
		WithValue("f3", "9876543210")
	assert.Empty(t, Validate(schema, st))
}
