package forms

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	urls    map[string]string // filename -> url
	failOn  string            // filename that errors
	folders []string          // upload order
}

func (f *fakeUploader) Upload(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if file.Filename == f.failOn {
		return "", fmt.Errorf("quota exceeded")
	}
	f.folders = append(f.folders, folder)
	return f.urls[file.Filename], nil
}

func TestAssembleScalarAndChoiceFields(t *testing.T) {
	schema := Schema{
		Enabled: true,
		Fields: []Field{
			{ID: "field1", Type: FieldText, Label: "Name", Required: true},
			{ID: "field2", Type: FieldDropdown, Label: "Size", Required: true, Options: []string{"S", "M", "L"}},
		},
	}
	st := NewState().
		WithValue("field1", "Alex").
		WithValue("field2", "M")
	require.Empty(t, Validate(schema, st))

	responses, err := Assemble(context.Background(), schema, st, nil, "ev1")
	require.NoError(t, err)
	assert.Equal(t, map[string]Entry{
		"field1": {Label: "Name", Value: "Alex", Type: FieldText},
		"field2": {Label: "Size", Value: "M", Type: FieldDropdown},
	}, responses)
}

func TestAssembleUnsetFieldRecordsEmptyString(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "f1", Type: FieldText, Label: "Nickname"},
	}}

	responses, err := Assemble(context.Background(), schema, NewState(), nil, "ev1")
	require.NoError(t, err)
	assert.Equal(t, Entry{Label: "Nickname", Value: "", Type: FieldText}, responses["f1"])
}

func TestAssembleCheckboxKeepsOptionOrder(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "f1", Type: FieldCheckbox, Label: "Days", Options: []string{"Mon", "Tue", "Wed"}},
	}}
	// posted out of option order
	st := NewState().WithValue("f1", "Wed", "Mon")

	responses, err := Assemble(context.Background(), schema, st, nil, "ev1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon", "Wed"}, responses["f1"].Value)
}

func TestAssembleCheckboxDropsUnknownOptions(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "f1", Type: FieldCheckbox, Label: "Days", Required: true, Options: []string{"Mon", "Tue"}},
	}}

	// only unknown values posted: validation fails, nothing is assembled
	st := NewState().WithValue("f1", "Funday")
	errs := Validate(schema, st)
	require.Len(t, errs, 1)
	assert.Equal(t, "Days is required", errs["f1"])

	// a known value among the noise passes and only it is stored
	st = st.WithValue("f1", "Funday", "Tue")
	require.Empty(t, Validate(schema, st))
	responses, err := Assemble(context.Background(), schema, st, nil, "ev1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tue"}, responses["f1"].Value)
}

func TestAssembleUploadsFilesSequentiallyInSchemaOrder(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "fa", Type: FieldFile, Label: "Resume"},
		{ID: "fb", Type: FieldText, Label: "Name"},
		{ID: "fc", Type: FieldFile, Label: "Photo"},
	}}
	st := NewState().
		WithFile("fa", &multipart.FileHeader{Filename: "resume.pdf", Size: 100}).
		WithValue("fb", "Alex").
		WithFile("fc", &multipart.FileHeader{Filename: "photo.jpg", Size: 200})

	up := &fakeUploader{urls: map[string]string{
		"resume.pdf": "https://cdn.example.com/resume.pdf",
		"photo.jpg":  "https://cdn.example.com/photo.jpg",
	}}

	responses, err := Assemble(context.Background(), schema, st, up, "ev42")
	require.NoError(t, err)

	assert.Equal(t, []string{"event-forms/ev42/fa", "event-forms/ev42/fc"}, up.folders)
	assert.Equal(t, Entry{
		Label: "Resume", Value: "https://cdn.example.com/resume.pdf",
		Type: FieldFile, FileName: "resume.pdf",
	}, responses["fa"])
	assert.Equal(t, Entry{
		Label: "Photo", Value: "https://cdn.example.com/photo.jpg",
		Type: FieldFile, FileName: "photo.jpg",
	}, responses["fc"])
}

func TestAssembleUploadFailureAbortsWholeSubmission(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "fa", Type: FieldFile, Label: "Resume"},
		{ID: "fb", Type: FieldFile, Label: "Photo"},
	}}
	st := NewState().
		WithFile("fa", &multipart.FileHeader{Filename: "resume.pdf", Size: 100}).
		WithFile("fb", &multipart.FileHeader{Filename: "photo.jpg", Size: 200})

	up := &fakeUploader{
		urls:   map[string]string{"resume.pdf": "https://cdn.example.com/resume.pdf"},
		failOn: "photo.jpg",
	}

	responses, err := Assemble(context.Background(), schema, st, up, "ev1")
	require.Error(t, err)
	assert.Nil(t, responses)
	// the failing field's label annotates the collaborator error
	assert.Contains(t, err.Error(), "failed to upload Photo")
	assert.Contains(t, err.Error(), "quota exceeded")
	// the earlier upload was attempted first, in order
	assert.Equal(t, []string{"event-forms/ev1/fa"}, up.folders)
}

func TestAssembleOptionalFileAbsentRecordsEmpty(t *testing.T) {
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "f1", Type: FieldFile, Label: "Photo"},
	}}

	up := &fakeUploader{}
	responses, err := Assemble(context.Background(), schema, NewState(), up, "ev1")
	require.NoError(t, err)
	assert.Empty(t, up.folders)
	assert.Equal(t, Entry{Label: "Photo", Value: "", Type: FieldFile}, responses["f1"])
}

func TestValidatorGatesAssembly(t *testing.T) {
	// a 6MB file against the default 5MB cap never reaches the uploader
	schema := Schema{Enabled: true, Fields: []Field{
		{ID: "f1", Type: FieldFile, Label: "Attachment", Required: true},
	}}
	st := NewState().WithFile("f1", &multipart.FileHeader{
		Filename: "big.pdf", Size: 6 * 1024 * 1024,
	})

	errs := Validate(schema, st)
	require.Len(t, errs, 1)
	assert.Equal(t, "File size must be less than 5MB", errs["f1"])

	// submission flow stops here; the uploader is never consulted
	up := &fakeUploader{}
	if len(errs) == 0 {
		_, _ = Assemble(context.Background(), schema, st, up, "ev1")
	}
	assert.Empty(t, up.folders)
}
