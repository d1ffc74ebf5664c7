package forms

import (
	"context"
	"fmt"
	"mime/multipart"
)

// Uploader is the asset-host port. Upload stores the file and returns a
// durable URL.
type Uploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

// Entry is one field's recorded response. Label and type are copied from the
// field definition at submission time so later schema edits never corrupt
// historical responses. Value is a string for scalar fields, a []string for
// checkboxes and a URL string for files.
type Entry struct {
	Label    string    `bson:"label" json:"label"`
	Value    any       `bson:"value" json:"value"`
	Type     FieldType `bson:"type" json:"type"`
	FileName string    `bson:"fileName,omitempty" json:"fileName,omitempty"`
}

// Assemble resolves a validated state into the response map keyed by field
// id. Files upload strictly one after another, in schema order, to the
// asset host under event-forms/<eventID>/<fieldID>; the first failure aborts
// the whole submission so nothing is persisted partially. Callers must run
// Validate first.
func Assemble(ctx context.Context, schema Schema, st State, uploader Uploader, eventID string) (map[string]Entry, error) {
	responses := make(map[string]Entry, len(schema.Fields))

	for _, f := range schema.Fields {
		if f.Type == FieldFile {
			file := st.File(f.ID)
			if file == nil {
				responses[f.ID] = Entry{Label: f.Label, Value: "", Type: f.Type}
				continue
			}
			if uploader == nil {
				return nil, fmt.Errorf("no uploader configured for field %s", f.ID)
			}
			folder := fmt.Sprintf("event-forms/%s/%s", eventID, f.ID)
			url, err := uploader.Upload(ctx, file, folder)
			if err != nil {
				return nil, fmt.Errorf("failed to upload %s: %v", f.Label, err)
			}
			responses[f.ID] = Entry{
				Label:    f.Label,
				Value:    url,
				Type:     f.Type,
				FileName: file.Filename,
			}
			continue
		}

		if f.Type == FieldCheckbox {
			responses[f.ID] = Entry{Label: f.Label, Value: selectedOptions(f, st.Values(f.ID)), Type: f.Type}
			continue
		}

		responses[f.ID] = Entry{Label: f.Label, Value: st.Value(f.ID), Type: f.Type}
	}
	return responses, nil
}

// selectedOptions keeps checkbox selections in option order so responses
// compare cleanly across submissions. Posted values outside the option list
// are dropped; the validator counts selections through the same filter, so a
// required checkbox can never persist empty.
func selectedOptions(f Field, posted []string) []string {
	selected := make([]string, 0, len(posted))
	for _, opt := range f.Options {
		for _, v := range posted {
			if v == opt {
				selected = append(selected, opt)
				break
			}
		}
	}
	return selected
}
