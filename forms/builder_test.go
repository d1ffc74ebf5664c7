package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFieldDefaults(t *testing.T) {
	tests := []struct {
		fieldType   FieldType
		wantLabel   string
		wantOptions []string
	}{
		{FieldText, "Text Input", nil},
		{FieldEmail, "Email", nil},
		{FieldPhone, "Phone", nil},
		{FieldTextarea, "Text Area", nil},
		{FieldDropdown, "Dropdown", []string{"Option 1", "Option 2"}},
		{FieldRadio, "Radio Buttons", []string{"Option 1", "Option 2"}},
		{FieldCheckbox, "Checkboxes", []string{"Option 1", "Option 2"}},
		{FieldFile, "File Upload", nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			b := NewBuilder(Schema{}, nil)
			field := b.AddField(tt.fieldType)

			assert.NotEmpty(t, field.ID)
			assert.Equal(t, tt.fieldType, field.Type)
			assert.Equal(t, tt.wantLabel, field.Label)
			assert.Equal(t, tt.wantOptions, field.Options)
			assert.False(t, field.Required)
			assert.Equal(t, field.ID, b.Selected())
		})
	}
}

func TestAddFieldGeneratesUniqueIDs(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		field := b.AddField(FieldText)
		require.False(t, seen[field.ID], "duplicate id %s", field.ID)
		seen[field.ID] = true
	}
}

func TestAddFieldNotifiesWithFullSnapshot(t *testing.T) {
	var got Schema
	notifications := 0
	b := NewBuilder(Schema{Enabled: true}, func(s Schema) {
		got = s
		notifications++
	})

	b.AddField(FieldText)
	b.AddField(FieldDropdown)

	assert.Equal(t, 2, notifications)
	assert.True(t, got.Enabled)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, FieldText, got.Fields[0].Type)
	assert.Equal(t, FieldDropdown, got.Fields[1].Type)
}

func TestUpdateFieldPartialMerge(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	field := b.AddField(FieldText)

	label := "Full Name"
	required := true
	b.UpdateField(field.ID, FieldUpdate{Label: &label, Required: &required})

	updated, ok := b.Schema().Field(field.ID)
	require.True(t, ok)
	assert.Equal(t, "Full Name", updated.Label)
	assert.True(t, updated.Required)
	// untouched members survive the merge
	assert.Equal(t, FieldText, updated.Type)
	assert.Empty(t, updated.Placeholder)
}

func TestUpdateFieldEmptyLabelKeepsCurrent(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	field := b.AddField(FieldText)

	empty := ""
	b.UpdateField(field.ID, FieldUpdate{Label: &empty})

	got, ok := b.Schema().Field(field.ID)
	require.True(t, ok)
	assert.Equal(t, "Text Input", got.Label)
	assert.NoError(t, b.Schema().Validate())
}

func TestUpdateFieldUnknownIDIsSilentButNotifies(t *testing.T) {
	setup := NewBuilder(Schema{}, nil)
	field := setup.AddField(FieldText)

	notifications := 0
	b := NewBuilder(setup.Schema(), func(Schema) { notifications++ })

	label := "ignored"
	b.UpdateField("no_such_field", FieldUpdate{Label: &label})

	assert.Equal(t, 1, notifications)
	got, _ := b.Schema().Field(field.ID)
	assert.Equal(t, "Text Input", got.Label)
}

func TestUpdateFieldNoopStillNotifiesOnce(t *testing.T) {
	setup := NewBuilder(Schema{}, nil)
	field := setup.AddField(FieldText)
	before := setup.Schema()

	notifications := 0
	b := NewBuilder(before, func(Schema) { notifications++ })

	label := field.Label
	b.UpdateField(field.ID, FieldUpdate{Label: &label})

	assert.Equal(t, 1, notifications)
	assert.Equal(t, before.Fields, b.Schema().Fields)
}

func TestDeleteFieldClearsSelection(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	first := b.AddField(FieldText)
	second := b.AddField(FieldEmail)
	require.Equal(t, second.ID, b.Selected())

	b.DeleteField(second.ID)
	assert.Empty(t, b.Selected())
	require.Len(t, b.Schema().Fields, 1)
	assert.Equal(t, first.ID, b.Schema().Fields[0].ID)

	// deleting an unselected field keeps the selection
	third := b.AddField(FieldPhone)
	b.DeleteField(first.ID)
	assert.Equal(t, third.ID, b.Selected())
}

func TestMoveField(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	a := b.AddField(FieldText)
	bb := b.AddField(FieldEmail)
	c := b.AddField(FieldPhone)

	ids := func() []string {
		fields := b.Schema().Fields
		out := make([]string, len(fields))
		for i, f := range fields {
			out[i] = f.ID
		}
		return out
	}

	b.MoveField(bb.ID, MoveUp)
	assert.Equal(t, []string{bb.ID, a.ID, c.ID}, ids())

	b.MoveField(bb.ID, MoveDown)
	assert.Equal(t, []string{a.ID, bb.ID, c.ID}, ids())

	// boundaries are no-ops
	b.MoveField(a.ID, MoveUp)
	assert.Equal(t, []string{a.ID, bb.ID, c.ID}, ids())
	b.MoveField(c.ID, MoveDown)
	assert.Equal(t, []string{a.ID, bb.ID, c.ID}, ids())
}

func TestMoveFieldBoundaryEmitsNoNotification(t *testing.T) {
	setup := NewBuilder(Schema{}, nil)
	first := setup.AddField(FieldText)
	last := setup.AddField(FieldEmail)

	notifications := 0
	b := NewBuilder(setup.Schema(), func(Schema) { notifications++ })

	b.MoveField(first.ID, MoveUp)
	b.MoveField(last.ID, MoveDown)
	b.MoveField("no_such_field", MoveDown)
	assert.Equal(t, 0, notifications)

	b.MoveField(last.ID, MoveUp)
	assert.Equal(t, 1, notifications)
}

func TestMoveFieldUpThenDownRestoresOrder(t *testing.T) {
	b := NewBuilder(Schema{}, nil)
	b.AddField(FieldText)
	mid := b.AddField(FieldEmail)
	b.AddField(FieldPhone)
	before := append([]Field(nil), b.Schema().Fields...)

	b.MoveField(mid.ID, MoveUp)
	b.MoveField(mid.ID, MoveDown)
	assert.Equal(t, before, b.Schema().Fields)

	b.MoveField(mid.ID, MoveDown)
	b.MoveField(mid.ID, MoveUp)
	assert.Equal(t, before, b.Schema().Fields)
}

func TestSetEnabledNotifiesWithFields(t *testing.T) {
	setup := NewBuilder(Schema{}, nil)
	setup.AddField(FieldText)

	var got Schema
	b := NewBuilder(setup.Schema(), func(s Schema) { got = s })

	b.SetEnabled(true)
	assert.True(t, got.Enabled)
	assert.Len(t, got.Fields, 1)

	b.SetEnabled(false)
	assert.False(t, got.Enabled)
	assert.Len(t, got.Fields, 1)
}

func TestSchemaValidate(t *testing.T) {
	valid := Schema{Fields: []Field{
		{ID: "f1", Type: FieldText, Label: "Name"},
		{ID: "f2", Type: FieldDropdown, Label: "Size", Options: []string{"S", "M"}},
	}}
	assert.NoError(t, valid.Validate())

	dup := Schema{Fields: []Field{
		{ID: "f1", Type: FieldText, Label: "Name"},
		{ID: "f1", Type: FieldEmail, Label: "Email"},
	}}
	assert.Error(t, dup.Validate())

	badType := Schema{Fields: []Field{{ID: "f1", Type: "slider", Label: "X"}}}
	assert.Error(t, badType.Validate())

	noLabel := Schema{Fields: []Field{{ID: "f1", Type: FieldText}}}
	assert.Error(t, noLabel.Validate())
}
