package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/account/internal/model"
)

func TestFieldsDefaults(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	require.Equal(t, model.FormState{MaritalStatus: model.Unmarried, PhotoRef: placeholder}, f.Values())

	s := newFields(spouseSchema, placeholder)
	require.Equal(t, model.Spouse{PhotoRef: placeholder}, s.Spouse())
}

func TestFieldsSetUpdatesOneField(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	require.NoError(t, f.Set(FieldName, "  Jane  "))
	require.NoError(t, f.Set(FieldEmail, "jane@example.com"))
	require.NoError(t, f.Set(FieldMaritalStatus, "Married"))
	require.NoError(t, f.Set(FieldBirthDate, "12-31-1990"))
	require.NoError(t, f.Set(FieldPhoto, "/me.png"))

	bd := time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, model.FormState{
		Name:          "Jane",
		Email:         "jane@example.com",
		MaritalStatus: model.Married,
		BirthDate:     &bd,
		PhotoRef:      "/me.png",
	}, f.Values())

	require.NoError(t, f.Set(FieldPhoto, ""))
	require.Equal(t, placeholder, f.Values().PhotoRef)
}

func TestFieldsSetStripsMarkup(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	require.NoError(t, f.Set(FieldName, `<script>alert(1)</script>Tom & <i>Jerry</i>`))
	require.Equal(t, "Tom & Jerry", f.Values().Name)
}

func TestFieldsUnknownKeys(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	err := f.Set(Field("nickname"), "x")
	require.ErrorIs(t, err, ErrUnknownField)
	require.Equal(t, KindValidation, KindOf(err))

	_, err = f.Get(Field("nickname"))
	require.ErrorIs(t, err, ErrUnknownField)

	spouse := newFields(spouseSchema, placeholder)
	require.ErrorIs(t, spouse.Set(FieldMaritalStatus, "married"), ErrUnknownField)
	require.ErrorIs(t, spouse.SetMaritalStatus(model.Married), ErrUnknownField)
	require.False(t, spouse.Accepts(FieldMaritalStatus))
}

func TestFieldsRejectsBadValues(t *testing.T) {
	f := newFields(primarySchema, placeholder)

	err := f.Set(FieldMaritalStatus, "divorced")
	require.ErrorIs(t, err, ErrFormat)
	require.Equal(t, model.Unmarried, f.Values().MaritalStatus)

	err = f.Set(FieldBirthDate, "yesterday")
	require.ErrorIs(t, err, ErrFormat)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "birthDate", fe.Field)
}

func TestFieldsSnapshotIsIsolated(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	require.NoError(t, f.Set(FieldBirthDate, "2000-01-01"))

	snap := f.Values()
	*snap.BirthDate = snap.BirthDate.AddDate(5, 0, 0)
	snap.Name = "changed"

	got := f.Values()
	require.Equal(t, 2000, got.BirthDate.Year())
	require.Equal(t, "", got.Name)
}

func TestFieldsGet(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	require.NoError(t, f.Set(FieldBirthDate, "2000-01-02"))
	f.SetName("Ann")

	tests := map[Field]string{
		FieldName:          "Ann",
		FieldEmail:         "",
		FieldMaritalStatus: "unmarried",
		FieldBirthDate:     "01-02-2000",
		FieldPhoto:         placeholder,
	}
	for key, want := range tests {
		got, err := f.Get(key)
		require.NoError(t, err)
		require.Equal(t, want, got, key)
	}
}

func TestFieldsLoadKeepsDefaultsForBlanks(t *testing.T) {
	f := newFields(primarySchema, placeholder)
	f.Load(model.FormState{Name: "Z"})
	require.Equal(t, model.FormState{Name: "Z", MaritalStatus: model.Unmarried, PhotoRef: placeholder}, f.Values())
}
