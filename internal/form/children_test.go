package form

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
)

const placeholder = "/images/avatars/1.png"

func newTestChildren() *Children {
	c := NewChildren(placeholder, photo.NewDecoder(photo.Options{}))
	n := 0
	c.newID = func() string {
		n++
		return fmt.Sprintf("child-%d", n)
	}
	return c
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestAddAppendsDefaultTemplate(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7} {
		t.Run(fmt.Sprintf("%d adds", n), func(t *testing.T) {
			c := newTestChildren()
			for i := 0; i < n; i++ {
				c.Add()
			}
			require.Equal(t, n, c.Len())
			for _, rec := range c.Records() {
				if diff := cmp.Diff(c.Template(), rec, cmpopts.IgnoreFields(model.ChildRecord{}, "ID")); diff != "" {
					t.Fatalf("record differs from template (-want +got):\n%s", diff)
				}
				require.NotEmpty(t, rec.ID)
			}
		})
	}
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	c := NewChildren(placeholder, nil)
	a, b := c.Add(), c.Add()
	require.NotEqual(t, a.ID, b.ID)
}

func TestRemoveAtReindexes(t *testing.T) {
	c := newTestChildren()
	for i := 0; i < 4; i++ {
		c.Add()
	}
	originalAt3 := c.Records()[3]

	require.NoError(t, c.RemoveAt(1))
	// Position 2 now holds what was at 3.
	got, err := c.At(2)
	require.NoError(t, err)
	require.Equal(t, originalAt3.ID, got.ID)

	require.NoError(t, c.RemoveAt(2))
	var ids []string
	for _, r := range c.Records() {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"child-1", "child-3"}, ids)
}

func TestOutOfRange(t *testing.T) {
	c := newTestChildren()
	c.Add()

	for _, i := range []int{-1, 1, 5} {
		require.ErrorIs(t, c.RemoveAt(i), ErrIndexOutOfRange)
		require.ErrorIs(t, c.SetFieldAt(i, ChildName, "X"), ErrIndexOutOfRange)
		require.ErrorIs(t, c.SetPhotoAt(i, tinyPNG(t)), ErrIndexOutOfRange)
		require.ErrorIs(t, c.ResetPhotoAt(i), ErrIndexOutOfRange)
		_, err := c.At(i)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		require.Equal(t, KindIndex, KindOf(err))
	}
	require.Equal(t, 1, c.Len())
}

func TestSetFieldAtDoesNotAlias(t *testing.T) {
	c := newTestChildren()
	c.Add()
	c.Add()
	c.Add()

	before := append([]*model.ChildRecord(nil), c.records...)
	snapshot := c.Records()

	require.NoError(t, c.SetFieldAt(1, ChildName, "X"))

	require.Same(t, before[0], c.records[0])
	require.Same(t, before[2], c.records[2])
	require.NotSame(t, before[1], c.records[1])
	require.Equal(t, "", before[1].Name, "old record pointer must not be mutated")
	require.Equal(t, "", snapshot[1].Name, "earlier snapshot must not change")

	recs := c.Records()
	require.Equal(t, "X", recs[1].Name)
	require.Equal(t, "", recs[0].Name)
	require.Equal(t, "", recs[2].Name)
}

func TestSetFieldAtParsesAndSanitizes(t *testing.T) {
	c := newTestChildren()
	c.Add()

	require.NoError(t, c.SetFieldAt(0, ChildSchoolName, "<b>Oak & Pine</b> School"))
	require.NoError(t, c.SetFieldAt(0, ChildEmail, "kid@example.com"))
	require.NoError(t, c.SetFieldAt(0, ChildDateOfBirth, "06-15-2016"))

	rec, err := c.At(0)
	require.NoError(t, err)
	require.Equal(t, "Oak & Pine School", rec.SchoolName)
	require.Equal(t, "kid@example.com", rec.Email)
	require.Equal(t, time.Date(2016, time.June, 15, 0, 0, 0, 0, time.UTC), *rec.DateOfBirth)

	err = c.SetFieldAt(0, ChildDateOfBirth, "not a date")
	require.ErrorIs(t, err, ErrFormat)
	require.Equal(t, KindFormat, KindOf(err))

	require.NoError(t, c.SetFieldAt(0, ChildDateOfBirth, ""))
	rec, _ = c.At(0)
	require.Nil(t, rec.DateOfBirth)
}

func TestSetFieldAtUnknownField(t *testing.T) {
	c := newTestChildren()
	c.Add()
	err := c.SetFieldAt(0, ChildField("shoeSize"), "12")
	require.ErrorIs(t, err, ErrUnknownField)
	require.Equal(t, KindValidation, KindOf(err))
}

func TestPhotoAt(t *testing.T) {
	c := newTestChildren()
	c.Add()
	c.Add()

	require.NoError(t, c.SetPhotoAt(1, tinyPNG(t)))
	recs := c.Records()
	require.True(t, photo.IsDataURI(recs[1].PhotoRef))
	require.Equal(t, placeholder, recs[0].PhotoRef)

	err := c.SetPhotoAt(0, []byte("plain text"))
	require.ErrorIs(t, err, photo.ErrUnsupportedFormat)
	require.Equal(t, KindDecode, KindOf(err))

	require.NoError(t, c.ResetPhotoAt(1))
	rec, _ := c.At(1)
	require.Equal(t, placeholder, rec.PhotoRef)
}

func TestResetPhotoWithoutUpload(t *testing.T) {
	c := newTestChildren()
	c.Add()
	require.NoError(t, c.ResetPhotoAt(0))
	rec, _ := c.At(0)
	require.Equal(t, placeholder, rec.PhotoRef)
}

func TestOperationsByID(t *testing.T) {
	c := newTestChildren()
	a := c.Add()
	b := c.Add()

	require.NoError(t, c.Remove(a.ID))
	require.Equal(t, 0, c.IndexOf(b.ID))
	require.Equal(t, -1, c.IndexOf(a.ID))

	require.ErrorIs(t, c.Set(a.ID, ChildName, "ghost"), ErrUnknownRecord)
	require.ErrorIs(t, c.SetPhoto(a.ID, "data:image/png;base64,AA=="), ErrUnknownRecord)
	require.ErrorIs(t, c.Remove(a.ID), ErrUnknownRecord)
	require.Equal(t, KindIndex, KindOf(c.Remove(a.ID)))

	d := time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.SetDateOfBirth(b.ID, &d))
	got, ok := c.Get(b.ID)
	require.True(t, ok)
	require.Equal(t, d, *got.DateOfBirth)

	// The stored date is a copy.
	d = d.AddDate(1, 0, 0)
	got, _ = c.Get(b.ID)
	require.Equal(t, 2019, got.DateOfBirth.Year())
}

func TestInsertAtRestoresRemovedRecord(t *testing.T) {
	c := newTestChildren()
	c.Add()
	c.Add()
	c.Add()
	require.NoError(t, c.SetFieldAt(1, ChildName, "Middle"))

	removed, err := c.At(1)
	require.NoError(t, err)
	require.NoError(t, c.RemoveAt(1))
	require.NoError(t, c.InsertAt(1, removed))

	got, err := c.At(1)
	require.NoError(t, err)
	require.Equal(t, removed, got)

	require.Error(t, c.InsertAt(0, removed), "duplicate IDs are rejected")

	require.NoError(t, c.InsertAt(99, model.ChildRecord{Name: "Tail"}))
	last, _ := c.At(c.Len() - 1)
	require.Equal(t, "Tail", last.Name)
	require.NotEmpty(t, last.ID)
}

func TestLoadFillsIDsAndPlaceholder(t *testing.T) {
	c := newTestChildren()
	c.Load([]model.ChildRecord{{Name: "A"}, {ID: "keep", Name: "B", PhotoRef: "/b.png"}})

	recs := c.Records()
	require.Len(t, recs, 2)
	require.Equal(t, "child-1", recs[0].ID)
	require.Equal(t, placeholder, recs[0].PhotoRef)
	require.Equal(t, "keep", recs[1].ID)
	require.Equal(t, "/b.png", recs[1].PhotoRef)
}

func TestLoadReassignsDuplicateIDs(t *testing.T) {
	c := newTestChildren()
	c.Load([]model.ChildRecord{{ID: "dup", Name: "A"}, {ID: "dup", Name: "B"}})

	recs := c.Records()
	require.Len(t, recs, 2)
	require.Equal(t, "dup", recs[0].ID)
	require.NotEqual(t, "dup", recs[1].ID)

	require.NoError(t, c.SetFieldAt(1, ChildName, "edited-second"))
	recs = c.Records()
	require.Equal(t, "A", recs[0].Name)
	require.Equal(t, "edited-second", recs[1].Name)
}

// add twice, edit record 0, remove record 0: the survivor is the untouched
// record 1.
func TestAddEditRemoveEndToEnd(t *testing.T) {
	c := newTestChildren()
	c.Add()
	c.Add()
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.SetFieldAt(0, ChildSchoolName, "Oak School"))
	require.NoError(t, c.RemoveAt(0))

	recs := c.Records()
	require.Len(t, recs, 1)
	require.Equal(t, "", recs[0].SchoolName)
	require.Equal(t, "child-2", recs[0].ID)
}
