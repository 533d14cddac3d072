package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/editsys/internal/engine/collection"
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/notify"
)

func newDoc(t *testing.T) (*Document, *history.History) {
	t.Helper()
	h := history.New()
	return New(h), h
}

func record(d *Document) *[]string {
	var got []string
	d.Subscribe(func(sender any, args *notify.Args) {
		if sender != d {
			panic("unexpected sender")
		}
		got = append(got, args.Name())
	})
	return &got
}

func TestNew(t *testing.T) {
	d, h := newDoc(t)

	assert.NotEqual(t, [16]byte{}, [16]byte(d.ID()))
	assert.Empty(t, d.Title())
	assert.Equal(t, 0, d.Items().Len())
	assert.Empty(t, d.Tags())
	assert.True(t, h.Listening(d.Items()))

	d.Close()
	assert.False(t, h.Listening(d.Items()))
}

func TestTitle(t *testing.T) {
	d, h := newDoc(t)
	got := record(d)

	assert.True(t, d.SetTitle("Draft"))
	assert.False(t, d.SetTitle("Draft"))
	assert.True(t, d.SetTitle("Final"))
	assert.Equal(t, 2, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Equal(t, "Draft", d.Title())
	require.NoError(t, h.Undo())
	assert.Equal(t, "", d.Title())
	require.NoError(t, h.Redo())
	assert.Equal(t, "Draft", d.Title())

	assert.Equal(t, []string{PropTitle, PropTitle, PropTitle, PropTitle, PropTitle}, *got)
}

func TestTitleIsNormalized(t *testing.T) {
	d, h := newDoc(t)

	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	require.True(t, d.SetTitle(decomposed))
	assert.Equal(t, composed, d.Title())
	assert.False(t, d.SetTitle(composed))
	assert.Equal(t, 1, h.UndoCount())
}

func TestCount(t *testing.T) {
	d, h := newDoc(t)

	d.SetCount(3)
	assert.True(t, d.SetCountWithoutHistory(7))
	assert.Equal(t, 1, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Equal(t, 0, d.Count())
}

func TestFlags(t *testing.T) {
	d, h := newDoc(t)

	assert.True(t, d.SetFlag(Locked, true))
	assert.True(t, d.SetFlag(Starred, true))
	assert.False(t, d.SetFlag(Starred, true))
	assert.True(t, d.HasFlag(Locked|Starred))
	assert.Equal(t, "locked|starred", d.Flags().String())

	require.NoError(t, h.Undo())
	assert.Equal(t, Locked, d.Flags())

	assert.True(t, d.SetFlagWithoutHistory(Hidden, true))
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, []string{"locked", "hidden"}, d.Flags().Names())
}

func TestParseFlag(t *testing.T) {
	f, err := ParseFlag("Starred")
	require.NoError(t, err)
	assert.Equal(t, Starred, f)

	_, err = ParseFlag("pinned")
	assert.ErrorIs(t, err, ErrUnknownFlag)
	assert.Equal(t, "none", Flag(0).String())
}

func TestItems(t *testing.T) {
	d, h := newDoc(t)

	a, err := d.Add("a", -1)
	require.NoError(t, err)
	_, err = d.Add("c", -1)
	require.NoError(t, err)
	b, err := d.Add("b", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, d.Names())

	require.NoError(t, d.Move(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, d.Names())
	assert.Equal(t, 1, a.Moved)

	removed, err := d.Remove(0)
	require.NoError(t, err)
	assert.Same(t, b, removed)
	assert.False(t, b.Attached())

	_, err = d.Replace(0, "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, d.Names())
	assert.Equal(t, 6, h.UndoCount())

	for h.CanUndo() {
		require.NoError(t, h.Undo())
	}
	assert.Empty(t, d.Names())
	assert.False(t, a.Attached())
	assert.Equal(t, 2, a.Moved)

	for h.CanRedo() {
		require.NoError(t, h.Redo())
	}
	assert.Equal(t, []string{"z", "a"}, d.Names())
	assert.True(t, a.Attached())
}

func TestItemErrors(t *testing.T) {
	d, _ := newDoc(t)

	_, err := d.Add("x", 5)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
	_, err = d.Remove(0)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
	assert.ErrorIs(t, d.Move(0, 1), collection.ErrIndexOutOfRange)
	_, err = d.Replace(0, "y")
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
}

func TestClear(t *testing.T) {
	d, h := newDoc(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := d.Add(name, -1)
		require.NoError(t, err)
	}
	h.Clear()

	require.NoError(t, d.Clear())
	assert.Empty(t, d.Names())
	assert.Equal(t, 1, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Equal(t, []string{"a", "b", "c"}, d.Names())
}

func TestSetItems(t *testing.T) {
	d, h := newDoc(t)
	first := d.Items()
	second := collection.NewList[*Item]()

	require.True(t, d.SetItems(second))
	assert.False(t, h.Listening(first))
	assert.True(t, h.Listening(second))

	_, err := d.Add("x", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())

	require.NoError(t, h.Undo())
	assert.Equal(t, 0, second.Len())
	require.NoError(t, h.Undo())
	assert.Same(t, first, d.Items())
	assert.True(t, h.Listening(first))
	assert.False(t, h.Listening(second))
}

func TestNilItems(t *testing.T) {
	d, _ := newDoc(t)
	d.SetItems(nil)

	_, err := d.Add("x", -1)
	assert.ErrorIs(t, err, ErrNoItems)
	_, err = d.Remove(0)
	assert.ErrorIs(t, err, ErrNoItems)
	_, err = d.Replace(0, "x")
	assert.ErrorIs(t, err, ErrNoItems)
	assert.ErrorIs(t, d.Move(0, 0), ErrNoItems)
	assert.ErrorIs(t, d.Clear(), ErrNoItems)
	assert.Nil(t, d.Names())
	assert.Empty(t, d.Snapshot().Items)
}

func TestTags(t *testing.T) {
	d, h := newDoc(t)
	got := record(d)

	assert.True(t, d.AddTag("work"))
	assert.True(t, d.AddTag("draft"))
	assert.False(t, d.AddTag("work"))
	assert.True(t, d.RemoveTag("work"))
	assert.False(t, d.RemoveTag("missing"))
	assert.Equal(t, []string{"draft"}, d.Tags())
	assert.Equal(t, 3, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Equal(t, []string{"draft", "work"}, d.Tags())
	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.Empty(t, d.Tags())

	require.NoError(t, h.Redo())
	assert.True(t, d.HasTag("work"))
	assert.Len(t, *got, 7)
}

func TestWithoutHistory(t *testing.T) {
	d := New(nil)

	d.SetTitle("t")
	d.AddTag("x")
	_, err := d.Add("a", -1)
	require.NoError(t, err)
	require.NoError(t, d.Clear())

	assert.Equal(t, "t", d.Title())
	assert.Equal(t, []string{"x"}, d.Tags())
	assert.Empty(t, d.Names())
	d.Close()
}

func TestBatchEdit(t *testing.T) {
	d, h := newDoc(t)

	err := h.Batch(func() error {
		d.SetTitle("Report")
		d.SetCount(2)
		d.AddTag("q3")
		_, err := d.Add("summary", -1)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.UndoCount())

	require.NoError(t, h.Undo())
	assert.Empty(t, d.Title())
	assert.Equal(t, 0, d.Count())
	assert.Empty(t, d.Tags())
	assert.Empty(t, d.Names())
}

func TestSnapshot(t *testing.T) {
	d, _ := newDoc(t)
	d.SetTitle("Doc")
	d.SetFlag(Hidden, true)
	d.AddTag("b")
	d.AddTag("a")
	item, err := d.Add("one", -1)
	require.NoError(t, err)

	s := d.Snapshot()
	assert.Equal(t, d.ID().String(), s.ID)
	assert.Equal(t, "Doc", s.Title)
	assert.Equal(t, []string{"hidden"}, s.Flags)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	require.Len(t, s.Items, 1)
	assert.Equal(t, ItemSnapshot{ID: item.ID.String(), Name: "one", Added: 1}, s.Items[0])

	assert.Equal(t, []string{}, New(nil).Snapshot().Flags)
}
