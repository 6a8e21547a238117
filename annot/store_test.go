package annot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newText(page int, x, y float64, text string) *Text {
	return &Text{Base: NewBase(page, x, y), Text: text, FontSize: 14, Color: "#000000"}
}

func ids(list []Annotation) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID()
	}
	return out
}

func TestStoreAddRemoveUndoRedo(t *testing.T) {
	s := NewStore()
	a := newText(0, 1, 1, "a")
	b := newText(0, 2, 2, "b")

	s.Add(a)
	s.Add(b)
	require.Equal(t, 2, s.Len())

	require.True(t, s.Undo())
	assert.Equal(t, []string{a.ID()}, ids(s.All()))

	require.True(t, s.Redo())
	assert.Equal(t, []string{a.ID(), b.ID()}, ids(s.All()), "redo must restore original order")

	require.True(t, s.Remove(b.ID()))
	assert.Equal(t, 1, s.Len())
	require.True(t, s.Undo())
	assert.Equal(t, 2, s.Len())
}

func TestStoreUndoEmptyIsNoop(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())

	s.Add(newText(0, 0, 0, "x"))
	assert.False(t, s.Redo(), "redo with empty future is a no-op")
}

func TestStoreRemoveUnknownLeavesHistoryAlone(t *testing.T) {
	s := NewStore()
	s.Add(newText(0, 0, 0, "x"))
	assert.False(t, s.Remove("nope"))
	assert.Len(t, s.past, 1)
}

func TestStoreUpdateDoesNotSnapshot(t *testing.T) {
	s := NewStore()
	a := newText(0, 10, 10, "x")
	s.Add(a)
	before := len(s.past)

	s.Update(a.ID(), func(an Annotation) { an.MoveTo(20, 20) })
	assert.Equal(t, before, len(s.past))
	assert.Equal(t, 20.0, s.Get(a.ID()).Origin().X)

	s.Update("nope", func(an Annotation) { t.Fatal("must not be called") })
}

func TestStoreTransactionUndoneInOneStep(t *testing.T) {
	s := NewStore()
	a := newText(0, 10, 10, "x")
	s.Add(a)

	s.BeginTransaction()
	for i := 1; i <= 5; i++ {
		v := 10 + float64(i)*8
		s.Update(a.ID(), func(an Annotation) { an.MoveTo(v, v) })
	}
	require.Equal(t, 50.0, s.Get(a.ID()).Origin().X)

	require.True(t, s.Undo())
	got := s.Get(a.ID())
	require.NotNil(t, got)
	assert.Equal(t, 10.0, got.Origin().X)
	assert.Equal(t, 10.0, got.Origin().Y)

	// The whole gesture was one step: the next undo removes the annotation.
	require.True(t, s.Undo())
	assert.Equal(t, 0, s.Len())
}

func TestStoreHistoryIsBounded(t *testing.T) {
	s := NewStore()
	for i := 0; i < HistoryDepth+25; i++ {
		s.Add(newText(0, float64(i), 0, fmt.Sprintf("a%d", i)))
		assert.LessOrEqual(t, len(s.past), HistoryDepth)
	}
	assert.Len(t, s.past, HistoryDepth)

	for s.Undo() {
	}
	assert.LessOrEqual(t, len(s.future), HistoryDepth)
	// Only the most recent 50 mutations were undoable.
	assert.Equal(t, 25, s.Len())
}

func TestStoreSnapshotIsDetached(t *testing.T) {
	s := NewStore()
	a := newText(0, 1, 1, "x")
	s.Add(a)

	snap := s.Snapshot()
	s.Update(a.ID(), func(an Annotation) { an.MoveTo(99, 99) })

	assert.Equal(t, 1.0, snap[0].Origin().X, "export snapshot must not see later edits")
}

func TestStoreHistorySnapshotsAreIsolatedFromUpdates(t *testing.T) {
	s := NewStore()
	a := newText(0, 1, 1, "x")
	s.Add(a)
	s.BeginTransaction()
	s.Update(a.ID(), func(an Annotation) { an.MoveTo(2, 2) })
	s.BeginTransaction()
	s.Update(a.ID(), func(an Annotation) { an.MoveTo(3, 3) })

	require.True(t, s.Undo())
	assert.Equal(t, 2.0, s.Get(a.ID()).Origin().X)
	require.True(t, s.Undo())
	assert.Equal(t, 1.0, s.Get(a.ID()).Origin().X)
}
