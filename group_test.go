package eddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupingAtomicity(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "base", "X")

	e.StartGroup()
	d.push(e, "a", "A")
	d.push(e, "b", "B")
	id, ok := e.EndGroup("batch")
	require.True(t, ok)
	require.NotEmpty(t, id)

	// Exactly one node was inserted for the whole batch.
	require.Equal(t, 2, e.Len())
	require.Equal(t, "XAB", d.s)
	entries := e.History()
	require.Len(t, entries, 2)
	assert.Equal(t, "group", entries[0].Kind)
	assert.Equal(t, "batch", entries[0].Description)

	// One undo reverts both members (in reverse order, which the scratch
	// suffix check enforces).
	ok2, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok2)
	assert.Equal(t, "X", d.s)

	// One redo replays both in original order.
	ok2, err = e.Redo()
	require.NoError(t, err)
	require.True(t, ok2)
	assert.Equal(t, "XAB", d.s)
}

func TestEndGroupEmptyBuffer(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.StartGroup()
	id, ok := e.EndGroup("nothing")
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, 0, e.Len())

	// Pushes after the empty EndGroup become ordinary nodes again.
	d := &scratch{}
	d.push(e, "a", "A")
	assert.Equal(t, 1, e.Len())
}

func TestEndGroupWithoutStart(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	id, ok := e.EndGroup("stray")
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestNestedStartGroupDiscardsBuffer(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}

	e.StartGroup()
	d.push(e, "a", "A")
	e.StartGroup() // misuse: silently drops the buffered "A"
	d.push(e, "b", "B")
	_, ok := e.EndGroup("batch")
	require.True(t, ok)

	// Only "B" made it into history; "A"'s document effect stands but it is
	// not undoable.
	require.Equal(t, 1, e.Len())
	require.Equal(t, "AB", d.s)

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "A", d.s)
	assert.False(t, e.CanUndo())
}

func TestGroupedPushesDoNotNotify(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}

	calls := 0
	unsubscribe := e.Subscribe(func(Snapshot) { calls++ })
	defer unsubscribe()

	e.StartGroup()
	d.push(e, "a", "A")
	d.push(e, "b", "B")
	assert.Equal(t, 0, calls, "buffered pushes are not state mutations yet")

	_, ok := e.EndGroup("batch")
	require.True(t, ok)
	assert.Equal(t, 1, calls, "the composite insertion notifies once")
}
