package eddy

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scratch is a minimal "document" for tests: a string that actions append
// to. Revert checks the expected suffix is present, so any engine
// misordering surfaces as a test error instead of silently corrupting state.
type scratch struct {
	s string
}

func (d *scratch) action(id, text string) Action {
	return Action{
		ID:          ActionID(id),
		Kind:        "append",
		Description: "append " + text,
		Apply: func() error {
			d.s += text
			return nil
		},
		Revert: func() error {
			if !strings.HasSuffix(d.s, text) {
				return fmt.Errorf("cannot revert %q: state is %q", text, d.s)
			}
			d.s = strings.TrimSuffix(d.s, text)
			return nil
		},
	}
}

// push performs the edit (the caller's job) and records it.
func (d *scratch) push(e *Engine, id, text string) ActionID {
	a := d.action(id, text)
	d.s += text
	return e.Push(a)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{})
}

func TestUndoStackEquivalence(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	for i := 0; i < 5; i++ {
		d.push(e, "", fmt.Sprintf("x%d", i))
	}
	require.Equal(t, 5, e.Len())

	for i := 0; i < 5; i++ {
		ok, err := e.Undo()
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, "", d.s, "all undos should restore the initial state")
	assert.False(t, e.CanUndo())
	assert.True(t, e.CanRedo())
}

func TestRedoReinstates(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "a", "A")
	d.push(e, "b", "B")

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "A", d.s)

	ok, err = e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AB", d.s)
}

func TestBranchCreatedOnEditAfterUndo(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	idA := d.push(e, "a", "A")
	idB := d.push(e, "b", "B")

	_, err := e.Undo()
	require.NoError(t, err)
	idC := d.push(e, "c", "C")

	// Both branches hang off A; the abandoned future was kept, not truncated.
	require.Equal(t, 3, e.Len())
	nodeA := e.nodes[idA]
	assert.Equal(t, []ActionID{idB, idC}, nodeA.children, "children keep creation order, newest last")

	// Redo from A resumes the newest branch (C), not the original (B).
	_, err = e.Undo()
	require.NoError(t, err)
	require.Equal(t, "A", d.s)

	ok, err := e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AC", d.s)
	assert.Equal(t, idC, e.History()[0].ID)

	// The old branch stays reachable through Restore.
	require.NoError(t, e.Restore(idB))
	assert.Equal(t, "AB", d.s)
}

func TestHistoryScenario(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "a1", "rect")
	d.push(e, "a2", "move")

	ids := func() []ActionID {
		var got []ActionID
		for _, entry := range e.History() {
			got = append(got, entry.ID)
		}
		return got
	}

	require.Equal(t, []ActionID{"a2", "a1"}, ids())

	ok, err := e.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []ActionID{"a1"}, ids())
	assert.True(t, e.CanRedo())

	ok, err = e.Redo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []ActionID{"a2", "a1"}, ids())
	assert.Equal(t, "rectmove", d.s)
}

func TestUndoRedoNothing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	ok, err := e.Undo()
	assert.False(t, ok)
	assert.NoError(t, err)
	ok, err = e.Redo()
	assert.False(t, ok)
	assert.NoError(t, err)

	// Same after pushing and fully undoing.
	d := &scratch{}
	d.push(e, "a", "A")
	_, err = e.Undo()
	require.NoError(t, err)
	ok, err = e.Undo()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestCallbackErrorDoesNotAdvance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "a", "A")

	boom := fmt.Errorf("revert exploded")
	e.Push(Action{
		ID:     "bad",
		Revert: func() error { return boom },
	})

	ok, err := e.Undo()
	assert.False(t, ok)
	require.ErrorIs(t, err, boom)

	// The failing step did not move the current position.
	require.Len(t, e.History(), 2)
	assert.Equal(t, ActionID("bad"), e.History()[0].ID)
	assert.True(t, e.CanUndo())
	assert.Equal(t, "A", d.s)
}

func TestApplyErrorDoesNotAdvance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	boom := fmt.Errorf("apply exploded")
	e.Push(Action{
		ID:    "bad",
		Apply: func() error { return boom },
	})
	_, err := e.Undo()
	require.NoError(t, err)

	ok, err := e.Redo()
	assert.False(t, ok)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, e.History())
	assert.True(t, e.CanRedo())
}

func TestGeneratedAndDeduplicatedIDs(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	first := d.push(e, "", "A")
	assert.NotEmpty(t, first)

	second := d.push(e, string(first), "B")
	assert.NotEqual(t, first, second, "a taken id must be regenerated")
	assert.Equal(t, 2, e.Len())
}

func TestClearResetsTree(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "a", "A")
	e.CreateCheckpoint("mark")

	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
	assert.Empty(t, e.History())
	assert.Empty(t, e.Checkpoints())
}

func TestHistoryEntryMetadata(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	d := &scratch{}
	d.push(e, "a", "A")
	e.CreateCheckpoint("before refactor")

	entries := e.History()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Checkpoint)
	assert.Equal(t, "before refactor", entries[0].CheckpointName)
	assert.Equal(t, "append", entries[1].Kind)
	assert.Equal(t, "append A", entries[1].Description)
	assert.False(t, entries[1].CreatedAt.IsZero())
}
