package pad

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeymapDefaults(t *testing.T) {
	t.Parallel()

	k := NewKeymap()

	cases := []struct {
		key  tcell.Key
		want Action
	}{
		{tcell.KeyCtrlZ, ActionUndo},
		{tcell.KeyCtrlY, ActionRedo},
		{tcell.KeyCtrlB, ActionCheckpoint},
		{tcell.KeyCtrlG, ActionGroupToggle},
		{tcell.KeyBackspace2, ActionBackspace},
		{tcell.KeyEnter, ActionNewline},
		{tcell.KeyEscape, ActionQuit},
	}
	for _, c := range cases {
		ev := tcell.NewEventKey(c.key, 0, tcell.ModNone)
		assert.Equal(t, c.want, k.Decode(ev).Action, "key %v", c.key)
	}
}

func TestKeymapRuneFallthrough(t *testing.T) {
	t.Parallel()

	k := NewKeymap()
	ev := tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)
	got := k.Decode(ev)
	assert.Equal(t, ActionInsertRune, got.Action)
	assert.Equal(t, 'é', got.Rune)

	// Modified runes are not inserted.
	ev = tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt)
	assert.Equal(t, ActionNone, k.Decode(ev).Action)
}
