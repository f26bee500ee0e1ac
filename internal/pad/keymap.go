// internal/pad/keymap.go
package pad

import (
	"github.com/gdamore/tcell/v2"
)

// Action identifies an editor operation the keymap can produce.
type Action int

const (
	ActionNone Action = iota
	ActionInsertRune
	ActionNewline
	ActionBackspace
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionUndo
	ActionRedo
	ActionCheckpoint
	ActionRestoreCheckpoint
	ActionGroupToggle
	ActionCopyLine
	ActionPaste
	ActionQuit
)

// ActionEvent pairs an action with the rune that triggered it (set only for
// ActionInsertRune).
type ActionEvent struct {
	Action Action
	Rune   rune
}

// Keymap maps tcell key events to pad actions.
type Keymap struct {
	keys map[tcell.Key]Action
}

// NewKeymap creates a keymap with the default bindings.
func NewKeymap() *Keymap {
	k := &Keymap{keys: make(map[tcell.Key]Action)}
	k.keys[tcell.KeyUp] = ActionMoveUp
	k.keys[tcell.KeyDown] = ActionMoveDown
	k.keys[tcell.KeyLeft] = ActionMoveLeft
	k.keys[tcell.KeyRight] = ActionMoveRight
	k.keys[tcell.KeyHome] = ActionMoveHome
	k.keys[tcell.KeyEnd] = ActionMoveEnd
	k.keys[tcell.KeyEnter] = ActionNewline
	k.keys[tcell.KeyBackspace] = ActionBackspace
	k.keys[tcell.KeyBackspace2] = ActionBackspace
	k.keys[tcell.KeyCtrlZ] = ActionUndo
	k.keys[tcell.KeyCtrlY] = ActionRedo
	k.keys[tcell.KeyCtrlB] = ActionCheckpoint
	k.keys[tcell.KeyCtrlR] = ActionRestoreCheckpoint
	k.keys[tcell.KeyCtrlG] = ActionGroupToggle
	k.keys[tcell.KeyCtrlK] = ActionCopyLine
	k.keys[tcell.KeyCtrlV] = ActionPaste
	k.keys[tcell.KeyEscape] = ActionQuit
	k.keys[tcell.KeyCtrlC] = ActionQuit
	return k
}

// Decode translates a tcell key event into an ActionEvent. Plain runes fall
// through to ActionInsertRune.
func (k *Keymap) Decode(ev *tcell.EventKey) ActionEvent {
	if action, ok := k.keys[ev.Key()]; ok {
		return ActionEvent{Action: action}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionNone}
}
