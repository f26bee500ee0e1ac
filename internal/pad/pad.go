// internal/pad/pad.go
package pad

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/eddy"
	"github.com/bethropolis/eddy/event"
	"github.com/bethropolis/eddy/internal/logger"
)

// Options configures a Pad.
type Options struct {
	Engine          *eddy.Engine
	Events          *event.Manager // shared with the engine; carries the shortcut signals
	SystemClipboard bool
	StatusBarHeight int
}

// Pad is the interactive scratch pad. It exercises the engine through its
// public API only: every keystroke becomes a pushed action, paste commits as
// a group, Ctrl+Z/Ctrl+Y travel over the event bus the same way any other
// host keybinding layer would dispatch them.
type Pad struct {
	doc    *Document
	engine *eddy.Engine
	events *event.Manager
	screen tcell.Screen
	status *StatusBar
	keymap *Keymap
	clip   *Clipboard

	cursor       Position
	statusHeight int
	grouping     bool
	markSeq      int
	quit         bool

	unsubscribe func()
}

// New creates a Pad and initializes its terminal screen.
func New(opts Options) (*Pad, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)

	p := &Pad{
		doc:          NewDocument(),
		engine:       opts.Engine,
		events:       opts.Events,
		screen:       screen,
		status:       NewStatusBar(DefaultStatusBarConfig()),
		keymap:       NewKeymap(),
		clip:         NewClipboard(opts.SystemClipboard),
		statusHeight: opts.StatusBarHeight,
	}
	if p.statusHeight <= 0 {
		p.statusHeight = 1
	}

	p.unsubscribe = p.engine.Subscribe(func(snap eddy.Snapshot) {
		p.status.SetSnapshot(snap)
		p.status.SetCheckpointCount(len(p.engine.Checkpoints()))
		// The document may have changed under the cursor (undo, restore).
		p.cursor = p.doc.Clamp(p.cursor)
	})
	return p, nil
}

// Run drives the event loop until quit. It always restores the terminal.
func (p *Pad) Run() error {
	defer p.close()

	p.draw()
	for !p.quit {
		ev := p.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			p.handleKey(ev)
		case nil:
			return nil // screen finalized
		}
		p.draw()
	}
	return nil
}

func (p *Pad) close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.screen.Fini()
}

func (p *Pad) handleKey(ev *tcell.EventKey) {
	ae := p.keymap.Decode(ev)
	switch ae.Action {
	case ActionInsertRune:
		p.insert([]byte(string(ae.Rune)))
	case ActionNewline:
		p.insert([]byte("\n"))
	case ActionBackspace:
		p.backspace()
	case ActionMoveUp:
		p.cursor = p.doc.Clamp(Position{Line: p.cursor.Line - 1, Col: p.cursor.Col})
	case ActionMoveDown:
		p.cursor = p.doc.Clamp(Position{Line: p.cursor.Line + 1, Col: p.cursor.Col})
	case ActionMoveLeft:
		p.cursor = p.doc.PrevBoundary(p.cursor)
	case ActionMoveRight:
		p.cursor = p.doc.Clamp(Position{Line: p.cursor.Line, Col: p.cursor.Col + 1})
	case ActionMoveHome:
		p.cursor.Col = 0
	case ActionMoveEnd:
		p.cursor = p.doc.Clamp(Position{Line: p.cursor.Line, Col: math.MaxInt})
	case ActionUndo:
		// Routed over the bus: the engine answers TypeUndoRequested itself.
		p.events.Dispatch(event.TypeUndoRequested, event.UndoRequestedData{})
	case ActionRedo:
		p.events.Dispatch(event.TypeRedoRequested, event.RedoRequestedData{})
	case ActionCheckpoint:
		p.markSeq++
		name := fmt.Sprintf("mark-%d", p.markSeq)
		p.engine.CreateCheckpoint(name)
		p.status.SetTemporaryMessage("Checkpoint %q created", name)
	case ActionRestoreCheckpoint:
		p.restoreNewestCheckpoint()
	case ActionGroupToggle:
		p.toggleGroup()
	case ActionCopyLine:
		p.copyLine()
	case ActionPaste:
		p.paste()
	case ActionQuit:
		p.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
		p.quit = true
	}
}

func (p *Pad) insert(text []byte) {
	act, end, err := Insert(p.doc, p.cursor, text)
	if err != nil {
		logger.Errorf("Pad: insert failed: %v", err)
		return
	}
	p.engine.Push(act)
	p.cursor = end
}

func (p *Pad) backspace() {
	from := p.doc.PrevBoundary(p.cursor)
	if from == p.cursor {
		return
	}
	act, _, err := Delete(p.doc, from, p.cursor)
	if err != nil {
		logger.Errorf("Pad: delete failed: %v", err)
		return
	}
	p.engine.Push(act)
	p.cursor = from
}

func (p *Pad) restoreNewestCheckpoint() {
	cps := p.engine.Checkpoints()
	if len(cps) == 0 {
		p.status.SetTemporaryMessage("No checkpoints")
		return
	}
	newest := cps[len(cps)-1]
	if err := p.engine.RestoreCheckpoint(newest.ID); err != nil {
		p.status.SetTemporaryMessage("Restore failed: %v", err)
		return
	}
	p.status.SetTemporaryMessage("Restored checkpoint %q", newest.Name)
}

func (p *Pad) toggleGroup() {
	if !p.grouping {
		p.engine.StartGroup()
		p.grouping = true
		p.status.SetGrouping(true)
		p.status.SetTemporaryMessage("Grouping started")
		return
	}
	_, ok := p.engine.EndGroup("batch")
	p.grouping = false
	p.status.SetGrouping(false)
	if ok {
		p.status.SetTemporaryMessage("Group committed")
	} else {
		p.status.SetTemporaryMessage("Group was empty")
	}
}

func (p *Pad) copyLine() {
	line, err := p.doc.Line(p.cursor.Line)
	if err != nil {
		return
	}
	p.clip.Write(string(line))
	p.status.SetTemporaryMessage("Line copied")
}

// paste inserts clipboard content line by line inside a group, so one undo
// removes the whole paste.
func (p *Pad) paste() {
	text := p.clip.Read()
	if text == "" {
		p.status.SetTemporaryMessage("Clipboard empty")
		return
	}
	segments := bytes.Split([]byte(text), []byte("\n"))
	p.engine.StartGroup()
	for i, seg := range segments {
		if i > 0 {
			p.insert([]byte("\n"))
		}
		if len(seg) > 0 {
			p.insert(seg)
		}
	}
	if _, ok := p.engine.EndGroup("paste"); ok {
		p.status.SetTemporaryMessage("Pasted %d line(s)", len(segments))
	}
}

func (p *Pad) draw() {
	p.screen.Clear()
	width, height := p.screen.Size()
	textHeight := height - p.statusHeight

	for y := 0; y < textHeight && y < p.doc.LineCount(); y++ {
		line, _ := p.doc.Line(y)
		x := 0
		for _, r := range string(line) {
			if x >= width {
				break
			}
			p.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}

	p.status.SetCursor(p.cursor)
	p.status.Draw(p.screen, width, height)
	if p.cursor.Line < textHeight {
		p.screen.ShowCursor(p.cursor.Col, p.cursor.Line)
	}
	p.screen.Show()
}
