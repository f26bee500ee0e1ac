// internal/pad/statusbar.go
package pad

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/eddy"
)

// StatusBarConfig defines the appearance and behavior of the status bar.
type StatusBarConfig struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultStatusBarConfig provides sensible defaults.
func DefaultStatusBarConfig() StatusBarConfig {
	return StatusBarConfig{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar renders one line summarizing the engine state: history depth,
// undo/redo availability, checkpoint count, grouping indicator, cursor.
// It is fed by the engine's Subscribe snapshots.
type StatusBar struct {
	config StatusBarConfig
	mu     sync.RWMutex

	snap        eddy.Snapshot
	checkpoints int
	grouping    bool
	cursor      Position

	tempMessage     string
	tempMessageTime time.Time
}

// NewStatusBar creates a StatusBar with the given configuration.
func NewStatusBar(config StatusBarConfig) *StatusBar {
	return &StatusBar{config: config}
}

// SetSnapshot updates the history view shown in the bar.
func (sb *StatusBar) SetSnapshot(snap eddy.Snapshot) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.snap = snap
}

// SetCheckpointCount updates the displayed checkpoint count.
func (sb *StatusBar) SetCheckpointCount(n int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.checkpoints = n
}

// SetGrouping toggles the grouping indicator.
func (sb *StatusBar) SetGrouping(on bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.grouping = on
}

// SetCursor updates the cursor position shown.
func (sb *StatusBar) SetCursor(pos Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursor = pos
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// getDefaultDisplayText builds the default status line text. Assumes the
// lock is held.
func (sb *StatusBar) getDefaultDisplayText() string {
	mark := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "no"
	}
	groupIndicator := ""
	if sb.grouping {
		groupIndicator = " [GROUP]"
	}
	last := ""
	if len(sb.snap.History) > 0 {
		last = fmt.Sprintf(" -- %s", sb.snap.History[0].Description)
	}
	return fmt.Sprintf("eddy-pad -- Line: %d, Col: %d -- depth:%d undo:%s redo:%s marks:%d%s%s",
		sb.cursor.Line+1, sb.cursor.Col+1, len(sb.snap.History),
		mark(sb.snap.CanUndo), mark(sb.snap.CanRedo), sb.checkpoints,
		groupIndicator, last)
}

// Draw renders the status bar onto the screen using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text string
	if isTempMsgActive {
		text = sb.tempMessage
		style = sb.config.StyleMessage
	} else {
		text = sb.getDefaultDisplayText()
		style = sb.config.StyleDefault
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	// Walk grapheme clusters so wide characters advance by their real width.
	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(currentX, y, runes[0], combining, style)
		}
		currentX += clusterWidth
	}
}
