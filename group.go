// group.go
package eddy

import (
	"github.com/bethropolis/eddy/internal/logger"
)

// StartGroup begins buffering subsequent Push calls into one composite,
// atomically undoable action. Grouping is not reentrant: calling StartGroup
// while a group is already open discards the previously buffered actions
// (their document effects stand, but they will never become history). That
// is deliberate leniency towards caller misuse rather than an error.
func (e *Engine) StartGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.grouping && len(e.buffer) > 0 {
		logger.Warnf("Engine: StartGroup while grouping, discarding %d buffered action(s)", len(e.buffer))
	}
	e.grouping = true
	e.buffer = nil
}

// EndGroup closes the open group and inserts one node wrapping everything
// buffered since StartGroup: its Revert replays the members' reverts in
// reverse order, its Apply replays the originals in order. Returns the new
// node's id. If no group was open, or the buffer is empty, no node is
// created and ok is false.
func (e *Engine) EndGroup(description string) (id ActionID, ok bool) {
	e.mu.Lock()
	if !e.grouping {
		e.mu.Unlock()
		return "", false
	}
	e.grouping = false
	buffered := e.buffer
	e.buffer = nil
	if len(buffered) == 0 {
		logger.Debugf("Engine: EndGroup with empty buffer, no node created")
		e.mu.Unlock()
		return "", false
	}

	composite := compositeAction(description, buffered)
	e.normalize(&composite)
	id = e.insertLocked(composite, false, "")
	logger.Debugf("Engine: grouped %d action(s) into %q", len(buffered), id)
	snap := e.finishLocked()
	e.mu.Unlock()

	e.notify(snap)
	return id, true
}
