// notify.go
package eddy

import (
	"time"

	"github.com/bethropolis/eddy/event"
	"github.com/bethropolis/eddy/internal/logger"
)

// Entry is one element of the history chain exposed to listeners and to
// History() callers. It carries the action's metadata only; the executable
// callbacks stay inside the engine.
type Entry struct {
	ID             ActionID
	Kind           string
	Description    string
	CreatedAt      time.Time
	Checkpoint     bool
	CheckpointName string
}

// Snapshot is the immutable view handed to listeners after every
// state-mutating operation.
type Snapshot struct {
	CanUndo bool
	CanRedo bool
	History []Entry // current position first, oldest ancestor last
}

// Subscribe registers fn to be called synchronously, exactly once, after
// every state-mutating operation. The returned function removes the
// subscription. Listeners run outside the engine's internal lock but still
// within the operation, so they may query the engine; they must not be
// re-entered from other goroutines.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextListen
	e.nextListen++
	e.listeners[id] = fn
	e.mu.Unlock()

	logger.Debugf("Engine: listener %d subscribed", id)
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

func entryFor(n *node) Entry {
	return Entry{
		ID:             n.action.ID,
		Kind:           n.action.Kind,
		Description:    n.action.Description,
		CreatedAt:      n.action.CreatedAt,
		Checkpoint:     n.checkpoint,
		CheckpointName: n.name,
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		CanUndo: e.current != sentinelID,
		CanRedo: len(e.nodes[e.current].children) > 0,
		History: e.historyLocked(),
	}
}

// notify fans snap out to every subscribed listener and mirrors it onto the
// event bus. Called without the engine lock held.
func (e *Engine) notify(snap Snapshot) {
	e.mu.Lock()
	fns := make([]func(Snapshot), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	if e.events != nil {
		e.events.Dispatch(event.TypeHistoryChanged, snap)
	}
}
