// Package eddy implements a branching undo/redo engine for interactive
// editors. Edits are recorded as a tree rather than a linear stack: undoing
// and then performing a new edit keeps the abandoned "future" as a sibling
// branch instead of truncating it. The engine supports named checkpoints,
// grouping of sequential actions into one undoable unit, automatic pruning
// to bound memory, listener notification, and best-effort structural
// persistence of session metadata.
//
// The engine is single-actor and non-reentrant by contract: every public
// operation, including its listener notifications, runs to completion before
// the next one begins. Callers driving it from asynchronous contexts must
// serialize their own calls.
package eddy

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/eddy/event"
	"github.com/bethropolis/eddy/internal/logger"
	"github.com/bethropolis/eddy/store"
)

// DefaultMaxNodes is the pruning ceiling used when Config.MaxNodes is unset.
const DefaultMaxNodes = 100

// Config carries the construction parameters for an Engine. The zero value
// is usable: defaults are applied for every unset field.
type Config struct {
	// MaxNodes is the soft ceiling on retained history nodes (the sentinel
	// root is not counted). Defaults to DefaultMaxNodes.
	MaxNodes int

	// SessionID keys the structural persistence records. Generated when empty.
	SessionID string

	// Store receives structural session records after every state mutation.
	// Defaults to store.Nop. The engine never closes an injected store.
	Store store.Store

	// Events, when non-nil, wires the engine to an ambient signal bus: it
	// subscribes to TypeUndoRequested/TypeRedoRequested and dispatches
	// TypeHistoryChanged (carrying a Snapshot) after every mutation.
	Events *event.Manager
}

// Engine owns the history tree for one editor session.
type Engine struct {
	mu      sync.Mutex
	nodes   map[ActionID]*node
	current ActionID // sentinelID when fully undone

	maxNodes  int
	seq       uint64 // monotonic insertion counter, survives Clear
	sessionID string
	st        store.Store
	prior     *store.Record

	grouping bool
	buffer   []Action

	listeners  map[int]func(Snapshot)
	nextListen int

	events        *event.Manager
	undoHandlerID event.HandlerID
	redoHandlerID event.HandlerID
}

// New constructs an Engine from cfg, applying defaults for unset fields and
// reading back any prior session record for diagnostic continuity. The
// read-back is purely structural: executable actions are never persisted, so
// nothing from a previous process can be replayed.
func New(cfg Config) *Engine {
	e := &Engine{
		nodes:     map[ActionID]*node{sentinelID: newSentinel()},
		current:   sentinelID,
		maxNodes:  cfg.MaxNodes,
		sessionID: cfg.SessionID,
		st:        cfg.Store,
		events:    cfg.Events,
		listeners: make(map[int]func(Snapshot)),
	}
	if e.maxNodes <= 0 {
		e.maxNodes = DefaultMaxNodes
	}
	if e.sessionID == "" {
		e.sessionID = fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	if e.st == nil {
		e.st = store.Nop{}
	}

	if rec, ok, err := e.st.Load(e.sessionID); err != nil {
		logger.Warnf("Engine: failed to read prior session record: %v", err)
	} else if ok {
		e.prior = &rec
		logger.Infof("Engine: found prior session %q with %d node(s) (structural only, not replayable)",
			rec.SessionID, len(rec.NodeIDs))
	}

	if e.events != nil {
		e.undoHandlerID = e.events.Subscribe(event.TypeUndoRequested, func(event.Event) bool {
			if _, err := e.Undo(); err != nil {
				logger.Errorf("Engine: undo request failed: %v", err)
			}
			return true
		})
		e.redoHandlerID = e.events.Subscribe(event.TypeRedoRequested, func(event.Event) bool {
			if _, err := e.Redo(); err != nil {
				logger.Errorf("Engine: redo request failed: %v", err)
			}
			return true
		})
	}

	return e
}

// PriorSession reports the structural record left behind by a previous
// process under the same session id, if one was found at construction.
func (e *Engine) PriorSession() (store.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prior == nil {
		return store.Record{}, false
	}
	return *e.prior, true
}

// Push records a new action as a child of the current position and advances
// onto it. Push never fails; the edit itself is assumed to have already been
// performed by the caller. While grouping is active the action is buffered
// instead (see StartGroup), and the returned id names the buffered action
// rather than a tree node.
func (e *Engine) Push(a Action) ActionID {
	e.mu.Lock()
	e.normalize(&a)
	if e.grouping {
		e.buffer = append(e.buffer, a)
		logger.Debugf("Engine: buffered action %q (%d pending)", a.ID, len(e.buffer))
		e.mu.Unlock()
		return a.ID
	}
	id := e.insertLocked(a, false, "")
	snap := e.finishLocked()
	e.mu.Unlock()

	e.notify(snap)
	return id
}

// Undo reverts the action at the current position and steps back to its
// parent. Returns (false, nil) when there is nothing to undo. If the
// action's Revert fails, the error is returned and the current position does
// not move: state before the failing step remains authoritative.
func (e *Engine) Undo() (bool, error) {
	e.mu.Lock()
	if e.current == sentinelID {
		logger.Debugf("Engine: nothing to undo")
		e.mu.Unlock()
		return false, nil
	}
	n := e.nodes[e.current]
	if n.action.Revert != nil {
		if err := n.action.Revert(); err != nil {
			e.mu.Unlock()
			return false, fmt.Errorf("undo %q: %w", n.action.ID, err)
		}
	}
	e.current = n.parent
	logger.Debugf("Engine: undid %q, now at %q", n.action.ID, e.current)
	snap := e.finishLocked()
	e.mu.Unlock()

	e.notify(snap)
	return true, nil
}

// Redo re-applies a child of the current position and advances onto it.
// When the current node has several children (branches), redo always picks
// the most recently created one: redoing after a new branch was started
// resumes the newest work, not the original line. Returns (false, nil) when
// there is nothing to redo. On Apply failure the position does not move.
func (e *Engine) Redo() (bool, error) {
	e.mu.Lock()
	childID := e.nodes[e.current].lastChild()
	if childID == "" {
		logger.Debugf("Engine: nothing to redo")
		e.mu.Unlock()
		return false, nil
	}
	child := e.nodes[childID]
	if child.action.Apply != nil {
		if err := child.action.Apply(); err != nil {
			e.mu.Unlock()
			return false, fmt.Errorf("redo %q: %w", childID, err)
		}
	}
	e.current = childID
	logger.Debugf("Engine: redid %q", childID)
	snap := e.finishLocked()
	e.mu.Unlock()

	e.notify(snap)
	return true, nil
}

// CanUndo reports whether an Undo would do anything.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != sentinelID
}

// CanRedo reports whether a Redo would do anything.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.nodes[e.current].children) > 0
}

// History returns the chain of recorded actions from the current position up
// to the first edit, most recent first. It is empty when fully undone.
func (e *Engine) History() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.historyLocked()
}

// Len reports the number of history nodes currently retained (the hidden
// root is not counted).
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.nodes) - 1
}

// Clear discards the whole tree, returning the engine to its initial empty
// state. The session id is retained so the persistence record keeps its key.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.nodes = map[ActionID]*node{sentinelID: newSentinel()}
	e.current = sentinelID
	e.grouping = false
	e.buffer = nil
	logger.Debugf("Engine: cleared")
	snap := e.finishLocked()
	e.mu.Unlock()

	e.notify(snap)
}

// Close detaches the engine from its event bus and writes a final structural
// record. It does not close an injected Store; the owner does that.
func (e *Engine) Close() error {
	if e.events != nil {
		e.events.Unsubscribe(event.TypeUndoRequested, e.undoHandlerID)
		e.events.Unsubscribe(event.TypeRedoRequested, e.redoHandlerID)
	}
	e.mu.Lock()
	e.persistLocked()
	e.mu.Unlock()
	return nil
}

// --- internals (callers hold e.mu) ---

// normalize stamps defaults onto an incoming action: a creation time when
// none was given, and a generated id when the caller's id is empty or
// already present in the tree.
func (e *Engine) normalize(a *Action) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if _, taken := e.nodes[a.ID]; a.ID == "" || taken {
		e.seq++
		a.ID = ActionID(fmt.Sprintf("auto-%d", e.seq))
	}
}

// insertLocked creates a node for a as a child of the current node, appends
// it to the parent's child list (keeping creation order), advances current
// onto it, and runs the pruning pass. Insertion never fails.
func (e *Engine) insertLocked(a Action, checkpoint bool, name string) ActionID {
	e.seq++
	n := &node{
		action:     a,
		parent:     e.current,
		checkpoint: checkpoint,
		name:       name,
		seq:        e.seq,
	}
	parent := e.nodes[e.current]
	parent.children = append(parent.children, a.ID)
	e.nodes[a.ID] = n
	e.current = a.ID
	logger.Debugf("Engine: inserted %q (kind=%s, parent=%q), %d node(s)",
		a.ID, a.Kind, n.parent, len(e.nodes)-1)
	e.pruneLocked()
	return a.ID
}

func (e *Engine) historyLocked() []Entry {
	var entries []Entry
	for id := e.current; id != sentinelID; {
		n := e.nodes[id]
		entries = append(entries, entryFor(n))
		id = n.parent
	}
	return entries
}

// finishLocked runs the shared tail of every state-mutating operation:
// persist the structural record, then capture the snapshot the listeners
// will receive once the lock is released.
func (e *Engine) finishLocked() Snapshot {
	e.persistLocked()
	return e.snapshotLocked()
}
