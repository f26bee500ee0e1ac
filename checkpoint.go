// checkpoint.go
package eddy

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/bethropolis/eddy/event"
	"github.com/bethropolis/eddy/internal/logger"
)

// Checkpoint describes a named restore point in the history tree.
type Checkpoint struct {
	ID   ActionID
	Name string
}

// CreateCheckpoint inserts a named, no-op marker node at the current
// position. Checkpoints survive pruning and can be restored to from
// anywhere in the tree.
func (e *Engine) CreateCheckpoint(name string) ActionID {
	e.mu.Lock()
	a := checkpointAction(name)
	e.normalize(&a)
	id := e.insertLocked(a, true, name)
	snap := e.finishLocked()
	e.mu.Unlock()

	logger.Debugf("Engine: checkpoint %q created as %q", name, id)
	e.notify(snap)
	if e.events != nil {
		e.events.Dispatch(event.TypeCheckpointCreated, event.CheckpointCreatedData{
			ID:   string(id),
			Name: name,
		})
	}
	return id
}

// Checkpoints returns every checkpoint in the tree, oldest first.
func (e *Engine) Checkpoints() []Checkpoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkpointsLocked()
}

// FindCheckpoints returns the checkpoints whose names fuzzy-match query,
// best match first. An empty query returns all checkpoints in creation
// order, which makes it directly usable behind a picker UI.
func (e *Engine) FindCheckpoints(query string) []Checkpoint {
	e.mu.Lock()
	all := e.checkpointsLocked()
	e.mu.Unlock()

	if query == "" {
		return all
	}
	names := make([]string, len(all))
	for i, cp := range all {
		names[i] = cp.Name
	}
	matches := fuzzy.Find(query, names)
	found := make([]Checkpoint, len(matches))
	for i, m := range matches {
		found[i] = all[m.Index]
	}
	return found
}

// RestoreCheckpoint moves the current position to the checkpoint node id.
// It fails with ErrUnknownNode or ErrNotCheckpoint, without touching any
// state, when id does not name a checkpoint.
func (e *Engine) RestoreCheckpoint(id ActionID) error {
	e.mu.Lock()
	n, ok := e.nodes[id]
	if !ok || id == sentinelID {
		e.mu.Unlock()
		return fmt.Errorf("restore checkpoint %q: %w", id, ErrUnknownNode)
	}
	if !n.checkpoint {
		e.mu.Unlock()
		return fmt.Errorf("restore checkpoint %q: %w", id, ErrNotCheckpoint)
	}
	e.mu.Unlock()
	return e.Restore(id)
}

// RestoreCheckpointNamed restores to the most recently created checkpoint
// carrying the given name.
func (e *Engine) RestoreCheckpointNamed(name string) error {
	e.mu.Lock()
	var target ActionID
	var targetSeq uint64
	for id, n := range e.nodes {
		if n.checkpoint && n.name == name && n.seq >= targetSeq {
			target = id
			targetSeq = n.seq
		}
	}
	e.mu.Unlock()

	if target == "" {
		return fmt.Errorf("restore checkpoint named %q: %w", name, ErrUnknownNode)
	}
	return e.Restore(target)
}

func (e *Engine) checkpointsLocked() []Checkpoint {
	type seqCheckpoint struct {
		cp  Checkpoint
		seq uint64
	}
	var found []seqCheckpoint
	for id, n := range e.nodes {
		if n.checkpoint {
			found = append(found, seqCheckpoint{Checkpoint{ID: id, Name: n.name}, n.seq})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	cps := make([]Checkpoint, len(found))
	for i, f := range found {
		cps[i] = f.cp
	}
	return cps
}
