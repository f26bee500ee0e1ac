// navigate.go
package eddy

import (
	"fmt"

	"github.com/bethropolis/eddy/internal/logger"
)

// Restore moves the current position to any node in the tree, reverting and
// re-applying actions along the way. It works across branches: the path is
// computed through the lowest common ancestor of the current position and
// the target, undoing up to it and redoing down from it.
//
// If a caller callback fails mid-walk, the error propagates and the current
// position stays on the last step that completed; a single notification is
// still emitted because state moved.
func (e *Engine) Restore(id ActionID) error {
	e.mu.Lock()
	if _, ok := e.nodes[id]; !ok || id == sentinelID {
		e.mu.Unlock()
		return fmt.Errorf("restore %q: %w", id, ErrUnknownNode)
	}
	moved, err := e.walkLocked(id)
	var snap Snapshot
	if moved {
		snap = e.finishLocked()
	}
	e.mu.Unlock()

	if moved {
		e.notify(snap)
	}
	return err
}

// walkLocked executes the revert/apply sequence taking the engine from the
// current position to target. It reports whether the position moved at all
// (even partially, before an error).
func (e *Engine) walkLocked(target ActionID) (bool, error) {
	if target == e.current {
		return false, nil
	}
	lca := e.lowestCommonAncestorLocked(e.current, target)

	// Nodes strictly between current and the LCA, closest-first.
	var reverts []ActionID
	for id := e.current; id != lca; id = e.nodes[id].parent {
		reverts = append(reverts, id)
	}
	// Nodes strictly between the LCA and target, in tree order. Collected
	// target-first by walking parent links, then reversed.
	var applies []ActionID
	for id := target; id != lca; id = e.nodes[id].parent {
		applies = append(applies, id)
	}
	for i, j := 0, len(applies)-1; i < j; i, j = i+1, j-1 {
		applies[i], applies[j] = applies[j], applies[i]
	}
	logger.Debugf("Engine: restoring to %q via %q (%d revert(s), %d apply(s))",
		target, lca, len(reverts), len(applies))

	moved := false
	for _, id := range reverts {
		n := e.nodes[id]
		if n.action.Revert != nil {
			if err := n.action.Revert(); err != nil {
				return moved, fmt.Errorf("restore: undo %q: %w", id, err)
			}
		}
		e.current = n.parent
		moved = true
	}
	for _, id := range applies {
		n := e.nodes[id]
		if n.action.Apply != nil {
			if err := n.action.Apply(); err != nil {
				return moved, fmt.Errorf("restore: redo %q: %w", id, err)
			}
		}
		e.current = id
		moved = true
	}
	return moved, nil
}

// lowestCommonAncestorLocked finds the first node shared by the ancestor
// chains of a and b. The sentinel root bounds the search, so a common
// ancestor always exists.
func (e *Engine) lowestCommonAncestorLocked(a, b ActionID) ActionID {
	onPath := make(map[ActionID]struct{})
	for id := a; ; id = e.nodes[id].parent {
		onPath[id] = struct{}{}
		if id == sentinelID {
			break
		}
	}
	for id := b; ; id = e.nodes[id].parent {
		if _, ok := onPath[id]; ok {
			return id
		}
	}
}
