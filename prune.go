// prune.go
package eddy

import (
	"github.com/bethropolis/eddy/internal/logger"
)

// pruneLocked bounds the tree after an insertion. While the node count
// exceeds the ceiling it removes the oldest unprotected node together with
// its subtree. Protected and therefore never removed: every node on the
// active path (current up to the root), every checkpoint together with its
// full ancestor chain, and the sentinel. The protected set may exceed the
// ceiling; correctness outranks the soft memory bound, so pruning simply
// stops when only protected nodes remain.
//
// Checkpoint ancestors are protected so a later RestoreCheckpoint never
// meets a broken parent chain. A victim consequently has no protected
// descendants, which makes removing its whole subtree safe.
func (e *Engine) pruneLocked() {
	if len(e.nodes)-1 <= e.maxNodes {
		return
	}
	removed := 0
	for len(e.nodes)-1 > e.maxNodes {
		victim, ok := e.oldestVictimLocked()
		if !ok {
			break
		}
		removed += e.removeSubtreeLocked(victim)
	}
	if removed > 0 {
		logger.Debugf("Engine: pruned %d node(s), %d retained", removed, len(e.nodes)-1)
	}
}

// protectedLocked computes the set of node ids pruning must not touch.
func (e *Engine) protectedLocked() map[ActionID]struct{} {
	protected := map[ActionID]struct{}{sentinelID: {}}
	for id := e.current; id != sentinelID; id = e.nodes[id].parent {
		protected[id] = struct{}{}
	}
	for id, n := range e.nodes {
		if !n.checkpoint {
			continue
		}
		for c := id; c != sentinelID; c = e.nodes[c].parent {
			if _, done := protected[c]; done {
				break
			}
			protected[c] = struct{}{}
		}
	}
	return protected
}

// oldestVictimLocked picks the eligible node with the earliest action
// timestamp, insertion order breaking ties.
func (e *Engine) oldestVictimLocked() (ActionID, bool) {
	protected := e.protectedLocked()
	var victim ActionID
	var victimNode *node
	for id, n := range e.nodes {
		if _, keep := protected[id]; keep {
			continue
		}
		if victimNode == nil ||
			n.action.CreatedAt.Before(victimNode.action.CreatedAt) ||
			(n.action.CreatedAt.Equal(victimNode.action.CreatedAt) && n.seq < victimNode.seq) {
			victim = id
			victimNode = n
		}
	}
	return victim, victimNode != nil
}

// removeSubtreeLocked detaches id from its parent's child list and deletes
// it along with every descendant, returning the number of nodes dropped.
func (e *Engine) removeSubtreeLocked(id ActionID) int {
	n := e.nodes[id]
	if parent, ok := e.nodes[n.parent]; ok {
		parent.detachChild(id)
	}
	count := 0
	stack := []ActionID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cn, ok := e.nodes[cur]
		if !ok {
			continue
		}
		stack = append(stack, cn.children...)
		delete(e.nodes, cur)
		count++
	}
	return count
}
