// node.go
package eddy

// sentinelID is the fixed id of the hidden root node anchoring the tree.
// The sentinel carries a no-op action and is never exposed through the
// public API; "current == sentinel" is the externally visible "nothing to
// undo" state.
const sentinelID ActionID = "__root__"

// node is one arena entry in the history tree. Links are held by id only,
// resolved through the engine's node map, so the parent/children structure
// never forms an ownership cycle.
type node struct {
	action     Action
	parent     ActionID   // sentinelID's own parent is the empty id
	children   []ActionID // creation order, newest last
	checkpoint bool
	name       string // checkpoint name, empty otherwise
	seq        uint64 // insertion sequence, tie-breaker for pruning
}

// newSentinel builds a fresh anchor node for an empty tree.
func newSentinel() *node {
	return &node{
		action: Action{ID: sentinelID, Kind: "root"},
	}
}

// detachChild removes id from n's child list, preserving order of the rest.
func (n *node) detachChild(id ActionID) {
	for i, c := range n.children {
		if c == id {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// lastChild returns the most recently created child, or "" if n is a leaf.
func (n *node) lastChild() ActionID {
	if len(n.children) == 0 {
		return ""
	}
	return n.children[len(n.children)-1]
}
