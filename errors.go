// errors.go
package eddy

import "errors"

var (
	// ErrUnknownNode is returned when a restore targets an id that is not in
	// the tree (possibly pruned, possibly never inserted).
	ErrUnknownNode = errors.New("eddy: unknown node")

	// ErrNotCheckpoint is returned when RestoreCheckpoint targets a node that
	// exists but was not created as a checkpoint.
	ErrNotCheckpoint = errors.New("eddy: node is not a checkpoint")
)
