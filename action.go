// action.go
package eddy

import (
	"fmt"
	"time"
)

// ActionID uniquely identifies an action (and the history node wrapping it).
type ActionID string

// Action is an opaque, caller-supplied unit of reversible work. The engine
// stores it and invokes Revert on undo and Apply on redo; it never inspects
// the document state the callbacks mutate.
//
// Apply immediately followed by Revert (or vice versa) must leave observable
// document state unchanged. That round-trip contract belongs to the caller;
// the engine does not verify it.
type Action struct {
	ID          ActionID     // caller-supplied; generated when empty or already taken
	Kind        string       // logical type tag ("insert", "delete", "group", ...)
	Description string       // human-readable summary
	CreatedAt   time.Time    // stamped with time.Now() when zero
	Payload     any          // opaque caller data, never touched by the engine
	Apply       func() error // re-execute the edit; nil means no-op
	Revert      func() error // undo the edit; nil means no-op
}

// checkpointAction builds the no-op action stored in a checkpoint node.
// Checkpoints mark history, they do not themselves mutate state.
func checkpointAction(name string) Action {
	return Action{
		Kind:        "checkpoint",
		Description: name,
	}
}

// compositeAction wraps a buffered group of actions into a single undoable
// unit: Apply replays the originals in order, Revert replays their reverts
// in reverse order. A failing member aborts the replay and surfaces its error.
func compositeAction(description string, actions []Action) Action {
	return Action{
		Kind:        "group",
		Description: description,
		Payload:     len(actions),
		Apply: func() error {
			for _, a := range actions {
				if a.Apply == nil {
					continue
				}
				if err := a.Apply(); err != nil {
					return fmt.Errorf("group member %q: %w", a.ID, err)
				}
			}
			return nil
		},
		Revert: func() error {
			for i := len(actions) - 1; i >= 0; i-- {
				a := actions[i]
				if a.Revert == nil {
					continue
				}
				if err := a.Revert(); err != nil {
					return fmt.Errorf("group member %q: %w", a.ID, err)
				}
			}
			return nil
		},
	}
}
