// event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Ambient history signals. Hosts dispatch the request types from their
	// keybinding layer; the engine answers them and broadcasts
	// TypeHistoryChanged (data: the engine's Snapshot) after every mutation.
	TypeUndoRequested
	TypeRedoRequested
	TypeHistoryChanged
	TypeCheckpointCreated

	// Application lifecycle events.
	TypeAppQuit // Fired just before host termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// UndoRequestedData / RedoRequestedData carry no payload; the signal itself
// is the message.
type UndoRequestedData struct{}
type RedoRequestedData struct{}

// CheckpointCreatedData announces a new named restore point.
type CheckpointCreatedData struct {
	ID   string
	Name string
}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}
