// store/record.go

// Package store defines the session-store boundary for the undo engine's
// best-effort structural persistence. A Record holds identifiers only
// (node ids, the current position, the root), never the executable
// apply/revert callbacks, so a later process can recognize that history
// existed but cannot reconstruct replayable actions. That degradation is
// intentional.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the structural snapshot written after every engine mutation.
type Record struct {
	SessionID     string    `json:"session_id"`
	RootID        string    `json:"root_id,omitempty"`
	CurrentID     string    `json:"current_id,omitempty"` // empty when fully undone
	NodeIDs       []string  `json:"node_ids"`
	CheckpointIDs []string  `json:"checkpoint_ids,omitempty"`
	SavedAt       time.Time `json:"saved_at"`
}

// EncodeRecord serializes a record for storage.
func EncodeRecord(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a stored record.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode session record: %w", err)
	}
	return r, nil
}
