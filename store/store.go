// store/store.go
package store

import "sync"

// Store persists structural session records. Implementations must treat
// Save as an overwrite keyed by the record's SessionID.
type Store interface {
	Save(r Record) error
	// Load returns the record for session, ok=false when none exists.
	Load(session string) (Record, bool, error)
}

// Nop discards every record. It is the default store and keeps pure
// tree-logic tests free of persistence side effects.
type Nop struct{}

func (Nop) Save(Record) error                 { return nil }
func (Nop) Load(string) (Record, bool, error) { return Record{}, false, nil }

// Memory keeps encoded records in a map. Useful for tests and in-process
// diagnostics; it deliberately round-trips through the JSON boundary so the
// encoding path is exercised the same way a durable store would.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Save(r Record) error {
	data, err := EncodeRecord(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[r.SessionID] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(session string) (Record, bool, error) {
	m.mu.Lock()
	data, ok := m.records[session]
	m.mu.Unlock()
	if !ok {
		return Record{}, false, nil
	}
	r, err := DecodeRecord(data)
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

var (
	_ Store = Nop{}
	_ Store = (*Memory)(nil)
)
