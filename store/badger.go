// store/badger.go
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const sessionKeyPrefix = "session/"

// Badger is a Store backed by a badger key-value database on disk. Records
// are keyed "session/<id>". The caller owns the database lifecycle: the
// engine never closes an injected store.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a badger database under dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store at '%s': %w", dir, err)
	}
	return &Badger{db: db}, nil
}

func sessionKey(session string) []byte {
	return []byte(sessionKeyPrefix + session)
}

func (b *Badger) Save(r Record) error {
	data, err := EncodeRecord(r)
	if err != nil {
		return err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(r.SessionID), data)
	})
	if err != nil {
		return fmt.Errorf("save session record '%s': %w", r.SessionID, err)
	}
	return nil
}

func (b *Badger) Load(session string) (Record, bool, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(session))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("load session record '%s': %w", session, err)
	}
	r, err := DecodeRecord(data)
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

// Sessions lists the ids of every persisted session, via a prefix scan.
func (b *Badger) Sessions() ([]string, error) {
	var ids []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

var _ Store = (*Badger)(nil)
