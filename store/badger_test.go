package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadger(t *testing.T) *Badger {
	t.Helper()
	b, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })
	return b
}

func TestBadgerRoundTrip(t *testing.T) {
	b := newTestBadger(t)

	rec := Record{
		SessionID:     "sess-1",
		RootID:        "a1",
		CurrentID:     "a2",
		NodeIDs:       []string{"a1", "a2"},
		CheckpointIDs: []string{"a1"},
		SavedAt:       time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	require.NoError(t, b.Save(rec))

	got, ok, err := b.Load("sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestBadgerLoadMissing(t *testing.T) {
	b := newTestBadger(t)

	_, ok, err := b.Load("never-saved")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBadgerOverwrite(t *testing.T) {
	b := newTestBadger(t)

	require.NoError(t, b.Save(Record{SessionID: "sess-1", NodeIDs: []string{"a1"}}))
	require.NoError(t, b.Save(Record{SessionID: "sess-1", NodeIDs: []string{"a1", "a2"}}))

	got, ok, err := b.Load("sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a1", "a2"}, got.NodeIDs)
}

func TestBadgerSessions(t *testing.T) {
	b := newTestBadger(t)

	require.NoError(t, b.Save(Record{SessionID: "alpha"}))
	require.NoError(t, b.Save(Record{SessionID: "beta"}))

	ids, err := b.Sessions()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}
