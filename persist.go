// persist.go
package eddy

import (
	"time"

	"github.com/bethropolis/eddy/internal/logger"
	"github.com/bethropolis/eddy/store"
)

// persistLocked writes the current structural record to the session store.
// Only identifiers are persisted, never the Apply/Revert callbacks, so a
// later process can see that history existed but cannot replay it. Failures
// are logged and swallowed: persistence is a diagnostic aid, not a
// functional requirement.
//
// RootID is derived from the tree rather than remembered: the oldest
// surviving root-level node. Pruning can evict the first node the session
// ever pushed, and a remembered id would then dangle outside NodeIDs.
func (e *Engine) persistLocked() {
	rec := store.Record{
		SessionID: e.sessionID,
		SavedAt:   time.Now(),
	}
	if roots := e.nodes[sentinelID].children; len(roots) > 0 {
		rec.RootID = string(roots[0])
	}
	if e.current != sentinelID {
		rec.CurrentID = string(e.current)
	}
	for id, n := range e.nodes {
		if id == sentinelID {
			continue
		}
		rec.NodeIDs = append(rec.NodeIDs, string(id))
		if n.checkpoint {
			rec.CheckpointIDs = append(rec.CheckpointIDs, string(id))
		}
	}
	if err := e.st.Save(rec); err != nil {
		logger.Warnf("Engine: session record save failed: %v", err)
	}
}
