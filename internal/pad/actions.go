// internal/pad/actions.go
package pad

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/eddy"
)

// Insert performs the insertion immediately and returns an engine action
// whose Apply repeats it and whose Revert deletes the inserted range again,
// plus the position just after the inserted text.
func Insert(doc *Document, at Position, text []byte) (eddy.Action, Position, error) {
	at = doc.Clamp(at)
	end, err := doc.InsertAt(at, text)
	if err != nil {
		return eddy.Action{}, at, err
	}
	inserted := append([]byte{}, text...)
	act := eddy.Action{
		Kind:        "insert",
		Description: fmt.Sprintf("insert %s", summarize(inserted)),
		Apply: func() error {
			_, err := doc.InsertAt(at, inserted)
			return err
		},
		Revert: func() error {
			_, err := doc.DeleteRange(at, end)
			return err
		},
	}
	return act, end, nil
}

// Delete performs the deletion immediately and returns an engine action
// whose Apply repeats it and whose Revert re-inserts the removed text.
func Delete(doc *Document, start, end Position) (eddy.Action, []byte, error) {
	start = doc.Clamp(start)
	end = doc.Clamp(end)
	removed, err := doc.DeleteRange(start, end)
	if err != nil {
		return eddy.Action{}, nil, err
	}
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}
	act := eddy.Action{
		Kind:        "delete",
		Description: fmt.Sprintf("delete %s", summarize(removed)),
		Apply: func() error {
			_, err := doc.DeleteRange(start, end)
			return err
		},
		Revert: func() error {
			_, err := doc.InsertAt(start, removed)
			return err
		},
	}
	return act, removed, nil
}

// summarize shortens text for an action description.
func summarize(text []byte) string {
	const max = 16
	if utf8.RuneCount(text) <= max {
		return fmt.Sprintf("%q", text)
	}
	runes := []rune(string(text))
	return fmt.Sprintf("%q…", string(runes[:max]))
}
