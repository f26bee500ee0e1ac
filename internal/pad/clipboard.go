// internal/pad/clipboard.go
package pad

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/eddy/internal/logger"
)

// Clipboard copies text to the system clipboard when available, falling back
// to an internal register otherwise, so copy/paste keeps working in
// environments without a display server.
type Clipboard struct {
	system   bool
	register string
}

// NewClipboard creates a clipboard. With system=false only the internal
// register is used.
func NewClipboard(system bool) *Clipboard {
	if system && clipboard.Unsupported {
		logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		system = false
	}
	return &Clipboard{system: system}
}

// Write stores text. System clipboard failures degrade to the register.
func (c *Clipboard) Write(text string) {
	c.register = text
	if !c.system {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, using internal register: %v", err)
		c.system = false
	}
}

// Read returns the most recently written text, preferring the system
// clipboard so that text copied in other applications can be pasted.
func (c *Clipboard) Read() string {
	if c.system {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text
		}
		logger.Warnf("Clipboard: system read failed, using internal register: %v", err)
	}
	return c.register
}
