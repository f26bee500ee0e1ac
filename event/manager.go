// event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/eddy/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed. The return value is not acted
// on yet, but keeps room for stop-propagation semantics later.
type Handler func(e Event) bool

// HandlerID names one subscription so it can be removed again.
type HandlerID int

type registration struct {
	id HandlerID
	fn Handler
}

// Manager handles event subscriptions and dispatching. Dispatch is
// synchronous: every handler has run before Dispatch returns.
type Manager struct {
	mu       sync.RWMutex
	nextID   HandlerID
	handlers map[Type][]registration
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]registration),
	}
}

// Subscribe adds a handler for a specific event type and returns the id to
// pass to Unsubscribe.
func (m *Manager) Subscribe(eventType Type, handler Handler) HandlerID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], registration{id: id, fn: handler})
	logger.Debugf("Event Manager: handler %d subscribed to type %v", id, eventType)
	return id
}

// Unsubscribe removes the handler registered under id for eventType. Unknown
// ids are ignored.
func (m *Manager) Unsubscribe(eventType Type, id HandlerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	regs := m.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			m.handlers[eventType] = append(regs[:i], regs[i+1:]...)
			logger.Debugf("Event Manager: handler %d unsubscribed from type %v", id, eventType)
			return
		}
	}
}

// Dispatch sends an event to all registered handlers for its type.
// The handler slice is copied first, so a handler may unsubscribe itself
// (or subscribe others) during dispatch without corrupting the iteration.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	regs := m.handlers[eventType]
	regsCopy := make([]registration, len(regs))
	copy(regsCopy, regs)
	m.mu.RUnlock()

	if len(regsCopy) == 0 {
		return
	}
	logger.Debugf("Event Manager: dispatching type %v to %d handler(s)", eventType, len(regsCopy))

	for _, r := range regsCopy {
		r.fn(event)
	}
}
