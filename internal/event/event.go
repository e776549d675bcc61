// Package event handles notification of record changes without a direct
// dependency between the console and whoever listens.
package event

import (
	"context"
	"sync"

	"github.com/aboiyar/AirBnB-clone/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	RecordCreated EventType = iota
	RecordUpdated
	RecordDestroyed
)

func (t EventType) String() string {
	switch t {
	case RecordCreated:
		return "created"
	case RecordUpdated:
		return "updated"
	case RecordDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event represents a change to the record stored under Key
type Event struct {
	Type  EventType
	Key   string
	Attrs []string // attribute names written by an update
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	if logger == nil {
		logger = log.Discard()
	}
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for one or more event types
func (em *EventManager) Subscribe(handler EventHandler, types ...EventType) {
	em.mu.Lock()
	defer em.mu.Unlock()
	for _, t := range types {
		em.subscribers[t] = append(em.subscribers[t], handler)
	}
}

// Publish calls every handler subscribed to the event's type, in
// subscription order, before returning. A panicking handler is logged and
// does not stop the others.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	handlers := append([]EventHandler(nil), em.subscribers[event.Type]...)
	em.mu.RUnlock()

	for _, h := range handlers {
		em.call(h, event)
	}
}

func (em *EventManager) call(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type.String(),
				"key":   event.Key,
				"panic": r,
			})
		}
	}()
	h(event)
}
