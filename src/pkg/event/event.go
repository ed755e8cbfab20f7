// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"slices"
	"sync"

	"filmscape/local-app/src/pkg/log"
)

// EventType represents the type of event
type EventType int

const (
	UserDeleted EventType = iota
	ListChanged
)

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// ListChange is the data of a ListChanged event
type ListChange struct {
	Username string
	Index    int
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]subscription
	nextID      uint64
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscription),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type.
// The returned function removes it again.
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) func() {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.nextID++
	id := em.nextID
	em.subscribers[eventType] = append(em.subscribers[eventType], subscription{id: id, handler: handler})

	return func() {
		em.mu.Lock()
		defer em.mu.Unlock()
		em.subscribers[eventType] = slices.DeleteFunc(em.subscribers[eventType], func(s subscription) bool {
			return s.id == id
		})
	}
}

// Publish runs every handler subscribed to the event type, in subscription order,
// before returning. A panicking handler is logged and does not stop the others.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	subs := slices.Clone(em.subscribers[event.Type])
	em.mu.RUnlock()

	for _, sub := range subs {
		em.run(sub.handler, event)
	}
}

func (em *EventManager) run(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type,
				"panic": r,
			})
		}
	}()
	h(event)
}
