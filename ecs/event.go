package ecs

// EventType identifies different types of events
type EventType string

const (
	EventGameObjectCreated EventType = "game_object_created"
	EventGameObjectDeleted EventType = "game_object_deleted"
)

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// GameObjectCreatedEvent is emitted after a game object is added to the registry
type GameObjectCreatedEvent struct {
	ID       GameObjectID
	Position Vec2
}

// Type returns the event type
func (e GameObjectCreatedEvent) Type() EventType { return EventGameObjectCreated }

// GameObjectDeletedEvent is emitted after a game object is removed from the registry
type GameObjectDeletedEvent struct {
	ID GameObjectID
}

// Type returns the event type
func (e GameObjectDeletedEvent) Type() EventType { return EventGameObjectDeleted }

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscription identifies a registered handler so it can be removed later
type Subscription struct {
	eventType EventType
	id        uint64
}

type subscriber struct {
	id      uint64
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches
type EventManager struct {
	subscribers map[EventType][]subscriber
	nextID      uint64
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) Subscription {
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscriber{id: em.nextID, handler: handler})
	return Subscription{eventType: eventType, id: em.nextID}
}

// Unsubscribe removes a previously subscribed handler
func (em *EventManager) Unsubscribe(sub Subscription) {
	handlers := em.subscribers[sub.eventType]
	kept := make([]subscriber, 0, len(handlers))
	for _, s := range handlers {
		if s.id != sub.id {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		delete(em.subscribers, sub.eventType)
	} else {
		em.subscribers[sub.eventType] = kept
	}
}

// Emit dispatches an event to all subscribed handlers in subscription order
func (em *EventManager) Emit(event Event) {
	for _, s := range em.subscribers[event.Type()] {
		s.handler(event)
	}
}
