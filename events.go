package gfsm

// Subscription identifies a registered event handler.
type Subscription struct {
	id    uint64
	owner any
}

// Valid returns true if the subscription was returned by a registration.
func (s Subscription) Valid() bool {
	return s.id != 0
}

type handlerEntry[TState, TToken comparable] struct {
	id      uint64
	handler func(Transition[TState, TToken])
}

// TransitionEvent is an ordered list of transition handlers.
//
// Handlers run synchronously in registration order. The list must not be
// modified from inside a handler. A panicking handler is not recovered and
// propagates to the caller of Invoke.
type TransitionEvent[TState, TToken comparable] struct {
	handlers []handlerEntry[TState, TToken]
	nextID   uint64
}

// NewTransitionEvent creates an empty event.
func NewTransitionEvent[TState, TToken comparable]() *TransitionEvent[TState, TToken] {
	return &TransitionEvent[TState, TToken]{}
}

// Register adds a handler to the event.
func (e *TransitionEvent[TState, TToken]) Register(handler func(Transition[TState, TToken])) Subscription {
	if handler == nil {
		return Subscription{}
	}
	e.nextID++
	e.handlers = append(e.handlers, handlerEntry[TState, TToken]{id: e.nextID, handler: handler})
	return Subscription{id: e.nextID, owner: e}
}

// Unregister removes the handler behind sub. It returns false if the handler
// was not registered on this event.
func (e *TransitionEvent[TState, TToken]) Unregister(sub Subscription) bool {
	for i, entry := range e.handlers {
		if entry.id == sub.id && sub.owner == any(e) {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterAll removes all handlers from the event.
func (e *TransitionEvent[TState, TToken]) UnregisterAll() {
	e.handlers = nil
}

// Len returns the number of registered handlers.
func (e *TransitionEvent[TState, TToken]) Len() int {
	return len(e.handlers)
}

// Invoke calls all registered handlers.
func (e *TransitionEvent[TState, TToken]) Invoke(transition Transition[TState, TToken]) {
	for _, entry := range e.handlers {
		entry.handler(transition)
	}
}
