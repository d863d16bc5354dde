package service

import (
	"sync"
)

// TopicAll receives every event regardless of batch.
const TopicAll = "*"

type EventPublisher interface {
	Publish(topic string, event Event)
}

type Event struct {
	Type    string // "batch", "job", "progress", "stats"
	BatchID string
	JobID   string
	Status  string
	Message string
}

type EventBus struct {
	subscribers map[string][]chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

func (eb *EventBus) Subscribe(topic string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 64)
	eb.subscribers[topic] = append(eb.subscribers[topic], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(topic string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[topic]) == 0 {
		delete(eb.subscribers, topic)
	}
}

// Publish delivers event to subscribers of topic and of TopicAll. Slow
// subscribers miss events rather than block the publisher.
func (eb *EventBus) Publish(topic string, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eb.deliver(eb.subscribers[topic], event)
	if topic != TopicAll {
		eb.deliver(eb.subscribers[TopicAll], event)
	}
}

func (eb *EventBus) deliver(subs []chan Event, event Event) {
	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
