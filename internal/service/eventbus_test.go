package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishReachesTopicAndWildcard(t *testing.T) {
	eb := NewEventBus()
	byBatch := eb.Subscribe("batch-1")
	all := eb.Subscribe(TopicAll)
	other := eb.Subscribe("batch-2")

	eb.Publish("batch-1", Event{Type: "job", BatchID: "batch-1"})

	assert.Len(t, byBatch, 1)
	assert.Len(t, all, 1)
	assert.Len(t, other, 0)
}

func TestEventBus_DropsWhenSubscriberIsFull(t *testing.T) {
	eb := NewEventBus()
	ch := eb.Subscribe("batch-1")

	for range cap(ch) + 10 {
		eb.Publish("batch-1", Event{Type: "progress"})
	}

	assert.Len(t, ch, cap(ch))
}

func TestEventBus_Unsubscribe(t *testing.T) {
	eb := NewEventBus()
	ch := eb.Subscribe("batch-1")

	eb.Unsubscribe("batch-1", ch)

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { eb.Publish("batch-1", Event{}) })
}
