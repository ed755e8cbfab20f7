package event

import (
	"testing"

	"filmscape/local-app/src/pkg/log"

	"github.com/stretchr/testify/assert"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	em := NewEventManager(log.NewNopLogger())
	var calls []string

	em.Subscribe(UserDeleted, func(e Event) { calls = append(calls, "first:"+e.Data.(string)) })
	em.Subscribe(UserDeleted, func(e Event) { calls = append(calls, "second:"+e.Data.(string)) })
	em.Subscribe(ListChanged, func(Event) { calls = append(calls, "other") })

	em.Publish(Event{Type: UserDeleted, Data: "alice"})

	assert.Equal(t, []string{"first:alice", "second:alice"}, calls)
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	em := NewEventManager(log.NewNopLogger())
	reached := false

	em.Subscribe(ListChanged, func(Event) { panic("boom") })
	em.Subscribe(ListChanged, func(Event) { reached = true })

	assert.NotPanics(t, func() { em.Publish(Event{Type: ListChanged}) })
	assert.True(t, reached)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	em := NewEventManager(log.NewNopLogger())
	var got []string

	cancel := em.Subscribe(UserDeleted, func(e Event) { got = append(got, "a") })
	em.Subscribe(UserDeleted, func(e Event) { got = append(got, "b") })

	em.Publish(Event{Type: UserDeleted, Data: "x"})
	cancel()
	cancel()
	em.Publish(Event{Type: UserDeleted, Data: "x"})

	assert.Equal(t, []string{"a", "b", "b"}, got)
}
