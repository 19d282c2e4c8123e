package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingEvent struct{}

func (pingEvent) Type() EventType { return "ping" }

func TestEventManager_SubscribeUnsubscribe(t *testing.T) {
	em := NewEventManager()
	var calls []string
	first := em.Subscribe("ping", func(Event) { calls = append(calls, "first") })
	em.Subscribe("ping", func(Event) { calls = append(calls, "second") })

	em.Emit(pingEvent{})
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	em.Unsubscribe(first)
	em.Emit(pingEvent{})
	assert.Equal(t, []string{"second"}, calls)
}

func TestEventManager_EmitWithoutSubscribers(t *testing.T) {
	em := NewEventManager()
	assert.NotPanics(t, func() { em.Emit(pingEvent{}) })

	sub := em.Subscribe("ping", func(Event) {})
	em.Unsubscribe(sub)
	em.Unsubscribe(sub)
	assert.Empty(t, em.subscribers)
}
