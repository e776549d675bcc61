package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish(t *testing.T) {
	em := NewEventManager(nil)

	var got []string
	em.Subscribe(func(e Event) { got = append(got, "a:"+e.Type.String()+":"+e.Key) }, RecordCreated, RecordDestroyed)
	em.Subscribe(func(e Event) { got = append(got, "b:"+e.Type.String()+":"+e.Key) }, RecordCreated)

	em.Publish(Event{Type: RecordCreated, Key: "User.1"})
	em.Publish(Event{Type: RecordUpdated, Key: "User.1"})
	em.Publish(Event{Type: RecordDestroyed, Key: "User.1"})

	assert.Equal(t, []string{
		"a:created:User.1",
		"b:created:User.1",
		"a:destroyed:User.1",
	}, got)
}

func TestPublishRecoversPanics(t *testing.T) {
	em := NewEventManager(nil)

	called := false
	em.Subscribe(func(Event) { panic("boom") }, RecordUpdated)
	em.Subscribe(func(Event) { called = true }, RecordUpdated)

	assert.NotPanics(t, func() {
		em.Publish(Event{Type: RecordUpdated, Key: "City.2"})
	})
	assert.True(t, called)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "updated", RecordUpdated.String())
	assert.Equal(t, "unknown", EventType(9).String())
}
