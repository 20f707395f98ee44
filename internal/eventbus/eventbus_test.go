package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Publish("hello")

	select {
	case ev := <-sub:
		assert.Equal(t, "hello", ev)
	default:
		t.Fatal("expected event")
	}
}

func TestFanOut(t *testing.T) {
	bus := New()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish(42)

	assert.Equal(t, 42, <-a)
	assert.Equal(t, 42, <-b)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	// Publish past the buffer; the publisher must never block.
	for i := 0; i < 20; i++ {
		bus.Publish(i)
	}

	var received int
	for {
		select {
		case <-sub:
			received++
			continue
		default:
		}
		break
	}
	assert.Greater(t, received, 0)
	assert.Less(t, received, 20)
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.Publish("after")
}

func TestClose(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Close()

	_, open := <-sub
	require.False(t, open)

	// Subscribing after close yields a closed channel.
	late := bus.Subscribe()
	_, open = <-late
	assert.False(t, open)

	bus.Publish("ignored")
	bus.Close()
}
