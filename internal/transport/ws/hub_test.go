package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_ReconnectReplacesClient(t *testing.T) {
	hub := NewHub(func() string { return "" })
	go hub.Run()

	first := NewClient(hub, nil, "111")
	hub.register <- first
	second := NewClient(hub, nil, "111")
	hub.register <- second

	// The replaced client is shut down so its pumps exit.
	select {
	case <-first.done:
	case <-time.After(time.Second):
		t.Fatal("replaced client was not shut down")
	}

	// The replaced client's late unregister must not close the channels of
	// its successor.
	hub.unregister <- first

	evt, err := NewEvent(EventTypePartnerAssigned, PartnerAssignedPayload{Snowflake: "111"})
	require.NoError(t, err)
	hub.SendToUser("111", evt)

	select {
	case data := <-second.send:
		assert.Contains(t, string(data), EventTypePartnerAssigned)
	case <-time.After(time.Second):
		t.Fatal("new client did not receive the event")
	}
}

func TestHub_UnregisterRemovesClient(t *testing.T) {
	hub := NewHub(func() string { return "" })
	go hub.Run()

	client := NewClient(hub, nil, "222")
	hub.register <- client
	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(time.Second):
		t.Fatal("unregistered client was not shut down")
	}

	// A send to the departed snowflake is simply dropped.
	evt, err := NewEvent(EventTypeEventStarted, EventStartedPayload{StartedBy: "999"})
	require.NoError(t, err)
	hub.SendToUser("222", evt)

	select {
	case data, ok := <-client.send:
		assert.False(t, ok, "unexpected delivery after unregister: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}
