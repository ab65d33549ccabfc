package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type sink struct {
	frames []Frame
	alive  bool
}

func (s *sink) client() *Client {
	return NewClient(func(data []byte) bool {
		if !s.alive {
			return false
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			return false
		}
		s.frames = append(s.frames, f)
		return true
	})
}

func TestHub_BroadcastToSubscribers(t *testing.T) {
	hub := NewHub()
	a, b := &sink{alive: true}, &sink{alive: true}
	ca, cb := a.client(), b.client()

	hub.Subscribe("/topic/faces", ca)
	hub.Subscribe("/topic/faces", ca)
	hub.Subscribe("/topic/greetings", cb)
	require.Equal(t, 1, hub.Subscribers("/topic/faces"))

	require.NoError(t, hub.Broadcast(context.Background(), "/topic/faces", []byte("aGk=")))
	require.Equal(t, []Frame{{Command: CommandMessage, Destination: "/topic/faces", Body: "aGk="}}, a.frames)
	require.Empty(t, b.frames)

	require.NoError(t, hub.Broadcast(context.Background(), "/topic/nobody", []byte("x")))
}

func TestHub_DropsDeadClients(t *testing.T) {
	hub := NewHub()
	alive, dead := &sink{alive: true}, &sink{alive: false}

	hub.Subscribe("/topic/faces", alive.client())
	hub.Subscribe("/topic/faces", dead.client())
	require.Equal(t, 2, hub.Subscribers("/topic/faces"))

	require.NoError(t, hub.Broadcast(context.Background(), "/topic/faces", []byte("x")))
	require.Equal(t, 1, hub.Subscribers("/topic/faces"))
	require.Len(t, alive.frames, 1)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	s := &sink{alive: true}
	c := s.client()

	hub.Subscribe("/topic/faces", c)
	hub.Subscribe("/topic/greetings", c)
	hub.Unsubscribe("/topic/faces", c)
	require.Zero(t, hub.Subscribers("/topic/faces"))
	require.Equal(t, 1, hub.Subscribers("/topic/greetings"))

	hub.UnsubscribeAll(c)
	require.Zero(t, hub.Subscribers("/topic/greetings"))
}

func TestHub_UnsubscribeDoesNotLeaveEmptyTopics(t *testing.T) {
	hub := NewHub()
	s := &sink{alive: true}
	c := s.client()

	for _, topic := range []string{"/topic/a", "/topic/b", "/topic/c"} {
		hub.Unsubscribe(topic, c)
	}
	require.Zero(t, hub.Topics())

	hub.Subscribe("/topic/faces", c)
	require.Equal(t, 1, hub.Topics())
	hub.Unsubscribe("/topic/faces", c)
	require.Zero(t, hub.Topics())

	dead := &sink{alive: false}
	hub.Subscribe("/topic/faces", dead.client())
	require.NoError(t, hub.Broadcast(context.Background(), "/topic/faces", []byte("x")))
	require.Zero(t, hub.Topics())
}
