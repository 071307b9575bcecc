package realtime_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/realtime"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startHub runs a hub until the test ends.
func startHub(t *testing.T) *realtime.Hub {
	t.Helper()
	h := realtime.NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, c *realtime.Client) realtime.Message {
	t.Helper()
	select {
	case data, ok := <-c.Send():
		require.True(t, ok, "send channel closed unexpectedly")
		var m struct {
			Type    realtime.MessageType `json:"type"`
			Payload domain.ReadModel     `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &m))
		return realtime.Message{Type: m.Type, Payload: m.Payload}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return realtime.Message{}
	}
}

func TestHub_PublishReachesOnlyThatUser(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	ca := realtime.NewClient(alice)
	cb := realtime.NewClient(bob)
	require.True(t, h.Register(ca))
	require.True(t, h.Register(cb))

	rm := domain.ReadModel{Categories: []domain.Category{{DisplayName: "Beach"}}}
	h.Publish(alice, rm)

	got := receive(t, ca)
	assert.Equal(t, realtime.TypeJournalUpdated, got.Type)
	assert.Equal(t, "Beach", got.Payload.(domain.ReadModel).Categories[0].DisplayName)

	select {
	case <-cb.Send():
		t.Fatal("bob must not receive alice's journal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	c := realtime.NewClient(userID)
	require.True(t, h.Register(c))
	assert.Equal(t, 1, h.ClientCount(userID))

	h.Unregister(c)

	select {
	case _, ok := <-c.Send():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
	assert.Equal(t, 0, h.ClientCount(userID))
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	c := realtime.NewClient(userID)
	require.True(t, h.Register(c))

	// Never drain: the buffer fills and the hub drops the client.
	for i := 0; i < 64; i++ {
		h.Publish(userID, domain.ReadModel{})
	}

	require.Eventually(t, func() bool { return h.ClientCount(userID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClientsAndRejectsRegistration(t *testing.T) {
	h := realtime.NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := realtime.NewClient(uuid.New())
	require.True(t, h.Register(c))

	cancel()
	<-stopped

	_, ok := <-c.Send()
	assert.False(t, ok)
	assert.False(t, h.Register(realtime.NewClient(uuid.New())))
	h.Unregister(c) // must not block once the hub has stopped
}
