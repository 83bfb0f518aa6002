package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientManager(t *testing.T) {
	cm := NewClientManager(2)

	a, err := cm.ConnectClient("10.0.0.1:1000")
	require.NoError(t, err)
	b, err := cm.ConnectClient("10.0.0.2:1000")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, cm.Count())
	assert.True(t, cm.Exists(a.ID))

	require.NoError(t, cm.Send(a.ID, []byte("1")))
	require.NoError(t, cm.Send(a.ID, []byte("2")))
	assert.ErrorIs(t, cm.Send(a.ID, []byte("3")), ErrClientBufferFull)
	assert.Equal(t, []byte("1"), <-a.Messages())

	cm.DisconnectClient(a.ID)
	assert.False(t, cm.Exists(a.ID))
	assert.ErrorIs(t, cm.Send(a.ID, []byte("4")), ErrClientNotFound)
	// buffered frames are still readable, then the channel is closed
	assert.Equal(t, []byte("2"), <-a.Messages())
	_, ok := <-a.Messages()
	assert.False(t, ok)

	// disconnecting twice is a no-op
	cm.DisconnectClient(a.ID)
	assert.Equal(t, 1, cm.Count())
}

func TestNetworkManager_HandleWS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNetworkManager(NewNetworkManagerOptions{})
	server := httptest.NewServer(n.HandleWS(ctx))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return n.ClientManager.Count() == 1 }, time.Second, 10*time.Millisecond)

	msg, err := messages.NewMessage(messages.MessageTypeServerPasteCancelled, 42, &messages.ServerPasteCancelled{PasteID: "x", Cursor: 1, Entries: 2})
	require.NoError(t, err)
	require.NoError(t, n.SendMessageToAll(msg))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, err := ReadMessageFromWS(conn)
	require.NoError(t, err)
	assert.Equal(t, messages.MessageTypeServerPasteCancelled, got.Type)
	assert.Equal(t, int64(42), got.Timestamp)
	assert.JSONEq(t, string(msg.Payload), string(got.Payload))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	assert.Eventually(t, func() bool { return n.ClientManager.Count() == 0 }, time.Second, 10*time.Millisecond)
}
