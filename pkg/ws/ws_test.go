package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestHub_ChannelBroadcast(t *testing.T) {
	hub := NewHub(&HubOptions{
		OnConnect: func(r *http.Request, h *Hub, c *Connection) error {
			h.JoinChannel("alpha", c)
			return nil
		},
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dial(t, srv)
	second := dial(t, srv)

	require.Eventually(t, func() bool {
		return len(hub.ConnectionsInChannel("alpha")) == 2
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToChannel("alpha", []byte("ping"))
	require.Equal(t, "ping", readText(t, first))
	require.Equal(t, "ping", readText(t, second))

	hub.Broadcast([]byte("all"))
	require.Equal(t, "all", readText(t, first))
	require.Equal(t, "all", readText(t, second))

	hub.LeaveChannel("alpha", hub.ConnectionsInChannel("alpha")[0])
	require.Len(t, hub.ConnectionsInChannel("alpha"), 1)
	require.Len(t, hub.ConnectionsAll(), 2)
}

func TestHub_BroadcastToUnknownChannelIsNoOp(t *testing.T) {
	hub := NewHub(&HubOptions{})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	dial(t, srv)
	hub.BroadcastToChannel("nobody-there", []byte("ping"))
	require.Empty(t, hub.ConnectionsInChannel("nobody-there"))
}

func TestHub_CheckOriginRejects(t *testing.T) {
	hub := NewHub(&HubOptions{
		CheckOrigin: func(r *http.Request) bool { return false },
	})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Nil(t, conn)
	if resp != nil {
		require.NoError(t, resp.Body.Close())
	}
}
