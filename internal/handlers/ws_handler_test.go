package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestWSClient_SendDoesNotBlockWhenQueueFull(t *testing.T) {
	client := &wsClient{
		send: make(chan []byte, 1),
		done: make(chan struct{}),
	}

	require.True(t, client.Send([]byte("first")))

	sent := make(chan bool, 1)
	go func() { sent <- client.Send([]byte("second")) }()
	select {
	case ok := <-sent:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full queue")
	}

	client.Close()
	require.False(t, client.Send([]byte("after close")))
}

func TestWebSocketHandler_ReceivesContentEvents(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		return app.hub.Connections() == 1
	}, time.Second, 5*time.Millisecond)

	w := app.do(t, http.MethodPost, "/api/admin/technologies", map[string]string{"name": "Go"}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt realtime.Event
	require.NoError(t, conn.ReadJSON(&evt))
	require.Equal(t, "technology", evt.Resource)
	require.Equal(t, "technology_created", evt.Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return app.hub.Connections() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestWebSocketHandler_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/admin/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
