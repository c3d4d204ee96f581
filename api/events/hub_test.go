package events_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/rider-docs-api/api/events"
	"github.com/linesmerrill/rider-docs-api/models"
)

func serve(t *testing.T, hub *events.Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("rider"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, rider string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?rider=" + rider
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestHubPublishesToRider(t *testing.T) {
	hub := events.NewHub()
	srv := serve(t, hub)

	mine := dial(t, srv, "rider-1")
	other := dial(t, srv, "rider-2")
	waitFor(t, func() bool { return hub.Connections("rider-1") == 1 && hub.Connections("rider-2") == 1 })

	ev := models.ScanEvent{
		Type:         events.ScannedType,
		RiderID:      "rider-1",
		VerifierType: "police",
		RiskLevel:    "medium",
		ScannedAt:    time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, hub.Publish(ev))

	var got models.ScanEvent
	mine.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, mine.ReadJSON(&got))
	assert.Equal(t, ev, got)

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestHubPublishWithoutListeners(t *testing.T) {
	hub := events.NewHub()
	assert.Equal(t, 0, hub.Publish(models.ScanEvent{RiderID: "nobody"}))
}

func TestHubForgetsClosedConnections(t *testing.T) {
	hub := events.NewHub()
	srv := serve(t, hub)

	conn := dial(t, srv, "rider-1")
	waitFor(t, func() bool { return hub.Connections("rider-1") == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.Connections("rider-1") == 0 })
}
