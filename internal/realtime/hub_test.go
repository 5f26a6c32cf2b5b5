package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentintel/internal/consent/models"
)

func testHub(opts ...Option) *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
}

func startHub(t *testing.T, h *Hub) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = h.Run(ctx) }()
	require.Eventually(t, func() bool { return h.Ready(ctx) == nil }, time.Second, 5*time.Millisecond)
	t.Cleanup(cancel)
	return cancel
}

func event(appID string, severity models.Severity) models.TimelineEvent {
	return models.TimelineEvent{
		ID:          "evt-" + appID,
		AppID:       appID,
		Date:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Type:        models.EventTypeForSeverity(severity),
		Description: "Accessed location",
		Severity:    severity,
	}
}

func TestSubscription_Matches(t *testing.T) {
	tests := []struct {
		name string
		sub  Subscription
		evt  models.TimelineEvent
		want bool
	}{
		{"empty matches all", Subscription{}, event("app_1", models.SeverityInfo), true},
		{"app filter hit", Subscription{AppIDs: []string{"app_1"}}, event("app_1", models.SeverityInfo), true},
		{"app filter miss", Subscription{AppIDs: []string{"app_2"}}, event("app_1", models.SeverityInfo), false},
		{"severity filter hit", Subscription{Severities: models.AlertSeverities}, event("app_1", models.SeverityAlert), true},
		{"severity filter miss", Subscription{Severities: models.AlertSeverities}, event("app_1", models.SeverityInfo), false},
		{"both must match", Subscription{AppIDs: []string{"app_1"}, Severities: []models.Severity{models.SeverityWarning}}, event("app_1", models.SeverityAlert), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.matches(tt.evt))
		})
	}
}

func TestHub_Ready(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	assert.ErrorIs(t, h.Ready(ctx), ErrHubNotStarted)

	stopped := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(stopped)
	}()
	require.Eventually(t, func() bool { return h.Ready(ctx) == nil }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop after context cancellation")
	}
	assert.ErrorIs(t, h.Ready(context.Background()), ErrHubStopped)
}

func TestHub_RegisterUnregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	h := testHub(WithMetrics(metrics))
	startHub(t, h)

	client := &Client{hub: h, send: make(chan []byte, sendBuffer)}
	h.register <- client
	require.Eventually(t, func() bool { return h.ConnectedClients() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ConnectedClients))

	h.unregister <- client
	require.Eventually(t, func() bool { return h.ConnectedClients() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open, "send channel closed on unregister")
}

func TestHub_PublishFiltersBySubscription(t *testing.T) {
	h := testHub()
	startHub(t, h)

	alertsOnly := &Client{hub: h, send: make(chan []byte, sendBuffer), sub: Subscription{Severities: models.AlertSeverities}}
	everything := &Client{hub: h, send: make(chan []byte, sendBuffer)}
	h.register <- alertsOnly
	h.register <- everything
	require.Eventually(t, func() bool { return h.ConnectedClients() == 2 }, time.Second, 5*time.Millisecond)

	h.Publish(context.Background(), event("app_1", models.SeverityInfo))
	h.Publish(context.Background(), event("app_2", models.SeverityAlert))

	var got Event
	select {
	case msg := <-everything.send:
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, EventTimeline, got.Type)
		assert.Equal(t, "app_1", got.Data.AppID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	select {
	case msg := <-alertsOnly.send:
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "app_2", got.Data.AppID)
		assert.Equal(t, models.SeverityAlert, got.Data.Severity)
	case <-time.After(time.Second):
		t.Fatal("alert subscriber did not receive alert")
	}
	assert.Empty(t, alertsOnly.send, "info event filtered out")
}

func TestHub_DropsSlowClients(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	h := testHub(WithMetrics(metrics))
	startHub(t, h)

	slow := &Client{hub: h, send: make(chan []byte)}
	h.register <- slow
	require.Eventually(t, func() bool { return h.ConnectedClients() == 1 }, time.Second, 5*time.Millisecond)

	h.Publish(context.Background(), event("app_1", models.SeverityWarning))

	require.Eventually(t, func() bool { return h.ConnectedClients() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SlowClientsDropped))
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	h := testHub(WithMetrics(metrics))

	// Hub not running: the queue fills and further events are dropped.
	for i := 0; i < broadcastBuffer+5; i++ {
		h.Publish(context.Background(), event("app_1", models.SeverityInfo))
	}
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.EventsDropped))
}

func TestHub_WebSocketStream(t *testing.T) {
	h := testHub(WithAllowedOrigins([]string{"*"}))
	startHub(t, h)

	r := chi.NewRouter()
	h.Register(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/timeline"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://elsewhere.example"}})
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.NoError(t, conn.WriteJSON(Subscription{AppIDs: []string{"app_3"}}))
	// Wait for the subscription to land before publishing.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for c := range h.clients {
			if len(c.subscription().AppIDs) == 1 {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	h.Publish(context.Background(), event("app_1", models.SeverityAlert))
	h.Publish(context.Background(), event("app_3", models.SeverityWarning))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "app_3", got.Data.AppID)
	assert.Equal(t, models.SeverityWarning, got.Data.Severity)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	h := testHub(WithAllowedOrigins([]string{"http://dashboard.example"}))
	startHub(t, h)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_RejectsWhenFull(t *testing.T) {
	h := testHub(WithMaxClients(1))
	startHub(t, h)
	h.register <- &Client{hub: h, send: make(chan []byte, sendBuffer)}
	require.Eventually(t, func() bool { return h.ConnectedClients() == 1 }, time.Second, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	h.HandleWebSocket(rec, httptest.NewRequest(http.MethodGet, "/ws/timeline", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
