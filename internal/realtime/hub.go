// Package realtime streams newly appended timeline events to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"consentintel/internal/consent/models"
)

const (
	// MaxClients caps concurrent websocket connections.
	MaxClients = 1000

	sendBuffer      = 64
	broadcastBuffer = 256
	readLimit       = 4 * 1024
	pongWait        = 60 * time.Second
	pingPeriod      = 30 * time.Second
	writeWait       = 10 * time.Second
)

var normalCloseCodes = []int{
	websocket.CloseNormalClosure,
	websocket.CloseGoingAway,
	websocket.CloseNoStatusReceived,
}

// ErrHubStopped is reported by Ready once Run has returned.
var ErrHubStopped = errors.New("realtime hub stopped")

// ErrHubNotStarted is reported by Ready before Run is called.
var ErrHubNotStarted = errors.New("realtime hub not started")

type EventType string

const EventTimeline EventType = "timeline_event"

// Event is the frame written to subscribers.
type Event struct {
	Type      EventType            `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Data      models.TimelineEvent `json:"data"`
}

// Subscription narrows what a client receives. Empty fields match everything.
// Clients update it by sending a JSON object at any time.
type Subscription struct {
	AppIDs     []string          `json:"appIds"`
	Severities []models.Severity `json:"severities"`
}

func (s Subscription) matches(e models.TimelineEvent) bool {
	if len(s.AppIDs) > 0 && !slices.Contains(s.AppIDs, e.AppID) {
		return false
	}
	if len(s.Severities) > 0 && !slices.Contains(s.Severities, e.Severity) {
		return false
	}
	return true
}

// Client is one websocket subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	mu   sync.RWMutex
	sub  Subscription
}

func (c *Client) subscription() Subscription {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sub
}

// Hub fans timeline events out to connected clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *slog.Logger
	metrics    *Metrics
	upgrader   websocket.Upgrader
	started    atomic.Bool
	done       chan struct{}
	maxClients int
}

type Option func(*Hub)

func WithMetrics(m *Metrics) Option {
	return func(h *Hub) {
		h.metrics = m
	}
}

// WithAllowedOrigins restricts browser origins allowed to upgrade. "*" allows
// any origin. Without it only same-host origins are accepted.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Hub) {
		h.upgrader.CheckOrigin = originChecker(origins)
	}
}

func WithMaxClients(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.maxClients = n
		}
	}
}

func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		done:       make(chan struct{}),
		maxClients: MaxClients,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(nil),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	allowAll := slices.Contains(allowed, "*")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		if slices.Contains(allowed, origin) {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// Register mounts the websocket endpoint; the caller supplies the /api prefix.
func (h *Hub) Register(r chi.Router) {
	r.Get("/ws/timeline", h.HandleWebSocket)
}

// Run owns the client set until ctx is cancelled. Returns nil on shutdown.
func (h *Hub) Run(ctx context.Context) error {
	h.started.Store(true)
	h.logger.InfoContext(ctx, "realtime hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.setConnected(0)
			h.logger.Info("realtime hub stopped")
			return nil

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.setConnected(n)
			h.logger.Debug("realtime client connected", "total", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.setConnected(n)
			h.logger.Debug("realtime client disconnected", "total", n)

		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) fanOut(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode realtime event", "error", err, "event_id", event.Data.ID)
		return
	}

	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		if !client.subscription().matches(event.Data) {
			continue
		}
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	if h.metrics != nil {
		h.metrics.EventsBroadcast.Inc()
	}
	if len(slow) == 0 {
		return
	}
	// Slow clients are dropped rather than stalling the feed.
	h.mu.Lock()
	for _, client := range slow {
		if _, ok := h.clients[client]; ok {
			close(client.send)
			delete(h.clients, client)
		}
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.setConnected(n)
	if h.metrics != nil {
		h.metrics.SlowClientsDropped.Add(float64(len(slow)))
	}
}

// Publish queues a stored timeline event for subscribers. It never blocks;
// when the queue is full the event is dropped from the live feed only.
func (h *Hub) Publish(ctx context.Context, event models.TimelineEvent) {
	select {
	case h.broadcast <- &Event{Type: EventTimeline, Timestamp: time.Now().UTC(), Data: event}:
	default:
		if h.metrics != nil {
			h.metrics.EventsDropped.Inc()
		}
		h.logger.WarnContext(ctx, "realtime broadcast queue full, dropping event",
			"event_id", event.ID,
			"app_id", event.AppID,
		)
	}
}

// Ready reports whether the hub loop is running.
func (h *Hub) Ready(_ context.Context) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	if !h.started.Load() {
		return ErrHubNotStarted
	}
	return nil
}

func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) setConnected(n int) {
	if h.metrics != nil {
		h.metrics.ConnectedClients.Set(float64(n))
	}
}

// HandleWebSocket upgrades the request and starts the client pumps.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	if h.ConnectedClients() >= h.maxClients {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump applies subscription updates and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, normalCloseCodes...) {
				c.hub.logger.Debug("websocket read error", "error", err)
			}
			return
		}

		var sub Subscription
		if err := json.Unmarshal(message, &sub); err != nil {
			c.hub.logger.Debug("ignoring malformed subscription", "error", err)
			continue
		}
		c.mu.Lock()
		c.sub = sub
		c.mu.Unlock()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
