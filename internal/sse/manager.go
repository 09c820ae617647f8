package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/snapsense/snapsense-server/internal/id"
)

// Buffer sizes and the keep-alive period.
const (
	queueSize         = 256
	clientBufferSize  = 64
	HeartbeatInterval = 30 * time.Second
)

// Client is one open stream. Events are delivered on Events until the
// client disconnects or the manager shuts down, after which Closed is
// closed and Events drains to its end.
type Client struct {
	ID string
	// ProfileID limits delivery to events of one child. Empty receives all.
	ProfileID   string
	ConnectedAt time.Time

	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once
}

// Events returns the client's delivery channel.
func (c *Client) Events() <-chan Event { return c.events }

// Closed is closed once the manager has dropped the client.
func (c *Client) Closed() <-chan struct{} { return c.closed }

// wants reports whether ev is for this client. Events without a profile go
// to everyone.
func (c *Client) wants(ev Event) bool {
	return ev.ProfileID == "" || c.ProfileID == "" || ev.ProfileID == c.ProfileID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		close(c.events)
	})
}

// Manager fans events out to connected clients. Emit never blocks: a full
// queue or a slow client loses the event.
type Manager struct {
	logger    *slog.Logger
	heartbeat time.Duration
	queue     chan Event
	running   sync.WaitGroup

	mu      sync.RWMutex
	clients map[string]*Client
	stopped bool
}

// NewManager creates a Manager. Nothing is delivered until Start runs.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		heartbeat: HeartbeatInterval,
		queue:     make(chan Event, queueSize),
		clients:   make(map[string]*Client),
	}
}

// Start runs the delivery loop until ctx is done or Shutdown closes the
// queue. Run it in its own goroutine.
func (m *Manager) Start(ctx context.Context) {
	m.running.Add(1)
	defer m.running.Done()

	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-m.queue:
			if !ok {
				return
			}
			m.deliver(ev)
		case <-ticker.C:
			m.deliver(NewHeartbeatEvent())
		case <-ctx.Done():
			m.dropAll()
			return
		}
	}
}

// Shutdown refuses further events, delivers what is queued (bounded by
// ctx) and closes every client. Calling it again is a no-op.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	close(m.queue)
	m.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range m.queue {
			m.deliver(ev)
		}
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		m.logger.Warn("live stream queue not drained before shutdown", "error", ctx.Err())
	}

	m.running.Wait()
	m.dropAll()
	return nil
}

// Emit queues ev for delivery.
func (m *Manager) Emit(ev Event) {
	// The read lock keeps Shutdown from closing the queue mid-send.
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stopped {
		return
	}

	select {
	case m.queue <- ev:
	default:
		m.logger.Error("live event queue full", "event_type", ev.Type, "profile_id", ev.ProfileID)
	}
}

func (m *Manager) deliver(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent, skipped := 0, 0
	for _, c := range m.clients {
		if !c.wants(ev) {
			continue
		}
		select {
		case c.events <- ev:
			sent++
		default:
			skipped++
		}
	}

	if skipped > 0 {
		m.logger.Warn("slow live clients skipped", "event_type", ev.Type, "skipped", skipped)
	}
	if ev.Type != EventHeartbeat {
		m.logger.Debug("live event delivered", "event_type", ev.Type, "profile_id", ev.ProfileID, "clients", sent)
	}
}

// Connect registers a client for profileID, or for every profile when
// profileID is empty.
func (m *Manager) Connect(profileID string) (*Client, error) {
	clientID, err := id.Generate(id.PrefixClient)
	if err != nil {
		return nil, err
	}
	c := &Client{
		ID:          clientID,
		ProfileID:   profileID,
		ConnectedAt: time.Now(),
		events:      make(chan Event, clientBufferSize),
		closed:      make(chan struct{}),
	}

	m.mu.Lock()
	m.clients[c.ID] = c
	n := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("live client connected", "client_id", c.ID, "profile_id", profileID, "clients", n)
	return c, nil
}

// Disconnect drops a client. Unknown ids are ignored.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	c, ok := m.clients[clientID]
	delete(m.clients, clientID)
	n := len(m.clients)
	m.mu.Unlock()
	if !ok {
		return
	}

	c.close()
	m.logger.Info("live client disconnected",
		"client_id", clientID,
		"connected_for", time.Since(c.ConnectedAt).Round(time.Second),
		"clients", n)
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) dropAll() {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*Client)
	m.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
