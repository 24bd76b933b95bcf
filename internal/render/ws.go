package render

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"currency-swap/internal/domain"
)

// WSSinkConfig configures WebSocket sink behavior.
type WSSinkConfig struct {
	// WriteTimeout bounds a single snapshot write to a client.
	WriteTimeout time.Duration
	// ReadLimit caps inbound command frames.
	ReadLimit int64
}

// DefaultWSSinkConfig returns default WebSocket sink configuration.
func DefaultWSSinkConfig() WSSinkConfig {
	return WSSinkConfig{
		WriteTimeout: 10 * time.Second,
		ReadLimit:    4 * 1024,
	}
}

// WSSink broadcasts every published snapshot to all connected
// browser shells and relays their commands back into Ops. A client
// receives the latest snapshot on connect so it can paint
// immediately.
type WSSink struct {
	ops      Ops
	logger   *log.Logger
	cfg      WSSinkConfig
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    []byte
}

// NewWSSink creates a sink relaying commands to ops.
func NewWSSink(ops Ops, logger *log.Logger, config *WSSinkConfig) *WSSink {
	cfg := DefaultWSSinkConfig()
	if config != nil {
		cfg = *config
	}
	return &WSSink{
		ops:     ops,
		logger:  logger,
		cfg:     cfg,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// The widget shell is served from the same origin in
			// production; the check stays permissive for local use.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SetOps binds the operation surface. The sink and the controller
// reference each other, so whichever is built second gets bound here.
func (s *WSSink) SetOps(ops Ops) {
	s.mu.Lock()
	s.ops = ops
	s.mu.Unlock()
}

// Publish marshals the snapshot and writes it to every client.
// Clients that fail the write are dropped.
func (s *WSSink) Publish(snapshot Snapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logf("marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = data
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logf("drop client: %v", err)
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}

// ServeHTTP upgrades the connection, replays the latest snapshot and
// starts relaying inbound commands.
func (s *WSSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf("upgrade: %v", err)
		return
	}
	conn.SetReadLimit(s.cfg.ReadLimit)

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	last := s.last
	s.mu.Unlock()

	if last != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		_ = conn.WriteMessage(websocket.TextMessage, last)
	}

	go s.readLoop(conn)
}

// Close disconnects all clients.
func (s *WSSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
}

// command is one inbound display-layer action.
type command struct {
	Op       string `json:"op"`
	Side     string `json:"side,omitempty"`
	Currency string `json:"currency,omitempty"`
	Value    string `json:"value,omitempty"`
}

func (s *WSSink) readLoop(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.logf("bad command: %v", err)
			continue
		}
		s.apply(cmd)
	}
}

func (s *WSSink) apply(cmd command) {
	s.mu.Lock()
	ops := s.ops
	s.mu.Unlock()
	if ops == nil {
		return
	}
	side := domain.Side(cmd.Side)
	switch cmd.Op {
	case "edit_amount":
		ops.EditAmount(cmd.Value)
	case "toggle":
		ops.ToggleSelector(side)
	case "pick":
		ops.Pick(side, cmd.Currency)
	case "reverse":
		ops.Reverse()
	case "submit":
		ops.Submit()
	case "search":
		ops.Search(cmd.Value)
	case "dismiss":
		ops.DismissSelectors()
	default:
		s.logf("unknown op %q", cmd.Op)
	}
}

func (s *WSSink) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

var _ Sink = (*WSSink)(nil)
