// Package remote serves a browser page with the garment buttons and relays
// presses and garment state over a websocket.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/taigrr/fitroom/internal/logger"
	"github.com/taigrr/fitroom/pkg/wardrobe"
	"go.uber.org/zap"
)

const (
	// sendBuffer is the number of messages queued per page before it is
	// dropped as too slow.
	sendBuffer = 32
	writeWait  = 5 * time.Second
)

// Message is sent by the page when a button is clicked.
type Message struct {
	Activate string `json:"activate"`
}

// client is one connected page. Only its writer goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server relays button presses to an activate function and broadcasts
// garment state to every connected page.
type Server struct {
	activate func(id string)

	mu      sync.Mutex
	clients map[*client]struct{}
	last    map[string]wardrobe.Event

	upgrader websocket.Upgrader
	http     *http.Server
	log      *zap.Logger
}

// New creates a server. activate is called from connection goroutines with
// a known garment id and must hand the press to the session goroutine.
func New(activate func(id string)) *Server {
	return &Server{
		activate: activate,
		clients:  make(map[*client]struct{}),
		last:     make(map[string]wardrobe.Event),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Local tool, any origin
			},
		},
		log: logger.Named("remote"),
	}
}

// Handler returns the page and websocket routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.mu.Lock()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := s.http
	s.mu.Unlock()

	s.log.Info("remote listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and disconnects every page.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	for c := range s.clients {
		s.dropLocked(c)
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Broadcast records ev as the garment's latest state and queues it for every
// connected page. It never waits on the network; a page whose queue is full
// is disconnected.
func (s *Server) Broadcast(ev wardrobe.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.log.Error("marshal event", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[ev.ID] = ev

	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.log.Warn("dropping slow client", zap.String("remote", c.conn.RemoteAddr().String()))
			s.dropLocked(c)
		}
	}
}

// Clients returns the number of connected pages.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// dropLocked unregisters c and closes its connection. s.mu must be held.
func (s *Server) dropLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	c.conn.Close()
}

// writePump sends queued messages until the queue is closed or a write fails.
func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	// Register and queue the known states under one lock so a concurrent
	// Broadcast cannot interleave with the initial sync
	s.mu.Lock()
	s.clients[c] = struct{}{}
	for _, id := range wardrobe.IDs() {
		ev, ok := s.last[id]
		if !ok {
			continue
		}
		data, err := json.Marshal(ev)
		if err != nil {
			s.log.Error("marshal event", zap.Error(err))
			continue
		}
		c.send <- data // Fresh queue, larger than the garment count
	}
	s.mu.Unlock()
	s.log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	go s.writePump(c)
	defer func() {
		s.mu.Lock()
		s.dropLocked(c)
		s.mu.Unlock()
		s.log.Debug("client disconnected", zap.String("remote", r.RemoteAddr))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warn("bad message", zap.Error(err))
			continue
		}
		if !slices.Contains(wardrobe.IDs(), msg.Activate) {
			s.log.Warn("unknown garment", zap.String("id", msg.Activate))
			continue
		}
		s.activate(msg.Activate)
	}
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homeHTML))
}
