package control

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/session"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
)

// Server accepts control connections over WebSocket and WebRTC data channels.
type Server struct {
	upgrader   websocket.Upgrader
	session    *session.Session
	boards     *board.Registry
	saveLayout LayoutSaver
	nextID     atomic.Uint64
}

// NewServer creates a control server.
func NewServer(sess *session.Session, boards *board.Registry, saveLayout LayoutSaver) *Server {
	return &Server{
		session:    sess,
		boards:     boards,
		saveLayout: saveLayout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	var writeMu sync.Mutex
	client := s.newClient("ws", func(m Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(m)
	})
	defer client.Close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := client.Handle(msg); err != nil {
			slog.Debug("control: write failed", "err", err)
			return
		}
	}
}

// ServeDataChannel binds a data channel opened by the page to a new client.
func (s *Server) ServeDataChannel(dc *webrtc.DataChannel) {
	client := s.newClient("rtc", func(m Message) error {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		return dc.SendText(string(data))
	})
	dc.OnMessage(func(raw webrtc.DataChannelMessage) {
		var msg Message
		if err := json.Unmarshal(raw.Data, &msg); err != nil {
			slog.Warn("control: bad data channel message", "label", dc.Label(), "err", err)
			return
		}
		if err := client.Handle(msg); err != nil {
			slog.Debug("control: data channel send failed", "label", dc.Label(), "err", err)
			_ = dc.Close()
		}
	})
	dc.OnClose(client.Close)
}

// newClient builds a dispatcher with a unique owner id.
func (s *Server) newClient(transport string, send SendFunc) *Client {
	owner := fmt.Sprintf("%s-%d", transport, s.nextID.Add(1))
	return NewClient(owner, s.boards, s.session, s.saveLayout, send)
}
