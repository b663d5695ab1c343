// Package app wires HTTP, signaling, and the drawing boards together.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/config"
	"github.com/frudas24/sketchslice/internal/control"
	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/layout"
	"github.com/frudas24/sketchslice/internal/rtc"
	"github.com/frudas24/sketchslice/internal/session"
	"github.com/frudas24/sketchslice/internal/signaling"
	"github.com/frudas24/sketchslice/internal/sketch"
)

// App coordinates the HTTP API, websocket servers, and per-surface previews.
type App struct {
	mu        sync.Mutex
	cfg       config.Config
	defaults  previewDefaults
	session   *session.Session
	layouts   *layout.Store
	boards    *board.Registry
	previews  map[string]*preview
	peers     *rtc.Factory
	signaling *signaling.Server
	control   *control.Server
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, layouts *layout.Store) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if layouts == nil {
		return nil, errors.New("layout store is required")
	}

	app := &App{
		cfg:      cfg,
		defaults: previewDefaults{intervalMs: cfg.PreviewIntervalMs, quality: cfg.PreviewQuality},
		session:  sess,
		layouts:  layouts,
		previews: make(map[string]*preview),
	}
	sess.SetPreviewEnabled(cfg.PreviewEnabled)

	app.boards = board.NewRegistry(app.newBoard)
	app.control = control.NewServer(sess, app.boards, layouts.Put)

	if cfg.WebRTCEnabled {
		peers, err := rtc.NewFactory(app.control.ServeDataChannel)
		if err != nil {
			return nil, fmt.Errorf("webrtc: %w", err)
		}
		app.peers = peers
		app.signaling = signaling.NewServer(peers, signaling.ClientReplace, sess.IsAuthenticated)
	} else {
		app.signaling = signaling.NewServer(nil, signaling.ClientReplace, sess.IsAuthenticated)
	}

	return app, nil
}

// newBoard builds the board for a surface attached for the first time. The
// stored layout is used when the page did not report one.
func (a *App) newBoard(id string, l geom.Layout) *board.Board {
	if l.Surface.Empty() {
		if stored, ok := a.layouts.Get(id); ok {
			l = stored
		}
	}
	b := board.New(id, l)
	b.SetHooks(sketch.Hooks{
		DragStartAttempt: func(ev sketch.Event) {
			slog.Debug("app: drag start attempt", "surface", id, "origin", ev.Origin.String())
		},
		DefaultPrevented: func(ev sketch.Event) {
			slog.Debug("app: default prevented", "surface", id, "event", ev.Kind.String())
		},
	})

	if a.cfg.PreviewEnabled {
		a.mu.Lock()
		p := a.newPreviewLocked(l)
		a.previews[id] = p
		a.mu.Unlock()
		p.bind(b)
	}
	slog.Info("app: surface created", "surface", id, "w", l.Surface.W, "h", l.Surface.H)
	return b
}

// Boards returns the surface registry.
func (a *App) Boards() *board.Registry {
	return a.boards
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// RestartPeer drops the data channel peer and asks the page to negotiate a
// fresh one.
func (a *App) RestartPeer() {
	if a.peers != nil {
		a.peers.ClosePeer()
	}
	a.signaling.NotifyRestart()
	slog.Info("app: peer restart requested")
}

// Close releases the WebRTC peer.
func (a *App) Close() {
	if a.peers != nil {
		a.peers.ClosePeer()
	}
}
