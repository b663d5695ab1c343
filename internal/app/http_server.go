package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.HandleFunc("/api/surfaces/{id}/lines", a.handleLines)
	mux.Handle("/ws/signal", a.Signaling())
	mux.Handle("/ws/input", a.Control())
	mux.HandleFunc("/mjpeg/{id}", a.handleMJPEG)
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type surfaceStatus struct {
	ID       string      `json:"id"`
	Attached bool        `json:"attached"`
	State    string      `json:"state"`
	Lines    int         `json:"lines"`
	Layout   geom.Layout `json:"layout"`
}

type stateResponse struct {
	Authenticated  bool            `json:"authenticated"`
	InputEnabled   bool            `json:"inputEnabled"`
	PreviewEnabled bool            `json:"previewEnabled"`
	WebRTC         bool            `json:"webrtc"`
	Surfaces       []surfaceStatus `json:"surfaces"`
}

type linesResponse struct {
	Surface  string       `json:"surface"`
	Segments [][4]float64 `json:"segments"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		slog.Warn("app: login failed", "remote", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns session state and a summary of every surface.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		Authenticated:  snap.Authenticated,
		InputEnabled:   snap.InputEnabled,
		PreviewEnabled: snap.PreviewEnabled,
		WebRTC:         a.peers != nil,
		Surfaces:       []surfaceStatus{},
	}
	for _, id := range a.boards.IDs() {
		b, ok := a.boards.Get(id)
		if !ok {
			continue
		}
		resp.Surfaces = append(resp.Surfaces, surfaceStatus{
			ID:       id,
			Attached: a.boards.Attached(id),
			State:    b.State().String(),
			Lines:    len(b.Lines()),
			Layout:   b.Layout(),
		})
	}
	writeJSON(w, resp)
}

// handleLines returns the committed segments of one surface.
func (a *App) handleLines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !a.requireAuth(w) {
		return
	}
	id := r.PathValue("id")
	b, ok := a.boards.Get(id)
	if !ok {
		http.Error(w, "unknown surface", http.StatusNotFound)
		return
	}
	lines := b.Lines()
	resp := linesResponse{Surface: id, Segments: make([][4]float64, 0, len(lines))}
	for _, s := range lines {
		resp.Segments = append(resp.Segments, s.Flat())
	}
	writeJSON(w, resp)
}

// handleMJPEG serves the preview stream of one surface.
func (a *App) handleMJPEG(w http.ResponseWriter, r *http.Request) {
	stream, ok := a.Preview(r.PathValue("id"))
	if !ok {
		http.Error(w, "no preview", http.StatusNotFound)
		return
	}
	stream.ServeHTTP(w, r)
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		slog.Error("app: static assets unavailable", "err", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
