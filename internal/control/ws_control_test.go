package control

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/session"
	"github.com/frudas24/sketchslice/internal/testutil"
	"github.com/gorilla/websocket"
)

// TestServeHTTP_Unauthorized verifies unauthenticated upgrades are refused.
func TestServeHTTP_Unauthorized(t *testing.T) {
	s := NewServer(session.New("pw"), board.NewRegistry(nil), nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws/input", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// TestServeHTTP_DrawOverWebSocket verifies a full drag over a real socket.
func TestServeHTTP_DrawOverWebSocket(t *testing.T) {
	sess := session.New("pw")
	sess.Authenticate("pw")
	boards := board.NewRegistry(nil)
	srv := httptest.NewServer(NewServer(sess, boards, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	l := testutil.SurfaceLayout()
	send := []Message{
		{T: TypeAttach, Surface: "main", Layout: &l},
		{T: "down", X: 20, Y: 30},
		{T: "move", Seq: 1, X: 50, Y: 60},
	}
	for _, m := range send {
		if err := conn.WriteJSON(m); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	want := []string{TypeLines, TypeSegment, TypeAck}
	for i, typ := range want {
		var got Message
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got.T != typ {
			t.Fatalf("reply %d: expected %s, got %+v", i, typ, got)
		}
	}
	b, ok := boards.Get("main")
	if !ok || len(b.Lines()) != 1 {
		t.Fatalf("expected one committed line")
	}
}
