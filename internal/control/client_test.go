package control

import (
	"strings"
	"testing"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/session"
	"github.com/frudas24/sketchslice/internal/testutil"
)

// outbox records replies sent to a client.
type outbox struct {
	msgs []Message
}

// send appends a reply.
func (o *outbox) send(m Message) error {
	o.msgs = append(o.msgs, m)
	return nil
}

// take returns and clears the recorded replies.
func (o *outbox) take() []Message {
	out := o.msgs
	o.msgs = nil
	return out
}

// newTestClient returns a client on a fresh registry plus its outbox.
func newTestClient(t *testing.T, boards *board.Registry, sess *session.Session, owner string) (*Client, *outbox) {
	t.Helper()
	box := &outbox{}
	return NewClient(owner, boards, sess, nil, box.send), box
}

// attach attaches c to surface "main" with the shared test layout.
func attach(t *testing.T, c *Client) {
	t.Helper()
	l := testutil.SurfaceLayout()
	if err := c.Handle(Message{T: TypeAttach, Surface: "main", Layout: &l}); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
}

// TestClient_AttachReplaysLines verifies attach answers with the log snapshot.
func TestClient_AttachReplaysLines(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	attach(t, c)
	got := box.take()
	if len(got) != 1 || got[0].T != TypeLines || got[0].Surface != "main" || len(got[0].Segments) != 0 {
		t.Fatalf("unexpected replies %+v", got)
	}
	if c.Surface() != "main" {
		t.Fatalf("expected attached surface, got %q", c.Surface())
	}
}

// TestClient_DrawEchoesSegments verifies segments and acks for a drag.
func TestClient_DrawEchoesSegments(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	attach(t, c)
	box.take()

	_ = c.Handle(Message{T: "down", Seq: 1, X: 20, Y: 30})
	got := box.take()
	if len(got) != 1 || got[0].T != TypeAck || !got[0].Prevented || got[0].State != "dragging_inside" {
		t.Fatalf("unexpected down replies %+v", got)
	}

	_ = c.Handle(Message{T: "move", Seq: 2, X: 50, Y: 60})
	got = box.take()
	if len(got) != 2 || got[0].T != TypeSegment || *got[0].Seg != [4]float64{20, 30, 50, 60} || got[1].Seq != 2 {
		t.Fatalf("unexpected move replies %+v", got)
	}

	_ = c.Handle(Message{T: "up", Seq: 3, X: 50, Y: 60})
	got = box.take()
	if len(got) != 1 || got[0].State != "idle" {
		t.Fatalf("unexpected up replies %+v", got)
	}
}

// TestClient_ContainerMoveIsTransformed verifies container points reach the log in widget space.
func TestClient_ContainerMoveIsTransformed(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	attach(t, c)
	_ = c.Handle(Message{T: "down", X: 20, Y: 30})
	_ = c.Handle(Message{T: "leave"})
	box.take()

	_ = c.Handle(Message{T: "move", Seq: 9, Origin: "container", X: 50, Y: 20})
	got := box.take()
	if len(got) != 2 || *got[0].Seg != [4]float64{20, 30, -50, -30} || got[1].State != "dragging_outside" || got[1].Prevented {
		t.Fatalf("unexpected replies %+v", got)
	}
}

// TestClient_SecondaryButtonDoesNotDraw verifies right and middle presses
// neither start nor end a drag.
func TestClient_SecondaryButtonDoesNotDraw(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	attach(t, c)
	box.take()

	_ = c.Handle(Message{T: "down", Seq: 1, Button: 2, X: 20, Y: 30})
	_ = c.Handle(Message{T: "move", Seq: 2, X: 50, Y: 60})
	got := box.take()
	if len(got) != 2 || got[0].State != "idle" || got[0].Prevented || got[1].T != TypeAck {
		t.Fatalf("unexpected replies for a right-button drag %+v", got)
	}

	_ = c.Handle(Message{T: "down", Seq: 3, X: 20, Y: 30})
	_ = c.Handle(Message{T: "up", Seq: 4, Button: 1, X: 20, Y: 30})
	got = box.take()
	if len(got) != 2 || got[1].State != "dragging_inside" {
		t.Fatalf("expected a middle release to leave the drag alone, got %+v", got)
	}
}

// TestClient_UnsequencedEventsAreNotAcked verifies seq 0 skips the ack.
func TestClient_UnsequencedEventsAreNotAcked(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	attach(t, c)
	box.take()
	_ = c.Handle(Message{T: "down", X: 1, Y: 1})
	if got := box.take(); len(got) != 0 {
		t.Fatalf("expected no replies, got %+v", got)
	}
}

// TestClient_EventWithoutAttach verifies events before attach are rejected.
func TestClient_EventWithoutAttach(t *testing.T) {
	c, box := newTestClient(t, board.NewRegistry(nil), session.New("pw"), "a")
	if err := c.Handle(Message{T: "down", Seq: 1}); err != nil {
		t.Fatalf("handle returned transport error: %v", err)
	}
	got := box.take()
	if len(got) != 1 || got[0].T != TypeError || got[0].Seq != 1 {
		t.Fatalf("unexpected replies %+v", got)
	}
}

// TestClient_SurfaceIsExclusive verifies a second client cannot attach and can after release.
func TestClient_SurfaceIsExclusive(t *testing.T) {
	boards := board.NewRegistry(nil)
	sess := session.New("pw")
	first, _ := newTestClient(t, boards, sess, "a")
	second, box := newTestClient(t, boards, sess, "b")

	attach(t, first)
	_ = first.Handle(Message{T: "down", X: 1, Y: 1})
	_ = first.Handle(Message{T: "move", X: 2, Y: 2})

	attach(t, second)
	got := box.take()
	if len(got) != 1 || got[0].T != TypeError || !strings.Contains(got[0].Error, "already attached") {
		t.Fatalf("expected busy error, got %+v", got)
	}

	first.Close()
	attach(t, second)
	got = box.take()
	if len(got) != 1 || got[0].T != TypeLines || len(got[0].Segments) != 0 {
		t.Fatalf("expected empty lines after detach, got %+v", got)
	}
}

// TestClient_InputDisabledDropsEvents verifies the kill switch.
func TestClient_InputDisabledDropsEvents(t *testing.T) {
	sess := session.New("pw")
	boards := board.NewRegistry(nil)
	c, box := newTestClient(t, boards, sess, "a")
	attach(t, c)
	enabled := false
	_ = c.Handle(Message{T: TypeInputEnabled, Enabled: &enabled})
	box.take()

	_ = c.Handle(Message{T: "down", Seq: 1, X: 1, Y: 1})
	_ = c.Handle(Message{T: "move", Seq: 2, X: 2, Y: 2})
	got := box.take()
	if len(got) != 2 || got[0].State != "idle" || got[1].T != TypeAck || got[1].Prevented {
		t.Fatalf("unexpected replies %+v", got)
	}
	b, _ := boards.Get("main")
	if len(b.Lines()) != 0 {
		t.Fatalf("expected no lines, got %v", b.Lines())
	}
}

// TestClient_LayoutIsPersisted verifies attach and layout messages reach the saver.
func TestClient_LayoutIsPersisted(t *testing.T) {
	saved := map[string]geom.Layout{}
	box := &outbox{}
	c := NewClient("a", board.NewRegistry(nil), session.New("pw"), func(id string, l geom.Layout) error {
		saved[id] = l
		return nil
	}, box.send)
	attach(t, c)

	next := geom.Layout{Surface: geom.Rect{X: 0, Y: 0, W: 10, H: 10}}
	_ = c.Handle(Message{T: TypeLayout, Layout: &next})
	if saved["main"] != next {
		t.Fatalf("expected saved layout %+v, got %+v", next, saved["main"])
	}
}

// TestClient_Clear verifies clear empties the board.
func TestClient_Clear(t *testing.T) {
	boards := board.NewRegistry(nil)
	c, box := newTestClient(t, boards, session.New("pw"), "a")
	attach(t, c)
	_ = c.Handle(Message{T: "down", X: 1, Y: 1})
	_ = c.Handle(Message{T: "move", X: 2, Y: 2})
	box.take()

	_ = c.Handle(Message{T: TypeClear})
	got := box.take()
	if len(got) != 1 || got[0].T != TypeLines {
		t.Fatalf("unexpected replies %+v", got)
	}
	b, _ := boards.Get("main")
	if len(b.Lines()) != 0 {
		t.Fatalf("expected cleared board, got %v", b.Lines())
	}
}
