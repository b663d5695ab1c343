package control

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frudas24/sketchslice/internal/board"
	"github.com/frudas24/sketchslice/internal/geom"
	"github.com/frudas24/sketchslice/internal/session"
)

// LayoutSaver persists the last layout reported for a surface.
type LayoutSaver func(surface string, l geom.Layout) error

// SendFunc writes one reply to the connection.
type SendFunc func(Message) error

// Client is the per-connection dispatcher between the page and one board.
// It is transport neutral; WebSocket and data channel connections both use it.
type Client struct {
	mu         sync.Mutex
	owner      string
	boards     *board.Registry
	session    *session.Session
	saveLayout LayoutSaver
	send       SendFunc
	board      *board.Board
}

// NewClient returns a dispatcher that writes replies with send.
func NewClient(owner string, boards *board.Registry, sess *session.Session, saveLayout LayoutSaver, send SendFunc) *Client {
	return &Client{
		owner:      owner,
		boards:     boards,
		session:    sess,
		saveLayout: saveLayout,
		send:       send,
	}
}

// Surface returns the attached surface id, or "" when detached.
func (c *Client) Surface() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.board == nil {
		return ""
	}
	return c.board.ID()
}

// Handle processes one message. Only transport failures are returned;
// protocol problems are reported to the page as error replies.
func (c *Client) Handle(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.T {
	case TypeAttach:
		return c.handleAttach(msg)
	case TypeLayout:
		return c.handleLayout(msg)
	case TypeDetach:
		c.detachLocked()
		return nil
	case TypeClear:
		if c.board == nil {
			return c.fail(msg, errors.New("no surface attached"))
		}
		c.board.Reset()
		return c.send(linesMessage(c.board.ID(), nil))
	case TypeInputEnabled:
		if msg.Enabled != nil && c.session != nil {
			c.session.SetInputEnabled(*msg.Enabled)
		}
		return nil
	default:
		return c.handleEvent(msg)
	}
}

// Close releases the attached surface.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked()
}

// handleAttach binds the client to a surface and replays its lines.
func (c *Client) handleAttach(msg Message) error {
	var layout geom.Layout
	if msg.Layout != nil {
		layout = *msg.Layout
	}
	if c.board != nil && c.board.ID() != msg.Surface {
		c.detachLocked()
	}
	b, err := c.boards.Attach(msg.Surface, c.owner, layout)
	if err != nil {
		return c.fail(msg, err)
	}
	c.board = b
	if msg.Layout != nil {
		c.persist(b.ID(), layout)
	}
	slog.Info("control: attached", "surface", b.ID(), "owner", c.owner)
	return c.send(linesMessage(b.ID(), b.Lines()))
}

// handleLayout records new geometry for the attached surface.
func (c *Client) handleLayout(msg Message) error {
	if c.board == nil {
		return c.fail(msg, errors.New("no surface attached"))
	}
	if msg.Layout == nil {
		return c.fail(msg, errors.New("layout is required"))
	}
	c.board.SetLayout(*msg.Layout)
	c.persist(c.board.ID(), *msg.Layout)
	return nil
}

// handleEvent feeds an input event to the attached board and echoes the result.
func (c *Client) handleEvent(msg Message) error {
	ev, err := ToEvent(msg)
	if err != nil && !errors.Is(err, ErrNotPrimary) {
		return c.fail(msg, err)
	}
	if c.board == nil {
		return c.fail(msg, errors.New("no surface attached"))
	}
	if ev == nil {
		return c.ack(msg, false, c.board.State().String())
	}
	if c.session != nil && !c.session.InputEnabled() {
		return c.ack(msg, false, c.board.State().String())
	}

	out, err := c.board.Apply(ev)
	if err != nil {
		slog.Warn("control: event failed", "surface", c.board.ID(), "event", msg.T, "err", err)
	}
	for _, s := range out.Segments {
		if err := c.send(segmentMessage(s)); err != nil {
			return err
		}
	}
	return c.ack(msg, out.Prevented, out.State.String())
}

// ack replies to sequenced events.
func (c *Client) ack(msg Message, prevented bool, state string) error {
	if msg.Seq == 0 {
		return nil
	}
	return c.send(Message{T: TypeAck, Seq: msg.Seq, Prevented: prevented, State: state})
}

// fail reports a protocol error to the page.
func (c *Client) fail(msg Message, err error) error {
	slog.Debug("control: rejected message", "type", msg.T, "owner", c.owner, "err", err)
	return c.send(Message{T: TypeError, Seq: msg.Seq, Error: fmt.Sprintf("%s: %v", msg.T, err)})
}

// persist saves a layout, logging failures.
func (c *Client) persist(surface string, l geom.Layout) {
	if c.saveLayout == nil {
		return
	}
	if err := c.saveLayout(surface, l); err != nil {
		slog.Warn("control: save layout", "surface", surface, "err", err)
	}
}

// detachLocked releases the attached board; mu must be held.
func (c *Client) detachLocked() {
	if c.board == nil {
		return
	}
	slog.Info("control: detached", "surface", c.board.ID(), "owner", c.owner)
	c.boards.Detach(c.board.ID(), c.owner)
	c.board = nil
}
