// Package control carries drawing input from the page to the boards.
package control

import "github.com/frudas24/sketchslice/internal/geom"

// Message types that are not input events.
const (
	TypeAttach       = "attach"
	TypeLayout       = "layout"
	TypeDetach       = "detach"
	TypeClear        = "clear"
	TypeInputEnabled = "inputEnabled"

	TypeSegment = "segment"
	TypeAck     = "ack"
	TypeLines   = "lines"
	TypeError   = "error"
)

// Touch is one touch point as reported by the page.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Message is a control payload in either direction.
type Message struct {
	T       string       `json:"t"`
	Seq     uint64       `json:"seq,omitempty"`
	Surface string       `json:"surface,omitempty"`
	Origin  string       `json:"origin,omitempty"`
	X       float64      `json:"x,omitempty"`
	Y       float64      `json:"y,omitempty"`
	Button  int          `json:"button,omitempty"`
	Held    bool         `json:"held,omitempty"`
	Touches []Touch      `json:"touches,omitempty"`
	Layout  *geom.Layout `json:"layout,omitempty"`
	Enabled *bool        `json:"enabled,omitempty"`

	Seg       *[4]float64  `json:"seg,omitempty"`
	Segments  [][4]float64 `json:"segments,omitempty"`
	Prevented bool         `json:"prevented,omitempty"`
	State     string       `json:"state,omitempty"`
	Error     string       `json:"error,omitempty"`
}
