// Package signaling negotiates the WebRTC input peer over a WebSocket.
package signaling

import "github.com/pion/webrtc/v3"

// Message types exchanged with the browser.
const (
	TypeOffer   = "offer"
	TypeAnswer  = "answer"
	TypeICE     = "ice"
	TypeRestart = "restart"
	TypeError   = "error"
)

// Message is a websocket signaling payload.
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
	Error     string                   `json:"error,omitempty"`
}
