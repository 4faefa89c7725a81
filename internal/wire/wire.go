// Package wire defines the JSON messages exchanged over the floor websocket.
// Every message is a {type, payload} envelope; the receiving side keeps the
// payload raw until the type is known.
package wire

import "encoding/json"

// Message type tags, client -> server.
const (
	TypeMove        = "move"
	TypeThrowTomato = "throwTomato"
	TypeThrowPlane  = "throwPlane"
	TypePoke        = "poke"
	TypeSendMessage = "sendMessage"
)

// Message type tags, server -> client.
const (
	TypePlayersState    = "playersState"
	TypePlayerJoined    = "playerJoined"
	TypePlayerMoved     = "playerMoved"
	TypePlayerLeft      = "playerLeft"
	TypeTomatoThrown    = "tomatoThrown"
	TypePlaneThrown     = "planeThrown"
	TypePoked           = "poked"
	TypeMessageReceived = "messageReceived"
	TypeError           = "error"
)

// Envelope is the sending-side frame.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RawEnvelope is the receiving-side frame; the payload stays raw until the
// type tag is dispatched on.
type RawEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PlayerState is one participant's authoritative state. Coordinates are
// percentage-space, [0,100] per axis.
type PlayerState struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// PlayersState is the full snapshot sent when a client joins or reconnects.
type PlayersState struct {
	Players []PlayerState `json:"players"`
}

// Move is a client's movement target report. Ts is the client's send time in
// unix ms; the server restamps it with its own clock before broadcasting.
type Move struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Ts int64   `json:"ts"`
}

// PlayerMoved carries the server timestamp so receivers can ignore updates
// older than what they already hold.
type PlayerMoved struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Ts     int64   `json:"ts"`
}

type PlayerLeft struct {
	UserID string `json:"userId"`
}

// Throw reports a tomato or plane launched at a target. The target position
// is the target's percentage-space position at throw time.
type Throw struct {
	TargetUserID string  `json:"targetUserId"`
	TargetX      float64 `json:"targetX"`
	TargetY      float64 `json:"targetY"`
	Ts           int64   `json:"ts"`
}

// Thrown is the broadcast form of a Throw.
type Thrown struct {
	FromUserID   string  `json:"fromUserId"`
	TargetUserID string  `json:"targetUserId"`
	TargetX      float64 `json:"targetX"`
	TargetY      float64 `json:"targetY"`
}

type Poke struct {
	TargetUserID string `json:"targetUserId"`
}

type Poked struct {
	FromUserID string `json:"fromUserId"`
}

type SendMessage struct {
	TargetUserID string `json:"targetUserId"`
	Text         string `json:"text"`
}

type MessageReceived struct {
	FromUserID string `json:"fromUserId"`
	Text       string `json:"text"`
}

type Error struct {
	Message string `json:"message"`
}
