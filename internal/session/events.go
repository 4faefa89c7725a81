package session

import (
	"encoding/json"
	"log"

	"golang.org/x/net/websocket"

	"github.com/google/uuid"
	"github.com/plazahq/plaza/internal/notify"
	"github.com/plazahq/plaza/internal/presence"
	"github.com/plazahq/plaza/internal/wire"
)

// ThrowEvent is a received throw waiting in its inbox. The id is a
// client-generated tag used for de-duplication and removal; the server does
// not assign one.
type ThrowEvent struct {
	ID           string
	Kind         string // stage.KindTomato / stage.KindPlane values
	FromUserID   string
	TargetUserID string
	TargetX      float64 // percentage-space at throw time
	TargetY      float64
}

type PokeEvent struct {
	ID         string
	FromUserID string
}

type MessageEvent struct {
	ID         string
	FromUserID string
	Text       string
}

// readLoop receives envelopes until the connection errors out.
func (s *Session) readLoop(ws *websocket.Conn) error {
	for {
		var env wire.RawEnvelope
		if err := websocket.JSON.Receive(ws, &env); err != nil {
			return err
		}
		s.handle(env)
	}
}

// handle applies one inbound event. Malformed payloads and unknown-id
// updates are dropped without surfacing anything; they are benign races, not
// errors.
func (s *Session) handle(env wire.RawEnvelope) {
	switch env.Type {
	case wire.TypePlayersState:
		var snap wire.PlayersState
		if !decode(env, &snap) {
			return
		}
		players := make([]presence.Participant, 0, len(snap.Players))
		for _, p := range snap.Players {
			if p.UserID == s.cfg.SelfID {
				continue
			}
			players = append(players, presence.Participant{ID: p.UserID, Name: p.Username, X: p.X, Y: p.Y})
		}
		s.store.Replace(players)

	case wire.TypePlayerJoined:
		var p wire.PlayerState
		if !decode(env, &p) || p.UserID == s.cfg.SelfID {
			return
		}
		s.store.Upsert(presence.Participant{ID: p.UserID, Name: p.Username, X: p.X, Y: p.Y})

	case wire.TypePlayerMoved:
		var m wire.PlayerMoved
		if !decode(env, &m) || m.UserID == s.cfg.SelfID {
			return
		}
		s.store.Move(m.UserID, m.X, m.Y, m.Ts)

	case wire.TypePlayerLeft:
		var l wire.PlayerLeft
		if !decode(env, &l) {
			return
		}
		s.store.Remove(l.UserID)

	case wire.TypeTomatoThrown, wire.TypePlaneThrown:
		var th wire.Thrown
		if !decode(env, &th) {
			return
		}
		kind := "tomato"
		if env.Type == wire.TypePlaneThrown {
			kind = "plane"
		}
		s.throws.Put(ThrowEvent{
			ID:           uuid.NewString(),
			Kind:         kind,
			FromUserID:   th.FromUserID,
			TargetUserID: th.TargetUserID,
			TargetX:      th.TargetX,
			TargetY:      th.TargetY,
		})

	case wire.TypePoked:
		var p wire.Poked
		if !decode(env, &p) {
			return
		}
		s.pokes.Put(PokeEvent{ID: uuid.NewString(), FromUserID: p.FromUserID})

	case wire.TypeMessageReceived:
		var m wire.MessageReceived
		if !decode(env, &m) {
			return
		}
		s.messages.Put(MessageEvent{ID: uuid.NewString(), FromUserID: m.FromUserID, Text: m.Text})

	case wire.TypeError:
		var e wire.Error
		if !decode(env, &e) {
			return
		}
		log.Printf("server error: %s", e.Message)
		s.cfg.Sink.Notify(notify.KindError, e.Message)

	default:
		// ignore unrecognized message types
	}
}

func decode(env wire.RawEnvelope, v any) bool {
	if err := json.Unmarshal(env.Payload, v); err != nil {
		log.Printf("bad %s payload: %v", env.Type, err)
		return false
	}
	return true
}
