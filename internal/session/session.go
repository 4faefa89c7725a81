// Package session maintains the authenticated realtime connection to a
// floor. It owns the websocket, translates inbound server events into
// presence-store mutations and inbox appends, and sends outbound reports.
// Nothing here propagates errors to callers; the only externally observable
// failure signal is the connection status.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/websocket"

	"github.com/plazahq/plaza/internal/geom"
	"github.com/plazahq/plaza/internal/inbox"
	"github.com/plazahq/plaza/internal/notify"
	"github.com/plazahq/plaza/internal/presence"
	"github.com/plazahq/plaza/internal/wire"
)

// Status is the connection state observable.
type Status int32

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	// StatusError means the reconnection attempt cap was exhausted. No
	// further automatic retry happens; a new Connect is required.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "disconnected"
	}
}

const (
	defaultReconnectDelay = 2 * time.Second
	defaultMaxReconnects  = 5
)

// ErrNoToken is returned when Connect is called without a bearer token. The
// connection is never attempted in that case.
var ErrNoToken = errors.New("no bearer token available")

// Config carries everything a Session needs at construction time.
type Config struct {
	// URL is the floor websocket endpoint, e.g. ws://host/floor/lobby.
	URL    string
	Origin string
	Token  string
	// SelfID is the authenticated user's own id. The local user is filtered
	// out of every presence mutation by comparing against it.
	SelfID string

	ReconnectDelay time.Duration
	MaxReconnects  int

	Sink     notify.Sink
	OnStatus func(Status)
}

// Session is the transport session for one floor visit.
type Session struct {
	cfg Config

	store    *presence.Store
	throws   *inbox.Inbox[ThrowEvent]
	pokes    *inbox.Inbox[PokeEvent]
	messages *inbox.Inbox[MessageEvent]

	status atomic.Int32

	mu     sync.Mutex // guards ws, closed
	sendMu sync.Mutex // serializes outbound frames
	ws     *websocket.Conn
	closed bool
}

func New(cfg Config) *Session {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.MaxReconnects <= 0 {
		cfg.MaxReconnects = defaultMaxReconnects
	}
	if cfg.Sink == nil {
		cfg.Sink = notify.Discard{}
	}
	return &Session{
		cfg:      cfg,
		store:    presence.NewStore(),
		throws:   inbox.New[ThrowEvent](),
		pokes:    inbox.New[PokeEvent](),
		messages: inbox.New[MessageEvent](),
	}
}

// Store exposes the presence store for readers. The session is its only writer.
func (s *Session) Store() *presence.Store { return s.store }

// Throws, Pokes and Messages are the per-kind event inboxes. The session
// appends; exactly one consumer drains.
func (s *Session) Throws() *inbox.Inbox[ThrowEvent]     { return s.throws }
func (s *Session) Pokes() *inbox.Inbox[PokeEvent]       { return s.pokes }
func (s *Session) Messages() *inbox.Inbox[MessageEvent] { return s.messages }

func (s *Session) Status() Status {
	return Status(s.status.Load())
}

func (s *Session) setStatus(st Status) {
	old := Status(s.status.Swap(int32(st)))
	if old != st && s.cfg.OnStatus != nil {
		s.cfg.OnStatus(st)
	}
}

// Connect dials the floor endpoint and starts the receive loop. A stored
// bearer token is a hard precondition. Dial failures are retried with a
// fixed delay up to the attempt cap; once exhausted the status goes to
// StatusError and the error is returned.
func (s *Session) Connect(ctx context.Context) error {
	if s.cfg.Token == "" {
		return ErrNoToken
	}

	s.mu.Lock()
	s.closed = false
	s.mu.Unlock()

	ws, err := s.dialWithRetry(ctx)
	if err != nil {
		s.setStatus(StatusError)
		return err
	}

	s.mu.Lock()
	s.ws = ws
	s.mu.Unlock()
	s.setStatus(StatusConnected)

	go s.run(ctx, ws)
	return nil
}

// Disconnect tears down the transport, clears the presence store entirely
// and resets the status. Idempotent.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ws := s.ws
	s.ws = nil
	s.mu.Unlock()

	if ws != nil {
		_ = ws.Close()
	}
	s.store.Clear()
	s.setStatus(StatusDisconnected)
}

// run is the receive loop plus the reconnection policy. A dropped connection
// keeps the presence store as-is; the post-reconnect snapshot resupplies it.
func (s *Session) run(ctx context.Context, ws *websocket.Conn) {
	for {
		err := s.readLoop(ws)

		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		log.Printf("floor connection lost: %v", err)
		s.setStatus(StatusDisconnected)

		ws, err = s.dialWithRetry(ctx)
		if err != nil {
			s.setStatus(StatusError)
			s.cfg.Sink.Notify(notify.KindError, "lost connection to the floor")
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = ws.Close()
			return
		}
		s.ws = ws
		s.mu.Unlock()
		s.setStatus(StatusConnected)
	}
}

// dialWithRetry makes up to MaxReconnects attempts separated by the fixed
// reconnect delay.
func (s *Session) dialWithRetry(ctx context.Context) (*websocket.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxReconnects; attempt++ {
		s.setStatus(StatusConnecting)
		ws, err := s.dial(ctx)
		if err == nil {
			return ws, nil
		}
		lastErr = err
		s.setStatus(StatusDisconnected)
		log.Printf("dial attempt %d/%d failed: %v", attempt, s.cfg.MaxReconnects, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
	return nil, lastErr
}

func (s *Session) dial(ctx context.Context) (*websocket.Conn, error) {
	origin := s.cfg.Origin
	if origin == "" {
		origin = "app://plaza"
	}
	cfg, err := websocket.NewConfig(s.cfg.URL, origin)
	if err != nil {
		return nil, err
	}
	cfg.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	return cfg.DialContext(ctx)
}

// send writes one envelope if connected; otherwise the message is silently
// dropped. There is no queueing and no delivery acknowledgment.
func (s *Session) send(msgType string, payload any) {
	if s.Status() != StatusConnected {
		return
	}
	s.mu.Lock()
	ws := s.ws
	s.mu.Unlock()
	if ws == nil {
		return
	}
	s.sendMu.Lock()
	err := websocket.JSON.Send(ws, wire.Envelope{Type: msgType, Payload: payload})
	s.sendMu.Unlock()
	if err != nil {
		log.Printf("send %s failed: %v", msgType, err)
	}
}

// ReportMove sends the local avatar's current target in percentage-space,
// rounded to the wire precision.
func (s *Session) ReportMove(xPct, yPct float64) {
	s.send(wire.TypeMove, wire.Move{
		X:  geom.Round2(xPct),
		Y:  geom.Round2(yPct),
		Ts: time.Now().UnixMilli(),
	})
}

// ReportThrow sends a tomato or plane throw at a target.
func (s *Session) ReportThrow(kind, targetUserID string, targetXPct, targetYPct float64) {
	msgType := wire.TypeThrowTomato
	if kind == "plane" {
		msgType = wire.TypeThrowPlane
	}
	s.send(msgType, wire.Throw{
		TargetUserID: targetUserID,
		TargetX:      geom.Round2(targetXPct),
		TargetY:      geom.Round2(targetYPct),
		Ts:           time.Now().UnixMilli(),
	})
}

func (s *Session) ReportPoke(targetUserID string) {
	s.send(wire.TypePoke, wire.Poke{TargetUserID: targetUserID})
}

func (s *Session) ReportMessage(targetUserID, text string) {
	s.send(wire.TypeSendMessage, wire.SendMessage{TargetUserID: targetUserID, Text: text})
}
