package hub

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plazahq/plaza/internal/wire"
)

const spawnX, spawnY = 50.0, 50.0

type player struct {
	id        string
	name      string
	x, y      float64
	updatedAt int64
	client    *Client
}

// Floor holds the authoritative presence for one shared floor and relays
// events between the players standing on it.
type Floor struct {
	ID string

	mu      sync.Mutex
	players map[string]*player

	metrics *Metrics
	logger  *zap.SugaredLogger
}

func newFloor(id string, logger *zap.SugaredLogger) *Floor {
	return &Floor{
		ID:      id,
		players: make(map[string]*player),
		metrics: &Metrics{},
		logger:  logger,
	}
}

// Join adds a player, replies with a full snapshot on their own connection
// and announces them to everyone else. A rejoin with a live connection
// bumps the old one and keeps the player's last position.
func (f *Floor) Join(userID, username string, c *Client) {
	f.mu.Lock()
	x, y := spawnX, spawnY
	if old, ok := f.players[userID]; ok {
		x, y = old.x, old.y
		old.client.Close()
	}
	p := &player{
		id:        userID,
		name:      username,
		x:         x,
		y:         y,
		updatedAt: time.Now().UnixMilli(),
		client:    c,
	}
	f.players[userID] = p

	snapshot := make([]wire.PlayerState, 0, len(f.players))
	for _, other := range f.players {
		snapshot = append(snapshot, wire.PlayerState{
			UserID:   other.id,
			Username: other.name,
			X:        other.x,
			Y:        other.y,
		})
	}
	joined := wire.Envelope{Type: wire.TypePlayerJoined, Payload: wire.PlayerState{
		UserID: p.id, Username: p.name, X: p.x, Y: p.y,
	}}
	for _, other := range f.players {
		if other.id == userID {
			continue
		}
		other.client.Enqueue(joined)
	}
	// still under the lock: a competing Join must not announce itself to c
	// before c's snapshot, or the wholesale snapshot replace would erase it
	c.Enqueue(wire.Envelope{Type: wire.TypePlayersState, Payload: wire.PlayersState{Players: snapshot}})
	f.mu.Unlock()

	f.metrics.IncJoins()
	f.logger.Infow("player joined", "floor", f.ID, "user", username)
}

// Leave removes a player and announces their departure. The client pointer
// guards against a stale reader tearing down a fresh rejoin.
func (f *Floor) Leave(userID string, c *Client) {
	f.mu.Lock()
	p, ok := f.players[userID]
	if !ok || p.client != c {
		f.mu.Unlock()
		return
	}
	delete(f.players, userID)
	left := wire.Envelope{Type: wire.TypePlayerLeft, Payload: wire.PlayerLeft{UserID: userID}}
	for _, other := range f.players {
		other.client.Enqueue(left)
	}
	f.mu.Unlock()

	p.client.Close()
	f.metrics.IncLeaves()
	f.logger.Infow("player left", "floor", f.ID, "user", p.name)
}

// HandleMove clamps the reported position, stamps it with the server clock
// and rebroadcasts it to the whole floor, sender included.
func (f *Floor) HandleMove(userID string, m wire.Move) {
	x := clampPct(m.X)
	y := clampPct(m.Y)
	ts := time.Now().UnixMilli()

	f.mu.Lock()
	p, ok := f.players[userID]
	if !ok {
		f.mu.Unlock()
		return
	}
	p.x, p.y, p.updatedAt = x, y, ts
	f.metrics.IncMoves()
	moved := wire.Envelope{Type: wire.TypePlayerMoved, Payload: wire.PlayerMoved{
		UserID: userID, X: x, Y: y, Ts: ts,
	}}
	for _, other := range f.players {
		other.client.Enqueue(moved)
	}
	f.mu.Unlock()
}

// HandleThrow broadcasts a projectile to the whole floor so every screen,
// the thrower's included, animates it from the same event.
func (f *Floor) HandleThrow(userID, eventType string, t wire.Throw) {
	f.mu.Lock()
	_, senderOK := f.players[userID]
	_, targetOK := f.players[t.TargetUserID]
	if !senderOK || !targetOK {
		f.mu.Unlock()
		if senderOK {
			f.sendError(userID, "unknown target")
		}
		f.metrics.IncBadTargets()
		return
	}
	f.metrics.IncThrows()
	thrown := wire.Envelope{Type: eventType, Payload: wire.Thrown{
		FromUserID:   userID,
		TargetUserID: t.TargetUserID,
		TargetX:      clampPct(t.TargetX),
		TargetY:      clampPct(t.TargetY),
	}}
	for _, other := range f.players {
		other.client.Enqueue(thrown)
	}
	f.mu.Unlock()
}

// HandlePoke delivers a poke to the target only.
func (f *Floor) HandlePoke(userID string, p wire.Poke) {
	f.mu.Lock()
	target, ok := f.players[p.TargetUserID]
	f.mu.Unlock()
	if !ok {
		f.sendError(userID, "unknown target")
		f.metrics.IncBadTargets()
		return
	}
	f.metrics.IncPokes()
	target.client.Enqueue(wire.Envelope{Type: wire.TypePoked, Payload: wire.Poked{FromUserID: userID}})
}

// HandleMessage delivers a direct message to the target only.
func (f *Floor) HandleMessage(userID string, m wire.SendMessage) {
	f.mu.Lock()
	target, ok := f.players[m.TargetUserID]
	f.mu.Unlock()
	if !ok {
		f.sendError(userID, "unknown target")
		f.metrics.IncBadTargets()
		return
	}
	f.metrics.IncMessages()
	target.client.Enqueue(wire.Envelope{Type: wire.TypeMessageReceived, Payload: wire.MessageReceived{
		FromUserID: userID,
		Text:       m.Text,
	}})
}

// Size reports how many players are on the floor.
func (f *Floor) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players)
}

// Metrics exposes the floor's counters.
func (f *Floor) Metrics() *Metrics {
	return f.metrics
}

func (f *Floor) sendError(userID, msg string) {
	f.mu.Lock()
	p, ok := f.players[userID]
	f.mu.Unlock()
	if !ok {
		return
	}
	p.client.Enqueue(wire.Envelope{Type: wire.TypeError, Payload: wire.Error{Message: msg}})
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
