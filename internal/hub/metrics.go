package hub

import "sync/atomic"

// Metrics records per-floor counters for the monitoring endpoint.
type Metrics struct {
	Joins       int64
	Leaves      int64
	Moves       int64
	Throws      int64
	Pokes       int64
	Messages    int64
	SendDropped int64
	BadTargets  int64
}

func (m *Metrics) IncJoins()       { atomic.AddInt64(&m.Joins, 1) }
func (m *Metrics) IncLeaves()      { atomic.AddInt64(&m.Leaves, 1) }
func (m *Metrics) IncMoves()       { atomic.AddInt64(&m.Moves, 1) }
func (m *Metrics) IncThrows()      { atomic.AddInt64(&m.Throws, 1) }
func (m *Metrics) IncPokes()       { atomic.AddInt64(&m.Pokes, 1) }
func (m *Metrics) IncMessages()    { atomic.AddInt64(&m.Messages, 1) }
func (m *Metrics) IncSendDropped() { atomic.AddInt64(&m.SendDropped, 1) }
func (m *Metrics) IncBadTargets()  { atomic.AddInt64(&m.BadTargets, 1) }

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"joins":        atomic.LoadInt64(&m.Joins),
		"leaves":       atomic.LoadInt64(&m.Leaves),
		"moves":        atomic.LoadInt64(&m.Moves),
		"throws":       atomic.LoadInt64(&m.Throws),
		"pokes":        atomic.LoadInt64(&m.Pokes),
		"messages":     atomic.LoadInt64(&m.Messages),
		"send_dropped": atomic.LoadInt64(&m.SendDropped),
		"bad_targets":  atomic.LoadInt64(&m.BadTargets),
	}
}
