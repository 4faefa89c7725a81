package hub

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Manager owns every live floor. Floors spring into existence on first join
// and stay around so their metrics survive an empty room.
type Manager struct {
	mu     sync.RWMutex
	floors map[string]*Floor
	logger *zap.SugaredLogger
}

func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		floors: make(map[string]*Floor),
		logger: logger,
	}
}

// GetOrCreate returns the floor with the given id, creating it on demand.
func (m *Manager) GetOrCreate(id string) *Floor {
	m.mu.RLock()
	f, ok := m.floors[id]
	m.mu.RUnlock()
	if ok {
		return f
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok = m.floors[id]; ok {
		return f
	}
	f = newFloor(id, m.logger)
	m.floors[id] = f
	return f
}

// FloorIDs lists the known floors in stable order.
func (m *Manager) FloorIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.floors))
	for id := range m.floors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Online counts players across all floors.
func (m *Manager) Online() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, f := range m.floors {
		total += f.Size()
	}
	return total
}

// MetricsSnapshot aggregates per-floor counters keyed by floor id.
func (m *Manager) MetricsSnapshot() map[string]map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]map[string]any, len(m.floors))
	for id, f := range m.floors {
		out[id] = f.Metrics().Snapshot()
	}
	return out
}
