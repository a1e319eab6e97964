package stats

import (
	"loadbearer/pkg/utils/logger"
	"sync"
	"time"
)

// MemoryStatsRecorder keeps per-path counters in process memory. This is the
// default backend; counters reset when the process exits.
type MemoryStatsRecorder struct {
	mu     sync.Mutex
	paths  map[string]*PathStats
	logger *logger.Logger
}

func NewMemoryStatsRecorder(logger *logger.Logger) *MemoryStatsRecorder {
	return &MemoryStatsRecorder{
		paths:  make(map[string]*PathStats),
		logger: logger,
	}
}

func (m *MemoryStatsRecorder) Record(path string, wait time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.paths[path]
	if !ok {
		entry = &PathStats{}
		m.paths[path] = entry
	}
	entry.Requests++
	entry.WaitedMs += wait.Milliseconds()
}

// Snapshot returns a copy of the counters; callers may mutate the result
// freely.
func (m *MemoryStatsRecorder) Snapshot() map[string]PathStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]PathStats, len(m.paths))
	for path, entry := range m.paths {
		out[path] = *entry
	}
	return out
}

func (m *MemoryStatsRecorder) Health() error {
	return nil
}

func (m *MemoryStatsRecorder) Close() error {
	return nil
}
