package stats

import (
	"loadbearer/pkg/models"
	"loadbearer/pkg/utils/logger"
	"sync"
	"testing"
	"time"
)

func createTestLogger(t *testing.T) *logger.Logger {
	logger, err := logger.NewLogger(&models.LogConfig{
		ToStdout: false,
		ToFile:   false,
		Prefix:   "[Test]",
		Flags:    0,
	})
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}
	return logger
}

func TestMemoryStats_RecordAndSnapshot(t *testing.T) {
	recorder := NewMemoryStatsRecorder(createTestLogger(t))
	defer recorder.Close()

	recorder.Record("/delay", 100*time.Millisecond)
	recorder.Record("/delay", 250*time.Millisecond)
	recorder.Record("/", 0)

	snapshot := recorder.Snapshot()

	if got := snapshot["/delay"]; got.Requests != 2 || got.WaitedMs != 350 {
		t.Errorf("Expected /delay {2, 350}, got {%d, %d}", got.Requests, got.WaitedMs)
	}
	if got := snapshot["/"]; got.Requests != 1 || got.WaitedMs != 0 {
		t.Errorf("Expected / {1, 0}, got {%d, %d}", got.Requests, got.WaitedMs)
	}
}

// Snapshot must hand back a copy; mutating it can't corrupt the counters.
func TestMemoryStats_SnapshotIsCopy(t *testing.T) {
	recorder := NewMemoryStatsRecorder(createTestLogger(t))
	defer recorder.Close()

	recorder.Record("/block", 10*time.Millisecond)

	first := recorder.Snapshot()
	first["/block"] = PathStats{Requests: 999, WaitedMs: 999}

	second := recorder.Snapshot()
	if got := second["/block"]; got.Requests != 1 || got.WaitedMs != 10 {
		t.Errorf("Snapshot mutation leaked into recorder: got {%d, %d}", got.Requests, got.WaitedMs)
	}
}

func TestMemoryStats_ConcurrentRecord(t *testing.T) {
	recorder := NewMemoryStatsRecorder(createTestLogger(t))
	defer recorder.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				recorder.Record("/delay", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if got := recorder.Snapshot()["/delay"]; got.Requests != 1000 {
		t.Errorf("Expected 1000 recorded requests, got %d", got.Requests)
	}
}

func TestNewStatsRecorder_Disabled(t *testing.T) {
	recorder, err := NewStatsRecorder(&models.StatsConfig{Enabled: false}, createTestLogger(t))
	if err != nil {
		t.Errorf("Should not error for disabled stats: %v", err)
	}
	if recorder != nil {
		t.Error("Recorder should be nil when disabled")
	}
}

func TestNewStatsRecorder_DefaultStorage(t *testing.T) {
	config := &models.StatsConfig{Enabled: true}
	recorder, err := NewStatsRecorder(config, createTestLogger(t))
	if err != nil {
		t.Fatalf("Failed to create recorder with defaults: %v", err)
	}
	defer recorder.Close()

	if config.Storage != models.STATS_STORAGE_MEMORY {
		t.Errorf("Expected default storage %q, got %q", models.STATS_STORAGE_MEMORY, config.Storage)
	}
	if config.Path != "/stats" {
		t.Errorf("Expected default path /stats, got %q", config.Path)
	}
	if _, ok := recorder.(*MemoryStatsRecorder); !ok {
		t.Errorf("Expected memory backend by default, got %T", recorder)
	}
}

func TestNewStatsRecorder_RedisRequiresConfig(t *testing.T) {
	_, err := NewStatsRecorder(&models.StatsConfig{
		Enabled: true,
		Storage: models.STATS_STORAGE_REDIS,
	}, createTestLogger(t))
	if err == nil {
		t.Error("Should error when redis storage has no redis config")
	}
}

func TestNewStatsRecorder_InvalidStorage(t *testing.T) {
	_, err := NewStatsRecorder(&models.StatsConfig{
		Enabled: true,
		Storage: "invalid-storage",
	}, createTestLogger(t))
	if err == nil {
		t.Error("Should error for invalid storage type")
	}
}
