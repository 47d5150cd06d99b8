package observability

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/stories", "GET", 200, time.Millisecond)
	m.RecordRequest("/stories", "GET", 200, time.Millisecond)
	m.RecordError("/auth/login", "POST", "UNAUTHORIZED")
	m.RecordEvent("story_created")

	if got := m.RequestCount("/stories", "GET", 200); got != 2 {
		t.Errorf("request count = %d, want 2", got)
	}
	if got := m.ErrorCount("/auth/login", "POST", "UNAUTHORIZED"); got != 1 {
		t.Errorf("error count = %d, want 1", got)
	}
	if got := m.EventCount("story_created"); got != 1 {
		t.Errorf("event count = %d, want 1", got)
	}
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("/", "GET", 200, 0)
		}()
	}
	wg.Wait()

	if got := m.RequestCount("/", "GET", 200); got != 50 {
		t.Errorf("request count = %d, want 50", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	m.RecordEvent("account_registered")
}
