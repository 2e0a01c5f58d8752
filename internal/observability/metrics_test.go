package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMetricsSnapshotReflectsObservations(t *testing.T) {
	m := NewMetrics()
	m.EnumeratorDuration().Observe(5 * time.Millisecond)
	m.Entropy().Set(1.5)
	m.Iterations().Add(2)
	m.ExecutorErrors().Add(1)

	snap := m.Snapshot()
	if snap.EnumeratorDuration.Count != 1 {
		t.Errorf("EnumeratorDuration.Count = %d, want 1", snap.EnumeratorDuration.Count)
	}
	if snap.Entropy != 1.5 {
		t.Errorf("Entropy = %v, want 1.5", snap.Entropy)
	}
	if snap.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", snap.Iterations)
	}
	if snap.ExecutorErrors != 1 {
		t.Errorf("ExecutorErrors = %d, want 1", snap.ExecutorErrors)
	}
}

func TestMetricsServeHTTPEmitsJSON(t *testing.T) {
	m := NewMetrics()
	m.Entropy().Set(0.75)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var snap MetricsSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshaling response body: %v", err)
	}
	if snap.Entropy != 0.75 {
		t.Errorf("Entropy = %v, want 0.75", snap.Entropy)
	}
}
