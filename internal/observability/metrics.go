package observability

import (
	"encoding/json"
	"net/http"
)

// Metrics holds the controller's runtime metrics for one TDP session.
type Metrics struct {
	enumeratorDuration *Histogram
	plannerDuration    *Histogram
	hittingSetsFound   *Histogram
	informationGain    *Histogram
	entropy            *AtomicGauge
	iterations         *Counter
	executorErrors     *Counter
}

// NewMetrics creates a new Metrics instance with every metric initialized.
func NewMetrics() *Metrics {
	return &Metrics{
		enumeratorDuration: NewHistogram(),
		plannerDuration:    NewHistogram(),
		hittingSetsFound:   NewHistogram(),
		informationGain:    NewHistogram(),
		entropy:            NewAtomicGauge(),
		iterations:         NewCounter(),
		executorErrors:     NewCounter(),
	}
}

func (m *Metrics) EnumeratorDuration() *Histogram { return m.enumeratorDuration }
func (m *Metrics) PlannerDuration() *Histogram    { return m.plannerDuration }
func (m *Metrics) HittingSetsFound() *Histogram   { return m.hittingSetsFound }
func (m *Metrics) InformationGain() *Histogram    { return m.informationGain }
func (m *Metrics) Entropy() *AtomicGauge          { return m.entropy }
func (m *Metrics) Iterations() *Counter           { return m.iterations }
func (m *Metrics) ExecutorErrors() *Counter       { return m.executorErrors }

// Snapshot returns a point-in-time snapshot of every metric.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	return &MetricsSnapshot{
		EnumeratorDuration: m.enumeratorDuration.Snapshot(),
		PlannerDuration:    m.plannerDuration.Snapshot(),
		HittingSetsFound:   m.hittingSetsFound.Snapshot(),
		InformationGain:    m.informationGain.Snapshot(),
		Entropy:            m.entropy.Get(),
		Iterations:         m.iterations.Get(),
		ExecutorErrors:     m.executorErrors.Get(),
	}
}

// MetricsSnapshot holds a point-in-time snapshot of every metric.
type MetricsSnapshot struct {
	EnumeratorDuration HistogramSnapshot `json:"enumerator_duration"`
	PlannerDuration    HistogramSnapshot `json:"planner_duration"`
	HittingSetsFound   HistogramSnapshot `json:"hitting_sets_found"`
	InformationGain    HistogramSnapshot `json:"information_gain"`
	Entropy            float64           `json:"entropy"`
	Iterations         int64             `json:"iterations"`
	ExecutorErrors     int64             `json:"executor_errors"`
}

// ServeHTTP implements http.Handler, exposing the current snapshot as
// JSON for cmd/tdp serve's /metrics endpoint.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(m.Snapshot())
}
