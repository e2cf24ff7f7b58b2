package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics counts the failure modes the cart lifecycle cares about
// operationally: optimistic-concurrency rejections and state-gate rejections.
type CartMetrics struct {
	versionConflicts *prometheus.CounterVec
	stateRejections  *prometheus.CounterVec
}

// NewCartMetrics registers the cart lifecycle counters on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	versionConflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carts_version_conflicts",
		Help: "Conditional cart writes rejected because the stored version moved.",
	}, []string{"operation"})
	stateRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carts_state_rejections",
		Help: "Cart mutations rejected by the lifecycle state gate.",
	}, []string{"operation"})
	reg.MustRegister(versionConflicts, stateRejections)
	return &CartMetrics{
		versionConflicts: versionConflicts,
		stateRejections:  stateRejections,
	}
}

// IncVersionConflict records a lost-update rejection for the named operation.
func (c *CartMetrics) IncVersionConflict(operation string) {
	if c == nil || c.versionConflicts == nil {
		return
	}
	c.versionConflicts.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncStateRejection records a state-gate rejection for the named operation.
func (c *CartMetrics) IncStateRejection(operation string) {
	if c == nil || c.stateRejections == nil {
		return
	}
	c.stateRejections.WithLabelValues(normalizeLabel(operation)).Inc()
}
