// Package metrics defines the Prometheus collectors for fragment rendering.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups the fragment counters.
type Collectors struct {
	Renders  *prometheus.CounterVec
	Degraded *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safetyflash",
			Name:      "fragment_renders_total",
			Help:      "Fragments rendered, by fragment.",
		}, []string{"fragment"}),
		Degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "safetyflash",
			Name:      "degraded_queries_total",
			Help:      "Failed queries rendered as empty results, by fragment.",
		}, []string{"fragment"}),
	}
	if reg != nil {
		reg.MustRegister(c.Renders, c.Degraded)
	}
	return c
}

// Rendered counts one render of fragment.
func (c *Collectors) Rendered(fragment string) {
	if c == nil {
		return
	}
	c.Renders.WithLabelValues(fragment).Inc()
}

// Degrade counts one failed query in fragment.
func (c *Collectors) Degrade(fragment string) {
	if c == nil {
		return
	}
	c.Degraded.WithLabelValues(fragment).Inc()
}
