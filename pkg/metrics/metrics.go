// Package metrics counts remote attempts and local fallbacks per entity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Gateway struct {
	registry  *prometheus.Registry
	remote    *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

func New() *Gateway {
	g := &Gateway{
		registry: prometheus.NewRegistry(),
		remote: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cacau",
			Name:      "remote_requests_total",
			Help:      "Remote API attempts by entity, operation and outcome.",
		}, []string{"entidade", "op", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cacau",
			Name:      "local_fallbacks_total",
			Help:      "Operations served by the local database after a remote failure.",
		}, []string{"entidade", "op"}),
	}
	g.registry.MustRegister(g.remote, g.fallbacks, prometheus.NewGoCollector())
	return g
}

// Remote records one remote attempt. A nil Gateway is a no-op.
func (g *Gateway) Remote(entidade, op, outcome string) {
	if g == nil {
		return
	}
	g.remote.WithLabelValues(entidade, op, outcome).Inc()
}

func (g *Gateway) Fallback(entidade, op string) {
	if g == nil {
		return
	}
	g.fallbacks.WithLabelValues(entidade, op).Inc()
}

func (g *Gateway) Handler() http.Handler {
	return promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{})
}
