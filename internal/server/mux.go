package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshp123/gohome-hddtemp/internal/core"
)

// NewMux wires the core HTTP endpoints and any plugin HTTP handlers.
func NewMux(plugins []core.Plugin, registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/health", HealthHandler(plugins))
	mux.Handle("/metrics", MetricsHandler(registry))
	mux.Handle("/dashboards/", DashboardsHandler(core.DashboardsMap(plugins)))

	plugs := core.NewRegistryService(plugins)
	mux.Handle("/plugins", plugs)
	mux.Handle("/plugins/", plugs)

	for _, plugin := range plugins {
		if registrant, ok := plugin.(core.HTTPRegistrant); ok {
			registrant.RegisterHTTP(mux)
		}
	}
	return mux
}
