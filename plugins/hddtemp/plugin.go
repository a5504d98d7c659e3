package hddtemp

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"github.com/joshp123/gohome-hddtemp/internal/blob"
	"github.com/joshp123/gohome-hddtemp/internal/config"
	"github.com/joshp123/gohome-hddtemp/internal/core"
)

//go:embed AGENTS.md
var agentsMD string

//go:embed dashboard.json
var dashboardJSON []byte

// Plugin implements the GoHome plugin contract.
type Plugin struct {
	client        *Client
	poller        *Poller
	archiver      *SnapshotArchiver
	health        core.HealthStatus
	healthMessage string
}

// NewPlugin constructs an hddtemp plugin from config. Optional sinks that
// fail to start leave the plugin degraded rather than disabled.
func NewPlugin(cfg *config.HddtempConfig) (Plugin, bool) {
	if cfg == nil {
		return Plugin{}, false
	}

	runtimeCfg, err := ConfigFromFile(cfg)
	if err != nil {
		return Plugin{health: core.HealthError, healthMessage: err.Error()}, true
	}

	client, err := NewClient(runtimeCfg)
	if err != nil {
		return Plugin{health: core.HealthError, healthMessage: err.Error()}, true
	}

	plugin := Plugin{client: client, health: core.HealthHealthy}

	var sinks []Sink
	var problems []string
	if runtimeCfg.MQTT != nil {
		publisher, err := NewMQTTPublisher(runtimeCfg.MQTT)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			sinks = append(sinks, publisher)
		}
	}
	if runtimeCfg.Snapshots != nil {
		store, err := blob.NewS3Store(runtimeCfg.Snapshots)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			plugin.archiver = NewSnapshotArchiver(store)
			sinks = append(sinks, plugin.archiver)
		}
	}
	if len(sinks) > 0 && runtimeCfg.PollInterval <= 0 {
		problems = append(problems, "poll_interval is required for mqtt or snapshots")
	}
	if len(problems) > 0 {
		plugin.health = core.HealthDegraded
		plugin.healthMessage = strings.Join(problems, "; ")
	}

	plugin.poller = NewPoller(client, runtimeCfg.PollInterval, sinks...)
	return plugin, true
}

func (p Plugin) ID() string {
	return "hddtemp"
}

func (p Plugin) Manifest() core.Manifest {
	return core.Manifest{
		PluginID:    "hddtemp",
		DisplayName: "hddtemp",
		Version:     "0.1.0",
		Services:    []string{ServiceName},
	}
}

func (p Plugin) AgentsMD() string {
	return agentsMD
}

func (p Plugin) Dashboards() []core.Dashboard {
	return []core.Dashboard{{Name: "hddtemp-overview", JSON: dashboardJSON}}
}

func (p Plugin) RegisterGRPC(server grpc.ServiceRegistrar) {
	RegisterHddtempService(server, p.client)
}

// RegisterHTTP exposes the current device table as JSON and, when snapshots
// are configured, the last archived raw response.
func (p Plugin) RegisterHTTP(mux *http.ServeMux) {
	mux.HandleFunc("/hddtemp/devices", p.devicesHandler)
	mux.HandleFunc("/hddtemp/snapshots/latest", p.latestSnapshotHandler)
}

func (p Plugin) latestSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	if p.archiver == nil {
		http.Error(w, "hddtemp snapshots not configured", http.StatusNotFound)
		return
	}
	raw, err := p.archiver.Latest(r.Context())
	if errors.Is(err, blob.ErrNotFound) {
		http.Error(w, "no snapshot archived yet", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("load snapshot: %v", err), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(raw))
}

func (p Plugin) devicesHandler(w http.ResponseWriter, r *http.Request) {
	if p.client == nil {
		http.Error(w, "hddtemp client not configured", http.StatusServiceUnavailable)
		return
	}
	devices, err := p.client.Devices(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("fetch devices: %v", err), http.StatusBadGateway)
		return
	}

	at := time.Now()
	out := make([]DevicePayload, 0, len(devices))
	for _, id := range devices.IDs() {
		out = append(out, NewDevicePayload(id, devices[id], at))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (p Plugin) Collectors() []prometheus.Collector {
	if p.client == nil {
		return nil
	}
	return []prometheus.Collector{NewMetricsCollector(p.client)}
}

// Run drives the poller when MQTT or snapshot sinks are configured.
func (p Plugin) Run(ctx context.Context) error {
	if p.poller == nil {
		return nil
	}
	return p.poller.Run(ctx)
}

func (p Plugin) Health() core.HealthStatus {
	return p.health
}

func (p Plugin) HealthMessage() string {
	return p.healthMessage
}
