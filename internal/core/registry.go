package core

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// PluginSummary is the list view of a plugin.
type PluginSummary struct {
	PluginID    string `json:"plugin_id"`
	DisplayName string `json:"display_name"`
	Version     string `json:"version"`
	Status      string `json:"status"`
}

// DashboardRef points at a served dashboard.
type DashboardRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// PluginDescriptor is the detailed view of a plugin.
type PluginDescriptor struct {
	PluginSummary
	Services      []string       `json:"services"`
	Dashboards    []DashboardRef `json:"dashboards"`
	AgentsMD      string         `json:"agents_md"`
	HealthMessage string         `json:"health_message,omitempty"`
}

// RegistryService provides plugin discovery to clients.
type RegistryService struct {
	plugins []Plugin
	mu      sync.RWMutex
}

func NewRegistryService(plugins []Plugin) *RegistryService {
	return &RegistryService{plugins: plugins}
}

func (r *RegistryService) ListPlugins() []PluginSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PluginSummary, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, summarize(p))
	}
	return out
}

// DescribePlugin returns the descriptor for id, or false if unknown.
func (r *RegistryService) DescribePlugin(id string) (PluginDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		manifest := p.Manifest()
		if manifest.PluginID != id {
			continue
		}

		descriptor := PluginDescriptor{
			PluginSummary: summarize(p),
			Services:      manifest.Services,
			AgentsMD:      p.AgentsMD(),
			HealthMessage: p.HealthMessage(),
		}
		for _, d := range p.Dashboards() {
			descriptor.Dashboards = append(descriptor.Dashboards, DashboardRef{
				Name: d.Name,
				Path: DashboardPath(manifest.PluginID, d.Name),
			})
		}
		return descriptor, true
	}

	return PluginDescriptor{}, false
}

// ServeHTTP serves /plugins and /plugins/<id> as JSON.
func (r *RegistryService) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id := strings.Trim(strings.TrimPrefix(req.URL.Path, "/plugins"), "/")
	var body any
	if id == "" {
		body = r.ListPlugins()
	} else {
		descriptor, ok := r.DescribePlugin(id)
		if !ok {
			http.NotFound(w, req)
			return
		}
		body = descriptor
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func summarize(p Plugin) PluginSummary {
	manifest := p.Manifest()
	return PluginSummary{
		PluginID:    manifest.PluginID,
		DisplayName: manifest.DisplayName,
		Version:     manifest.Version,
		Status:      string(p.Health()),
	}
}
