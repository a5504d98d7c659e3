package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/joshp123/gohome-hddtemp/internal/core"
)

// HealthHandler reports liveness. It answers 503 while any plugin is in the
// error state; degraded plugins are listed but still count as up.
func HealthHandler(plugins []core.Plugin) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var failing, degraded []string
		for _, plugin := range plugins {
			line := fmt.Sprintf("%s: %s", plugin.ID(), plugin.HealthMessage())
			switch plugin.Health() {
			case core.HealthError:
				failing = append(failing, line)
			case core.HealthDegraded:
				degraded = append(degraded, line)
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(failing) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "error\n%s\n", strings.Join(append(failing, degraded...), "\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
		if len(degraded) > 0 {
			_, _ = fmt.Fprintf(w, "ok\n%s\n", strings.Join(degraded, "\n"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
}
