package plugins

import (
	"testing"

	"github.com/joshp123/gohome-hddtemp/internal/config"
	"github.com/joshp123/gohome-hddtemp/internal/core"
)

func TestCompiledSkipsUnconfigured(t *testing.T) {
	if got := Compiled(nil); got != nil {
		t.Fatalf("expected nil for nil config, got %v", got)
	}

	got := Compiled(&config.Config{SchemaVersion: config.SchemaVersion})
	if len(got) != 0 {
		t.Fatalf("expected no plugins without hddtemp section, got %d", len(got))
	}
}

func TestCompiledBuildsHddtemp(t *testing.T) {
	cfg := &config.Config{
		SchemaVersion: config.SchemaVersion,
		Hddtemp:       &config.HddtempConfig{Address: "127.0.0.1:7634"},
	}

	got := Compiled(cfg)
	if len(got) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(got))
	}
	if got[0].ID() != "hddtemp" {
		t.Fatalf("unexpected plugin id: %s", got[0].ID())
	}
	if got[0].Health() != core.HealthHealthy {
		t.Fatalf("unexpected health: %s (%s)", got[0].Health(), got[0].HealthMessage())
	}
	if err := core.ValidatePlugins(got); err != nil {
		t.Fatalf("ValidatePlugins: %v", err)
	}
}
