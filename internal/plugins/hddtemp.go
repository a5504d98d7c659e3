package plugins

import (
	"github.com/joshp123/gohome-hddtemp/internal/config"
	"github.com/joshp123/gohome-hddtemp/internal/core"
	"github.com/joshp123/gohome-hddtemp/plugins/hddtemp"
)

func init() {
	Register(func(cfg *config.Config) (core.Plugin, bool) {
		return hddtemp.NewPlugin(cfg.Hddtemp)
	})
}
