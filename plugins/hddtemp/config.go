package hddtemp

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshp123/gohome-hddtemp/internal/config"
)

const (
	defaultAddress = "127.0.0.1:7634"
	defaultTimeout = 5 * time.Second
)

// Config defines runtime configuration for the hddtemp plugin.
type Config struct {
	Address      string
	Timeout      time.Duration
	Separator    byte
	PollInterval time.Duration
	MQTT         *config.MQTTConfig
	Snapshots    *config.BlobConfig
}

func ConfigFromFile(cfg *config.HddtempConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("hddtemp config is required")
	}

	address := strings.TrimSpace(cfg.Address)
	if address == "" {
		address = defaultAddress
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("hddtemp timeout must not be negative")
	}

	sep := DefaultSeparator
	if cfg.Separator != "" {
		if len(cfg.Separator) != 1 {
			return Config{}, fmt.Errorf("hddtemp separator must be a single byte, got %q", cfg.Separator)
		}
		sep = cfg.Separator[0]
	}
	if sep == '?' || sep == '*' {
		return Config{}, fmt.Errorf("hddtemp separator %q is reserved", string(sep))
	}

	return Config{
		Address:      address,
		Timeout:      timeout,
		Separator:    sep,
		PollInterval: cfg.PollInterval,
		MQTT:         cfg.MQTT,
		Snapshots:    cfg.Snapshots,
	}, nil
}
