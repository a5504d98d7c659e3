package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SchemaVersion       = 1
	DefaultPath         = "/etc/gohome/config.yaml"
	DefaultGRPCAddr     = "0.0.0.0:9000"
	DefaultHTTPAddr     = "0.0.0.0:8080"
	DefaultDashboardDir = "/var/lib/gohome/dashboards"
	DefaultMQTTPrefix   = "gohome/hddtemp"
	DefaultBlobPrefix   = "gohome/hddtemp"
)

// Config is the root of the YAML config file.
type Config struct {
	SchemaVersion int            `yaml:"schema_version"`
	Core          *CoreConfig    `yaml:"core"`
	Hddtemp       *HddtempConfig `yaml:"hddtemp"`
}

type CoreConfig struct {
	GrpcAddr     string `yaml:"grpc_addr"`
	HttpAddr     string `yaml:"http_addr"`
	DashboardDir string `yaml:"dashboard_dir"`
}

// HddtempConfig configures the hddtemp plugin. Durations use Go syntax ("5s").
type HddtempConfig struct {
	Address      string        `yaml:"address"`
	Timeout      time.Duration `yaml:"timeout"`
	Separator    string        `yaml:"separator"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MQTT         *MQTTConfig   `yaml:"mqtt"`
	Snapshots    *BlobConfig   `yaml:"snapshots"`
}

type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	TopicPrefix  string `yaml:"topic_prefix"`
	Username     string `yaml:"username"`
	PasswordFile string `yaml:"password_file"`
	ClientID     string `yaml:"client_id"`
}

// BlobConfig points at an S3-compatible bucket.
type BlobConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Bucket        string `yaml:"bucket"`
	Prefix        string `yaml:"prefix"`
	Region        string `yaml:"region"`
	AccessKeyFile string `yaml:"access_key_file"`
	SecretKeyFile string `yaml:"secret_key_file"`
}

// Load parses the YAML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes config bytes, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Core == nil {
		cfg.Core = &CoreConfig{}
	}
	if cfg.Core.GrpcAddr == "" {
		cfg.Core.GrpcAddr = DefaultGRPCAddr
	}
	if cfg.Core.HttpAddr == "" {
		cfg.Core.HttpAddr = DefaultHTTPAddr
	}
	if cfg.Core.DashboardDir == "" {
		cfg.Core.DashboardDir = DefaultDashboardDir
	}

	if cfg.Hddtemp == nil {
		return
	}
	if cfg.Hddtemp.MQTT != nil && cfg.Hddtemp.MQTT.TopicPrefix == "" {
		cfg.Hddtemp.MQTT.TopicPrefix = DefaultMQTTPrefix
	}
	if cfg.Hddtemp.Snapshots != nil && cfg.Hddtemp.Snapshots.Prefix == "" {
		cfg.Hddtemp.Snapshots.Prefix = DefaultBlobPrefix
	}
}

// Validate enforces required invariants beyond YAML typing.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if cfg.SchemaVersion != SchemaVersion {
		return fmt.Errorf("schema_version must be %d", SchemaVersion)
	}

	if cfg.Core == nil {
		return fmt.Errorf("core config is required")
	}
	if cfg.Core.GrpcAddr == "" {
		return fmt.Errorf("core.grpc_addr is required")
	}
	if cfg.Core.HttpAddr == "" {
		return fmt.Errorf("core.http_addr is required")
	}

	if cfg.Hddtemp == nil {
		return nil
	}
	if cfg.Hddtemp.Timeout < 0 {
		return fmt.Errorf("hddtemp.timeout must not be negative")
	}
	if cfg.Hddtemp.PollInterval < 0 {
		return fmt.Errorf("hddtemp.poll_interval must not be negative")
	}
	if sep := cfg.Hddtemp.Separator; sep != "" {
		if len(sep) != 1 {
			return fmt.Errorf("hddtemp.separator must be a single character")
		}
		if sep == "?" || sep == "*" {
			return fmt.Errorf("hddtemp.separator %q is reserved", sep)
		}
	}
	if m := cfg.Hddtemp.MQTT; m != nil && m.Broker == "" {
		return fmt.Errorf("hddtemp.mqtt.broker is required")
	}
	if b := cfg.Hddtemp.Snapshots; b != nil {
		if b.Endpoint == "" {
			return fmt.Errorf("hddtemp.snapshots.endpoint is required")
		}
		if b.Bucket == "" {
			return fmt.Errorf("hddtemp.snapshots.bucket is required")
		}
		if b.AccessKeyFile == "" {
			return fmt.Errorf("hddtemp.snapshots.access_key_file is required")
		}
		if b.SecretKeyFile == "" {
			return fmt.Errorf("hddtemp.snapshots.secret_key_file is required")
		}
	}
	return nil
}

// EnabledPlugins maps enabled plugin IDs based on config presence.
func EnabledPlugins(cfg *Config) map[string]bool {
	enabled := make(map[string]bool)
	if cfg == nil {
		return enabled
	}
	if cfg.Hddtemp != nil {
		enabled["hddtemp"] = true
	}
	return enabled
}
