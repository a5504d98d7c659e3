package hddtemp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/joshp123/gohome-hddtemp/internal/blob"
	"github.com/joshp123/gohome-hddtemp/internal/config"
)

// DevicePayload is the JSON shape published per device.
type DevicePayload struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Status      string   `json:"status"`
	Temperature *uint64  `json:"temperature,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Celsius     *float64 `json:"temperature_celsius,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

func NewDevicePayload(id string, device Device, at time.Time) DevicePayload {
	payload := DevicePayload{
		ID:          id,
		Model:       device.Model,
		Status:      device.Result.Label(),
		Temperature: device.Temperature,
		Timestamp:   at.Unix(),
	}
	if device.Unit != nil {
		payload.Unit = device.Unit.String()
	}
	if celsius, ok := device.Celsius(); ok {
		payload.Celsius = &celsius
	}
	return payload
}

// MQTTPublisher publishes one retained message per device.
type MQTTPublisher struct {
	prefix string
	send   func(topic string, payload []byte) error
}

func NewMQTTPublisher(cfg *config.MQTTConfig) (*MQTTPublisher, error) {
	if cfg == nil || strings.TrimSpace(cfg.Broker) == "" {
		return nil, fmt.Errorf("mqtt broker is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetUsername(cfg.Username)
	if cfg.PasswordFile != "" {
		password, err := blob.ReadSecretFile(cfg.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("read mqtt password: %w", err)
		}
		opts.SetPassword(password)
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = randomClientID()
	}
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return newMQTTPublisher(cfg.TopicPrefix, func(topic string, payload []byte) error {
		if token := client.Publish(topic, 1, true, payload); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		return nil
	}), nil
}

func newMQTTPublisher(prefix string, send func(string, []byte) error) *MQTTPublisher {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		prefix = config.DefaultMQTTPrefix
	}
	return &MQTTPublisher{prefix: prefix, send: send}
}

func (p *MQTTPublisher) Name() string {
	return "mqtt"
}

func (p *MQTTPublisher) Publish(_ context.Context, snap Snapshot) error {
	var failed []string
	for _, id := range snap.Devices.IDs() {
		payload, err := json.Marshal(NewDevicePayload(id, snap.Devices[id], snap.At))
		if err != nil {
			return fmt.Errorf("encode %s: %w", id, err)
		}
		if err := p.send(p.Topic(id), payload); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", id, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("publish: %s", strings.Join(failed, "; "))
	}
	return nil
}

// Topic maps a device id to its MQTT topic: /dev/sda -> <prefix>/dev_sda.
func (p *MQTTPublisher) Topic(id string) string {
	name := strings.TrimLeft(id, "/")
	name = strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(name)
	if name == "" {
		name = "unknown"
	}
	return p.prefix + "/" + name
}

func randomClientID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("gohome-hddtemp-%d", time.Now().UnixNano())
	}
	return "gohome-hddtemp-" + hex.EncodeToString(buf)
}
