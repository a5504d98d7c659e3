package hddtemp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joshp123/gohome-hddtemp/internal/config"
)

func TestMQTTTopic(t *testing.T) {
	pub := newMQTTPublisher("home/disks/", nil)
	cases := map[string]string{
		"/dev/sda":       "home/disks/dev_sda",
		"sdb":            "home/disks/sdb",
		"/dev/disk/by+#": "home/disks/dev_disk_by__",
		"/":              "home/disks/unknown",
		"":               "home/disks/unknown",
	}
	for id, want := range cases {
		if got := pub.Topic(id); got != want {
			t.Fatalf("Topic(%q) = %q, want %q", id, got, want)
		}
	}

	if got := newMQTTPublisher("", nil).Topic("/dev/sda"); got != config.DefaultMQTTPrefix+"/dev_sda" {
		t.Fatalf("unexpected default topic: %q", got)
	}
}

func TestMQTTPublish(t *testing.T) {
	devices, err := ParseDevices(sampleResponse, DefaultSeparator)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	sent := map[string][]byte{}
	var order []string
	pub := newMQTTPublisher("hdd", func(topic string, payload []byte) error {
		sent[topic] = payload
		order = append(order, topic)
		return nil
	})

	at := time.Unix(1700000000, 0)
	if err := pub.Publish(context.Background(), Snapshot{Devices: devices, At: at}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := []string{"hdd/dev_sda", "hdd/dev_sdb", "hdd/dev_sdc"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected publish order: %v", order)
	}

	var sdc DevicePayload
	if err := json.Unmarshal(sent["hdd/dev_sdc"], &sdc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sdc.ID != "/dev/sdc" || sdc.Status != "known" || sdc.Unit != "F" || sdc.Timestamp != at.Unix() {
		t.Fatalf("unexpected payload: %+v", sdc)
	}
	if sdc.Temperature == nil || *sdc.Temperature != 104 {
		t.Fatalf("unexpected temperature: %v", sdc.Temperature)
	}
	if sdc.Celsius == nil || *sdc.Celsius != 40 {
		t.Fatalf("unexpected celsius: %v", sdc.Celsius)
	}

	var raw map[string]any
	if err := json.Unmarshal(sent["hdd/dev_sdb"], &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["status"] != "drive_sleep" {
		t.Fatalf("unexpected status: %v", raw["status"])
	}
	for _, key := range []string{"temperature", "unit", "temperature_celsius"} {
		if _, ok := raw[key]; ok {
			t.Fatalf("sleeping drive payload should omit %s: %v", key, raw)
		}
	}
}

func TestMQTTPublishPartialFailure(t *testing.T) {
	devices, err := ParseDevices(sampleResponse, DefaultSeparator)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	calls := 0
	pub := newMQTTPublisher("hdd", func(topic string, _ []byte) error {
		calls++
		if topic == "hdd/dev_sdb" {
			return errors.New("broker gone")
		}
		return nil
	})

	err = pub.Publish(context.Background(), Snapshot{Devices: devices, At: time.Now()})
	if err == nil || !strings.Contains(err.Error(), "/dev/sdb: broker gone") {
		t.Fatalf("expected sdb failure, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected every device to be attempted, got %d", calls)
	}
}

func TestNewMQTTPublisherValidation(t *testing.T) {
	if _, err := NewMQTTPublisher(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewMQTTPublisher(&config.MQTTConfig{Broker: "tcp://127.0.0.1:1883", PasswordFile: "/nonexistent/password"}); err == nil {
		t.Fatalf("expected error for missing password file")
	}
}
