package hddtemp

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const scrapeTimeout = 10 * time.Second

// MetricsCollector reads the daemon on every scrape.
type MetricsCollector struct {
	client *Client

	scrapeSuccess prometheus.Gauge
	lastSuccess   prometheus.Gauge
	deviceCount   prometheus.Gauge
	temperature   *prometheus.GaugeVec
	deviceStatus  *prometheus.GaugeVec
}

func NewMetricsCollector(client *Client) *MetricsCollector {
	labels := []string{"device", "model"}
	return &MetricsCollector{
		client: client,
		scrapeSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gohome_hddtemp_scrape_success",
			Help: "Last scrape success (1=ok, 0=error)",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gohome_hddtemp_last_success_timestamp_seconds",
			Help: "Last successful scrape timestamp (epoch seconds)",
		}),
		deviceCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gohome_hddtemp_devices",
			Help: "Number of devices reported by hddtemp",
		}),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_hddtemp_temperature_celsius",
			Help: "Drive temperature (celsius)",
		}, labels),
		deviceStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gohome_hddtemp_device_status",
			Help: "Device read status (1 for the current status label)",
		}, append(labels, "status")),
	}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	c.scrapeSuccess.Describe(ch)
	c.lastSuccess.Describe(ch)
	c.deviceCount.Describe(ch)
	c.temperature.Describe(ch)
	c.deviceStatus.Describe(ch)
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	if c.client == nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	devices, err := c.client.Devices(ctx)
	if err != nil {
		c.scrapeSuccess.Set(0)
		c.collectAll(ch)
		return
	}

	c.scrapeSuccess.Set(1)
	c.lastSuccess.Set(float64(time.Now().Unix()))
	c.update(devices)
	c.collectAll(ch)
}

func (c *MetricsCollector) update(devices Devices) {
	c.deviceCount.Set(float64(len(devices)))
	c.temperature.Reset()
	c.deviceStatus.Reset()
	for _, id := range devices.IDs() {
		device := devices[id]
		name, model := labelValue(id), labelValue(device.Model)
		labels := prometheus.Labels{"device": name, "model": model}
		if celsius, ok := device.Celsius(); ok {
			c.temperature.With(labels).Set(celsius)
		}
		c.deviceStatus.With(prometheus.Labels{
			"device": name,
			"model":  model,
			"status": device.Result.Label(),
		}).Set(1)
	}
}

// labelValue replaces invalid UTF-8, which GaugeVec.With panics on.
func labelValue(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func (c *MetricsCollector) collectAll(ch chan<- prometheus.Metric) {
	c.scrapeSuccess.Collect(ch)
	c.lastSuccess.Collect(ch)
	c.deviceCount.Collect(ch)
	c.temperature.Collect(ch)
	c.deviceStatus.Collect(ch)
}
