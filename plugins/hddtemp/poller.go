package hddtemp

import (
	"context"
	"log"
	"time"
)

// Sink receives every successful poll.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snap Snapshot) error
}

// Snapshot is one poll result.
type Snapshot struct {
	Raw     string
	Devices Devices
	At      time.Time
}

// Poller fetches the daemon on an interval and fans results out to sinks.
type Poller struct {
	client   *Client
	interval time.Duration
	sinks    []Sink
	now      func() time.Time
}

func NewPoller(client *Client, interval time.Duration, sinks ...Sink) *Poller {
	return &Poller{client: client, interval: interval, sinks: sinks, now: time.Now}
}

// Run polls until ctx is cancelled. Failed polls are logged and skipped.
func (p *Poller) Run(ctx context.Context) error {
	if p.client == nil || p.interval <= 0 || len(p.sinks) == 0 {
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if err := p.PollOnce(ctx); err != nil {
		log.Printf("hddtemp poll: %v", err)
	}
}

// PollOnce performs a single fetch and publishes it to every sink.
// Sink failures are logged; only the fetch error is returned.
func (p *Poller) PollOnce(ctx context.Context) error {
	raw, err := p.client.Raw(ctx)
	if err != nil {
		return err
	}
	devices, err := ParseDevices(raw, p.client.Separator())
	if err != nil {
		return err
	}

	snap := Snapshot{Raw: raw, Devices: devices, At: p.now()}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, snap); err != nil {
			log.Printf("hddtemp %s: %v", sink.Name(), err)
		}
	}
	return nil
}
