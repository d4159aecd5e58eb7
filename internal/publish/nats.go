package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iksnae/support-analytics/internal"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// streamMaxAge bounds how long published dashboards are retained
const streamMaxAge = 24 * time.Hour

// Publisher sends computed dashboards to a JetStream stream
type Publisher struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	subject string
}

// Subject is where dashboards for prefix are published
func Subject(prefix string) string {
	return fmt.Sprintf("%s.dashboard", prefix)
}

// StreamConfig describes the stream dashboards are stored in
func StreamConfig(cfg internal.NATSConfig) jetstream.StreamConfig {
	storage := jetstream.FileStorage
	if cfg.Storage == "memory" {
		storage = jetstream.MemoryStorage
	}
	return jetstream.StreamConfig{
		Name:        cfg.Stream,
		Description: "Computed support analytics dashboards",
		Subjects:    []string{fmt.Sprintf("%s.>", cfg.SubjectPrefix)},
		MaxAge:      streamMaxAge,
		Storage:     storage,
	}
}

// NewPublisher connects to cfg.URL and makes sure the stream exists
func NewPublisher(ctx context.Context, cfg internal.NATSConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL, nats.Name("support-analytics"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stream, err := js.Stream(ctx, cfg.Stream)
	if err != nil {
		internal.LogInfo("Stream %s not found, creating it", cfg.Stream)
		stream, err = js.CreateStream(ctx, StreamConfig(cfg))
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream %s: %w", cfg.Stream, err)
		}
	}
	internal.LogDebug("Using stream %s", stream.CachedInfo().Config.Name)

	return &Publisher{nc: nc, js: js, subject: Subject(cfg.SubjectPrefix)}, nil
}

// PublishDashboard publishes d as JSON. The snapshot id is the message id,
// so publishing the same dashboard twice stores it once.
func (p *Publisher) PublishDashboard(ctx context.Context, d *internal.Dashboard) error {
	data, err := EncodeDashboard(d)
	if err != nil {
		return err
	}

	opts := []jetstream.PublishOpt{}
	if d.SnapshotID != "" {
		opts = append(opts, jetstream.WithMsgID(d.SnapshotID))
	}
	ack, err := p.js.Publish(ctx, p.subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish dashboard to %s: %w", p.subject, err)
	}
	internal.LogDebug("Published dashboard %s to %s (seq %d)", d.SnapshotID, p.subject, ack.Sequence)
	return nil
}

// Hook adapts the publisher for DashboardService.AddHook
func (p *Publisher) Hook() internal.DashboardHook {
	return p.PublishDashboard
}

// Close drains and closes the connection
func (p *Publisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
		}
	}
}

// EncodeDashboard is the wire form of a published dashboard
func EncodeDashboard(d *internal.Dashboard) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	return data, nil
}
