package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/worldwidewaves/wave-engine/internal/config"
	"github.com/worldwidewaves/wave-engine/internal/observability"
	"github.com/worldwidewaves/wave-engine/internal/observe"
)

// Publisher writes observation snapshots to a Kafka topic. Snapshots are
// enqueued from the observation loop and written from Run's goroutine so a
// slow broker never stalls a tick.
type Publisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
	queue   chan observe.Snapshot
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{
		writer:  w,
		logger:  logger,
		metrics: metrics,
		queue:   make(chan observe.Snapshot, 64),
	}
}

// Enqueue hands a snapshot to the publishing goroutine. Drops the snapshot
// when the queue is full; the next tick supersedes it anyway.
func (p *Publisher) Enqueue(snap observe.Snapshot) {
	select {
	case p.queue <- snap:
	default:
		p.logger.Debug("snapshot queue full, dropping", "event_id", snap.EventID)
	}
}

// Run publishes queued snapshots until the context is cancelled.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-p.queue:
			if err := p.publish(ctx, snap); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.metrics.SnapshotErrors.Inc()
				p.logger.Error("snapshot publish failed", "error", err, "event_id", snap.EventID)
				continue
			}
			p.metrics.SnapshotsPublished.Inc()
		}
	}
}

func (p *Publisher) publish(ctx context.Context, snap observe.Snapshot) error {
	msg, err := serializeToMessage(snap)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a snapshot into a Kafka message keyed by event.
func serializeToMessage(snap observe.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snap.EventID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(snap.Status)},
			{Key: "observed_at", Value: []byte(snap.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
