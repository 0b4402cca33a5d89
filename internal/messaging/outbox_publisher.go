package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/betstack/bet-engine/internal/models"
	"github.com/betstack/bet-engine/internal/observability"
	"github.com/betstack/bet-engine/internal/repository"
	"github.com/rs/zerolog"
)

// OutboxPublisher polls the outbox table and publishes events to Kafka
type OutboxPublisher struct {
	outboxRepo    repository.OutboxRepository
	kafkaProducer sarama.SyncProducer
	metrics       *observability.Metrics
	logger        zerolog.Logger
	pollInterval  time.Duration
	batchSize     int
	topicMap      map[string]string // event_type -> Kafka topic
}

// NewOutboxPublisher creates a new outbox publisher
func NewOutboxPublisher(
	outboxRepo repository.OutboxRepository,
	kafkaProducer sarama.SyncProducer,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *OutboxPublisher {
	return &OutboxPublisher{
		outboxRepo:    outboxRepo,
		kafkaProducer: kafkaProducer,
		metrics:       metrics,
		logger:        logger.With().Str("component", "outbox_publisher").Logger(),
		pollInterval:  100 * time.Millisecond,
		batchSize:     100,
		topicMap: map[string]string{
			models.EventTypeBetPlaced:  "bet.events",
			models.EventTypeBetSettled: "bet.settlements",
		},
	}
}

// Start begins polling for outbox events
func (p *OutboxPublisher) Start(ctx context.Context) {
	p.logger.Info().Msg("outbox publisher started")
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			p.logger.Info().Msg("outbox publisher stopping")
			return
		}
	}
}

// publishPending retrieves and publishes unprocessed events
func (p *OutboxPublisher) publishPending(ctx context.Context) {
	events, err := p.outboxRepo.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to get unprocessed events")
		return
	}

	for _, event := range events {
		publishErr := p.publishEvent(event)
		if publishErr != nil {
			p.metrics.OutboxEventsFailed.WithLabelValues(event.EventType).Inc()
			p.logger.Error().
				Err(publishErr).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish event")

			if err := p.outboxRepo.IncrementRetryCount(ctx, event.ID, publishErr.Error()); err != nil {
				p.logger.Error().Err(err).Msg("failed to increment retry count")
			}
		} else {
			p.metrics.OutboxEventsPublished.WithLabelValues(event.EventType).Inc()
			if err := p.outboxRepo.MarkProcessed(ctx, event.ID); err != nil {
				p.logger.Error().Err(err).Msg("failed to mark event as processed")
			}
		}
	}
}

// publishEvent publishes a single event to Kafka
func (p *OutboxPublisher) publishEvent(event *models.OutboxEvent) error {
	topic, ok := p.topicMap[event.EventType]
	if !ok {
		topic = "bet.events"
	}

	payload, err := json.Marshal(event.EventPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.AggregateID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("aggregate_type"), Value: []byte(event.AggregateType)},
		},
	}

	partition, offset, err := p.kafkaProducer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send to Kafka: %w", err)
	}

	p.logger.Debug().
		Str("event_type", event.EventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("published event to Kafka")

	return nil
}
