package events

import (
	"context"
	"fmt"
	"time"

	"finecho-server/internal/clients/kafka"
	"finecho-server/internal/observability"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const EventTypeCallProcessed = "call.processed"

// EventProducer is the part of the Kafka producer the publisher needs.
type EventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// CallProcessed describes the terminal outcome of one pipeline run.
type CallProcessed struct {
	CallID           uuid.UUID
	AdvisorID        uuid.UUID
	Status           string
	ComplianceStatus string
	AnalysisSource   string
}

// Publisher handles publishing domain events to Kafka
type Publisher struct {
	producer   EventProducer
	logger     *observability.Logger
	maxElapsed time.Duration
}

// NewPublisher creates a new event publisher. A nil producer makes every publish a no-op.
func NewPublisher(producer EventProducer, logger *observability.Logger) *Publisher {
	return &Publisher{
		producer:   producer,
		logger:     logger,
		maxElapsed: 10 * time.Second,
	}
}

// PublishCallProcessed publishes a call.processed event, retrying transient failures
// with exponential backoff.
func (p *Publisher) PublishCallProcessed(ctx context.Context, evt CallProcessed) error {
	if p == nil || p.producer == nil {
		return nil
	}

	event := kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      EventTypeCallProcessed,
		AccountID: evt.AdvisorID.String(),
		Data: map[string]interface{}{
			"call_id":           evt.CallID.String(),
			"status":            evt.Status,
			"compliance_status": evt.ComplianceStatus,
			"source":            evt.AnalysisSource,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = p.maxElapsed

	attempt := 0
	op := func() error {
		attempt++
		return p.producer.PublishEvent(ctx, event)
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		p.logger.Error(observability.WithFields(ctx,
			observability.Field{Key: "attempts", Value: attempt},
		), "failed to publish call.processed event", err)
		return fmt.Errorf("failed to publish call.processed event: %w", err)
	}
	return nil
}
