package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends domain events to Redis streams: account lifecycle events
// to AccountEventsStream, balance mutations to TransactionEventsStream. Each
// event type has its own method so payload shapes are fixed at the call site.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishAccountOpened(ctx context.Context, event AccountOpenedEvent) error {
	return p.append(ctx, AccountEventsStream, AccountOpened, event)
}

func (p *Publisher) PublishAccountClosed(ctx context.Context, event AccountClosedEvent) error {
	return p.append(ctx, AccountEventsStream, AccountClosed, event)
}

func (p *Publisher) PublishBalanceUsed(ctx context.Context, event BalanceChangedEvent) error {
	return p.append(ctx, TransactionEventsStream, BalanceUsed, event)
}

func (p *Publisher) PublishBalanceCancelled(ctx context.Context, event BalanceChangedEvent) error {
	return p.append(ctx, TransactionEventsStream, BalanceCancelled, event)
}

func (p *Publisher) append(ctx context.Context, stream, eventType string, payload any) error {
	envelope, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	// The type is duplicated as a top-level stream field so consumers can
	// filter entries without decoding the envelope.
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"type":  eventType,
			"event": envelope,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}
