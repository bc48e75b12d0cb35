package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
)

var newEventID = uuid.NewString

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Sequencer hands out per-partition sequence numbers.
type Sequencer interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// PublisherOptions configures a Publisher. Sequencer is optional; without one
// envelopes carry no sequence.
type PublisherOptions struct {
	Producer  string
	Sequencer Sequencer
	Logger    *zap.Logger
}

type Publisher struct {
	ch       Channel
	seq      Sequencer
	producer string
	logger   *zap.Logger
	now      func() time.Time
}

func NewPublisher(conn *amqp.Connection, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch, opts), nil
}

func newPublisher(ch Channel, opts PublisherOptions) *Publisher {
	producer := opts.Producer
	if producer == "" {
		producer = defaultProducer
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		ch:       ch,
		seq:      opts.Sequencer,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishCartEvent emits one cart mutation on its routing key.
func (p *Publisher) PublishCartEvent(ctx context.Context, meta EventMeta, ev cart.Event) error {
	r, ok := cartEventRoutes[ev.Kind]
	if !ok {
		return fmt.Errorf("unsupported cart event kind %q", ev.Kind)
	}

	seq, err := p.nextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return err
	}

	ts := p.now()
	var body []byte
	if ev.Kind == cart.EventCleared {
		payload := CartClearedPayload{SessionID: meta.PartitionKey, Timestamp: ts}
		body, err = json.Marshal(newEnvelope(meta, seq, p.producer, r.eventName, payload, ts))
	} else {
		payload := CartItemPayload{
			SessionID: meta.PartitionKey,
			ItemID:    ev.ItemID,
			ItemName:  ev.ItemName,
			Quantity:  ev.Quantity,
			Timestamp: ts,
		}
		body, err = json.Marshal(newEnvelope(meta, seq, p.producer, r.eventName, payload, ts))
	}
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", r.eventName, err)
	}

	return p.publishJSON(ctx, r.routingKey, body)
}

func (p *Publisher) PublishCartCheckedOut(ctx context.Context, meta EventMeta, payload CartCheckedOutPayload) error {
	if len(payload.Lines) == 0 {
		return errors.New("checkout summary has no lines")
	}

	seq, err := p.nextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return err
	}

	ts := p.now()
	if payload.Timestamp.IsZero() {
		payload.Timestamp = ts
	}
	env := newEnvelope(meta, seq, p.producer, EventTypeCartCheckedOut, payload, ts)
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartCheckedOut envelope: %w", err)
	}

	return p.publishJSON(ctx, CartCheckedOutRoutingKey, body)
}

func (p *Publisher) nextSequence(ctx context.Context, partitionKey string) (*int64, error) {
	if p.seq == nil {
		return nil, nil
	}
	seq, err := p.seq.NextSequence(ctx, partitionKey)
	if err != nil {
		return nil, fmt.Errorf("reserve sequence: %w", err)
	}
	return &seq, nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	p.logger.Debug("event published", zap.String("routingKey", routingKey), zap.Int("bytes", len(body)))
	return nil
}
