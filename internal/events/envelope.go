package events

import (
	"fmt"
	"time"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
)

const (
	EventTypeCartItemAdded           = "CartItemAdded"
	EventTypeCartItemQuantityUpdated = "CartItemQuantityUpdated"
	EventTypeCartItemRemoved         = "CartItemRemoved"
	EventTypeCartCleared             = "CartCleared"
	EventTypeCartCheckedOut          = "CartCheckedOut"
)

// EventEnvelope is the common wrapper for every event this service emits.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      *int64    `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       T         `json:"payload"`
}

// Validate ensures the envelope contains the expected event identity.
func (e EventEnvelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	return nil
}

// EventMeta carries correlation/causation context for emitted events.
// PartitionKey is the cart session id.
type EventMeta struct {
	CorrelationID string
	CausationID   string
	PartitionKey  string
}

type CartItemPayload struct {
	SessionID string    `json:"sessionId"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

type CartClearedPayload struct {
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}

// CartCheckedOutPayload is the order summary handed to the message composer.
type CartCheckedOutPayload struct {
	SessionID      string             `json:"sessionId"`
	Lines          []cart.SummaryLine `json:"lines"`
	TotalItems     int                `json:"totalItems"`
	Total          int64              `json:"total"`
	TotalFormatted string             `json:"totalFormatted"`
	Timestamp      time.Time          `json:"timestamp"`
}

type route struct {
	eventName  string
	routingKey string
}

var cartEventRoutes = map[cart.EventKind]route{
	cart.EventAdded:           {EventTypeCartItemAdded, CartItemAddedRoutingKey},
	cart.EventQuantityUpdated: {EventTypeCartItemQuantityUpdated, CartItemQuantityUpdatedRoutingKey},
	cart.EventRemoved:         {EventTypeCartItemRemoved, CartItemRemovedRoutingKey},
	cart.EventCleared:         {EventTypeCartCleared, CartClearedRoutingKey},
}

func newEnvelope[T any](meta EventMeta, seq *int64, producer, eventName string, payload T, occurredAt time.Time) EventEnvelope[T] {
	return EventEnvelope[T]{
		EventName:     eventName,
		EventVersion:  1,
		EventID:       newEventID(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Payload:       payload,
	}
}
