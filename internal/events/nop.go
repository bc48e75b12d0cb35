package events

import (
	"context"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
)

// NopPublisher drops every event. Used when EVENTS_ENABLED is false.
type NopPublisher struct{}

func (NopPublisher) PublishCartEvent(context.Context, EventMeta, cart.Event) error { return nil }

func (NopPublisher) PublishCartCheckedOut(context.Context, EventMeta, CartCheckedOutPayload) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
