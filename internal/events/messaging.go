package events

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange = "cakeshop.events"

	CartItemAddedRoutingKey           = "cart.item.added.v1"
	CartItemQuantityUpdatedRoutingKey = "cart.item.quantity_updated.v1"
	CartItemRemovedRoutingKey         = "cart.item.removed.v1"
	CartClearedRoutingKey             = "cart.cleared.v1"
	CartCheckedOutRoutingKey          = "cart.checkedout.v1"

	defaultProducer = "cakeshop-service-go"
)

// Dial connects to RabbitMQ with a bounded dial timeout.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
