package adapters

import (
	"context"

	"bookameal/internal/orders/domain"
	"bookameal/pkg/events"
	"bookameal/pkg/logger"
	"bookameal/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderPlaced publishes an order placed event
func (p *RabbitMQPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderPlacedEvent(
		order.ID,
		order.UserID,
		order.MealID,
		order.Quantity,
		order.Total,
		string(order.Status),
		order.CreatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderPlaced, event)
}

// PublishOrderExpired publishes an order expired event
func (p *RabbitMQPublisher) PublishOrderExpired(ctx context.Context, order *domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderExpiredEvent(
		order.ID,
		order.UserID,
		order.CreatedAt,
		order.UpdatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderExpired, event)
}
