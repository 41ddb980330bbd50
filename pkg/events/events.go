package events

import "time"

// Exchange names
const (
	ExchangeOrders = "orders.events"
)

// Routing keys
const (
	RoutingKeyOrderPlaced  = "order.placed"
	RoutingKeyOrderExpired = "order.expired"
)

// OrderPlacedEvent is published when a customer places an order
type OrderPlacedEvent struct {
	Version   string             `json:"version"`
	EventType string             `json:"event_type"`
	Timestamp time.Time          `json:"timestamp"`
	TraceID   string             `json:"trace_id"`
	Payload   OrderPlacedPayload `json:"payload"`
}

// OrderPlacedPayload contains order data
type OrderPlacedPayload struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	MealID    uint      `json:"meal_id"`
	Quantity  int       `json:"quantity"`
	Total     int64     `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(id, userID, mealID uint, quantity int, total int64, status string, createdAt time.Time, traceID string) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		Version:   "1.0",
		EventType: "order.placed",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderPlacedPayload{
			ID:        id,
			UserID:    userID,
			MealID:    mealID,
			Quantity:  quantity,
			Total:     total,
			Status:    status,
			CreatedAt: createdAt,
		},
	}
}

// OrderExpiredEvent is published when an order's edit window closes
type OrderExpiredEvent struct {
	Version   string              `json:"version"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id"`
	Payload   OrderExpiredPayload `json:"payload"`
}

// OrderExpiredPayload contains the expired order data
type OrderExpiredPayload struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

// NewOrderExpiredEvent creates a new OrderExpiredEvent
func NewOrderExpiredEvent(id, userID uint, createdAt, expiredAt time.Time, traceID string) *OrderExpiredEvent {
	return &OrderExpiredEvent{
		Version:   "1.0",
		EventType: "order.expired",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderExpiredPayload{
			ID:        id,
			UserID:    userID,
			CreatedAt: createdAt,
			ExpiredAt: expiredAt,
		},
	}
}
