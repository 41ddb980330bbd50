package ports

import (
	"context"
	"time"

	"bookameal/internal/orders/domain"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uint) (*domain.Order, error)

	// GetAll retrieves every order
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// GetByUserID retrieves orders owned by a user
	GetByUserID(ctx context.Context, userID uint) ([]*domain.Order, error)

	// GetByDate retrieves orders created on the given UTC calendar day
	GetByDate(ctx context.Context, day time.Time) ([]*domain.Order, error)

	// GetCreatedSince retrieves orders created at or after the instant
	GetCreatedSince(ctx context.Context, since time.Time) ([]*domain.Order, error)

	// Update updates an existing order
	Update(ctx context.Context, order *domain.Order) error

	// Delete deletes an order by ID
	Delete(ctx context.Context, id uint) error
}

// UserFinder verifies a customer account exists
type UserFinder interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

// MealFinder verifies a meal is on the menu
type MealFinder interface {
	// GetMeal retrieves a meal by ID
	GetMeal(ctx context.Context, id uint) (*domain.Meal, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderPlaced publishes an order placed event
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error

	// PublishOrderExpired publishes an order expired event
	PublishOrderExpired(ctx context.Context, order *domain.Order) error
}
