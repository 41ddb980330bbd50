package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bookameal/internal/orders/domain"
	apperrors "bookameal/pkg/errors"
)

// OrderModel is the GORM model for orders (persistence layer)
type OrderModel struct {
	ID        uint               `gorm:"primaryKey"`
	UserID    uint               `gorm:"index;not null"`
	MealID    uint               `gorm:"index;not null"`
	Quantity  int                `gorm:"not null"`
	Total     int64              `gorm:"not null"`
	Status    domain.OrderStatus `gorm:"size:20;not null;default:'pending'"`
	Expired   bool               `gorm:"not null;default:false"`
	// Timestamps are set by the domain from the injected clock; gorm's
	// convention-based auto tracking for these names is switched off so
	// Save never overwrites them with the database wall clock.
	CreatedAt time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *gorm.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate runs auto-migration for the order model
func (r *PostgresOrderRepository) Migrate() error {
	return r.db.AutoMigrate(&OrderModel{})
}

// Create creates a new order
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create order", result.Error)
	}

	// Update domain entity with generated ID
	order.ID = model.ID

	return nil
}

// GetByID retrieves an order by ID
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotExist
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// GetAll retrieves every order
func (r *PostgresOrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	var models []OrderModel

	result := r.db.WithContext(ctx).Order("created_at").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to get orders", result.Error)
	}

	return toDomainList(models), nil
}

// GetByUserID retrieves orders owned by a user
func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var models []OrderModel

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to get orders by user", result.Error)
	}

	return toDomainList(models), nil
}

// GetByDate retrieves orders created on the given UTC calendar day
func (r *PostgresOrderRepository) GetByDate(ctx context.Context, day time.Time) ([]*domain.Order, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var models []OrderModel
	result := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to get orders by date", result.Error)
	}

	return toDomainList(models), nil
}

// GetCreatedSince retrieves orders created at or after the instant
func (r *PostgresOrderRepository) GetCreatedSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	var models []OrderModel

	result := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to get orders since date", result.Error)
	}

	return toDomainList(models), nil
}

// Update updates an existing order
func (r *PostgresOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order", result.Error)
	}

	return nil
}

// Delete deletes an order by ID
func (r *PostgresOrderRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotExist
	}
	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(order *domain.Order) *OrderModel {
	return &OrderModel{
		ID:        order.ID,
		UserID:    order.UserID,
		MealID:    order.MealID,
		Quantity:  order.Quantity,
		Total:     order.Total,
		Status:    order.Status,
		Expired:   order.Expired,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *OrderModel) *domain.Order {
	return &domain.Order{
		ID:        model.ID,
		UserID:    model.UserID,
		MealID:    model.MealID,
		Quantity:  model.Quantity,
		Total:     model.Total,
		Status:    model.Status,
		Expired:   model.Expired,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toDomainList(models []OrderModel) []*domain.Order {
	orders := make([]*domain.Order, len(models))
	for i, model := range models {
		orders[i] = toDomain(&model)
	}
	return orders
}
