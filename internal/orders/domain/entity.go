package domain

import (
	"time"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusProcessed OrderStatus = "processed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessed, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a placed meal order. Expired is a one-way flag:
// once the edit window closes it is set and never cleared, and the
// update path refuses everything except the UpdatedAt refresh.
type Order struct {
	ID        uint
	UserID    uint
	MealID    uint
	Quantity  int
	Total     int64
	Status    OrderStatus
	Expired   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the order entity
func (o *Order) Validate() error {
	if o.UserID == 0 {
		return ErrUserIDRequired
	}
	if o.MealID == 0 {
		return ErrMealIDRequired
	}
	if o.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if o.Total < 0 {
		return ErrInvalidTotal
	}
	if !ValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// NewOrder creates a new pending order with validation. The creation
// instant anchors the edit window and never changes afterwards.
func NewOrder(userID, mealID uint, quantity int, total int64, now time.Time) (*Order, error) {
	order := &Order{
		UserID:    userID,
		MealID:    mealID,
		Quantity:  quantity,
		Total:     total,
		Status:    OrderStatusPending,
		Expired:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Expire marks the order no longer editable. It reports whether the
// flag actually flipped, so a second call is a no-op and races between
// two expiry attempts are harmless.
func (o *Order) Expire(now time.Time) bool {
	if o.Expired {
		return false
	}
	o.Expired = true
	o.UpdatedAt = now
	return true
}

// Patch carries the fields a customer may change while the order is
// still inside its edit window. Nil fields are left untouched.
type Patch struct {
	Quantity *int
	Total    *int64
	Status   *OrderStatus
}

// Validate validates the patch fields that are present
func (p Patch) Validate() error {
	if p.Quantity != nil && *p.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if p.Total != nil && *p.Total < 0 {
		return ErrInvalidTotal
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Apply merges the patch into the order and refreshes UpdatedAt
func (o *Order) Apply(p Patch, now time.Time) {
	if p.Quantity != nil {
		o.Quantity = *p.Quantity
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	o.UpdatedAt = now
}
