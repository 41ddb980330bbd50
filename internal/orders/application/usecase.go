package application

import (
	"context"
	"time"

	"bookameal/internal/orders/domain"
	"bookameal/internal/orders/ports"
	"bookameal/pkg/clock"
	"bookameal/pkg/errors"
	"bookameal/pkg/logger"

	"go.uber.org/zap"
)

// OrderUseCase orchestrates the order lifecycle: placement, retrieval,
// window-gated updates, expiry transitions and deletion.
type OrderUseCase struct {
	repo      ports.OrderRepository
	users     ports.UserFinder
	meals     ports.MealFinder
	publisher ports.EventPublisher
	policy    domain.EditPolicy
	clock     clock.Clock
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	users ports.UserFinder,
	meals ports.MealFinder,
	publisher ports.EventPublisher,
	policy domain.EditPolicy,
	clk clock.Clock,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		users:     users,
		meals:     meals,
		publisher: publisher,
		policy:    policy,
		clock:     clk,
		log:       log,
	}
}

// PlaceOrderInput represents the input for placing an order
type PlaceOrderInput struct {
	UserID   uint
	MealID   uint
	Quantity int
	Total    int64
}

// PlaceOrderOutput represents the output of placing an order
type PlaceOrderOutput struct {
	Order        *domain.Order
	MealName     string
	CustomerName string
}

// PlaceOrder verifies the customer and meal exist, then creates a
// pending order anchored at the current clock instant.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderOutput, error) {
	user, err := uc.users.GetUser(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, errors.Wrap(err, "failed to look up user")
	}

	meal, err := uc.meals.GetMeal(ctx, input.MealID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, domain.ErrMealNotExist
		}
		return nil, errors.Wrap(err, "failed to look up meal")
	}

	order, err := domain.NewOrder(input.UserID, input.MealID, input.Quantity, input.Total, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to create order", err)
	}

	// Publish event (async, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderPlaced(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order placed event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Uint("meal_id", order.MealID),
		zap.Int64("total", order.Total),
	)

	return &PlaceOrderOutput{
		Order:        order,
		MealName:     meal.Name,
		CustomerName: user.Name,
	}, nil
}

// GetAllOrders returns every placed order. An empty store is reported
// as a not-found error rather than an empty list; callers rely on the
// distinction.
func (uc *OrderUseCase) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewInternal("failed to get orders", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoOrdersPlaced
	}
	return orders, nil
}

// GetOrdersByDate returns the orders created on the given UTC calendar
// day. Unlike GetAllOrders, no matches is an empty list, not an error.
func (uc *OrderUseCase) GetOrdersByDate(ctx context.Context, day time.Time) ([]*domain.Order, error) {
	orders, err := uc.repo.GetByDate(ctx, day)
	if err != nil {
		return nil, errors.NewInternal("failed to get orders by date", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// GetUserOrders returns the order history for a user
func (uc *OrderUseCase) GetUserOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	orders, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternal("failed to get user orders", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoUserOrders
	}
	return orders, nil
}

// UpdateOrderInput represents the input for updating an order
type UpdateOrderInput struct {
	OrderID      uint
	CallerUserID uint
	Patch        domain.Patch
}

// UpdateOrderOutput represents the output of updating an order
type UpdateOrderOutput struct {
	Order *domain.Order
}

// UpdateOrder applies a patch to an order while its edit window is
// open. A stale attempt first persists the expiry transition and then
// fails: the flip is a real state change, not just an error path.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, input UpdateOrderInput) (*UpdateOrderOutput, error) {
	order, err := uc.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, domain.NewOrderIDNotFound()
		}
		return nil, errors.Wrap(err, "failed to load order")
	}

	now := uc.clock.Now()

	if uc.policy.ShouldExpire(order, now) {
		return nil, uc.expire(ctx, order, now)
	}

	if !uc.policy.IsEditable(order, now) {
		return nil, domain.NewOrderExpired(order)
	}

	if err := input.Patch.Validate(); err != nil {
		return nil, err
	}

	// No ownership check: any authenticated caller may update, which is
	// the behavior existing clients were built against. CallerUserID is
	// logged for audit only.
	order.Apply(input.Patch, now)

	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, errors.NewInternal("failed to update order", err)
	}

	uc.log.WithContext(ctx).Info("order updated",
		zap.Uint("order_id", order.ID),
		zap.Uint("caller_id", input.CallerUserID),
	)

	return &UpdateOrderOutput{Order: order}, nil
}

// expire flips the one-way expired flag, persists it, and returns the
// expired-order error for the caller.
func (uc *OrderUseCase) expire(ctx context.Context, order *domain.Order, now time.Time) error {
	if order.Expire(now) {
		if err := uc.repo.Update(ctx, order); err != nil {
			return errors.NewInternal("failed to expire order", err)
		}

		if uc.publisher != nil {
			if err := uc.publisher.PublishOrderExpired(ctx, order); err != nil {
				uc.log.WithContext(ctx).Error("failed to publish order expired event",
					zap.Error(err),
					zap.Uint("order_id", order.ID),
				)
			}
		}

		uc.log.WithContext(ctx).Info("order expired",
			zap.Uint("order_id", order.ID),
			zap.Time("created_at", order.CreatedAt),
		)
	}

	return domain.NewOrderExpired(order)
}

// DeleteOrder removes an order and returns the removed snapshot.
// Deletion is authorization-gated upstream, not time-gated here.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, domain.ErrOrderNotExist
		}
		return nil, errors.Wrap(err, "failed to load order")
	}

	if err := uc.repo.Delete(ctx, orderID); err != nil {
		return nil, errors.NewInternal("failed to delete order", err)
	}

	uc.log.WithContext(ctx).Info("order deleted",
		zap.Uint("order_id", orderID),
	)

	return order, nil
}
