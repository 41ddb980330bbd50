package domain

import "bookameal/pkg/errors"

// Domain-specific errors. The messages are part of the API contract
// and match what clients already parse.
var (
	ErrUserIDRequired  = errors.NewValidation("user id is required", nil)
	ErrMealIDRequired  = errors.NewValidation("meal id is required", nil)
	ErrInvalidQuantity = errors.NewValidation("Order quantity cannot be less than zero", map[string]interface{}{"quantity": "Order quantity cannot be less than zero"})
	ErrInvalidTotal    = errors.NewValidation("Order total cannot be less than zero", map[string]interface{}{"total": "Order total cannot be less than zero"})
	ErrInvalidStatus   = errors.NewValidation("Order status is not valid", map[string]interface{}{"status": "Order status is not valid"})

	ErrUserNotExist = errors.NewNotFound("User does not exist", "user")
	ErrMealNotExist = errors.NewNotFound("Meal does not exist", "meal")

	ErrNoOrdersPlaced = errors.NewNotFound("No order have been placed", "message")
	ErrNoUserOrders   = errors.NewNotFound("User have no placed an order", "order")
	ErrOrderNotExist  = errors.NewNotFound("Order does not exist", "id")
)

// NewOrderIDNotFound is the update-path variant of a missing order
func NewOrderIDNotFound() *errors.AppError {
	return errors.NewNotFound("Order id does not exist", "id")
}

// NewOrderExpired reports a closed edit window, carrying the expired
// order so the client can show its final state.
func NewOrderExpired(order interface{}) *errors.AppError {
	return errors.NewExpired("You can no longer update this order", order)
}
