package infrastructure

import (
	"math"
	"strconv"
	"strings"

	"bookameal/internal/orders/application"
	"bookameal/internal/orders/domain"
)

// The original web client submits numeric fields as JSON strings, while
// newer clients send plain numbers. Both are accepted: every numeric
// field is decoded as interface{} and coerced here.

// placeOrderRequest is the request body for placing an order
type placeOrderRequest struct {
	MealID   interface{} `json:"mealId"`
	Amount   interface{} `json:"amount"`
	Quantity interface{} `json:"quantity"`
	Total    interface{} `json:"total"`
}

// updateOrderRequest is the request body for updating an order
type updateOrderRequest struct {
	Quantity interface{} `json:"quantity"`
	Total    interface{} `json:"total"`
	Status   interface{} `json:"status"`
}

// fieldErrors accumulates per-field validation messages for the
// {error:{field: message}} response shape.
type fieldErrors map[string]interface{}

// numField coerces a JSON string or number into a whole int64.
// ok is false when the field is absent, bad is true when it is present
// but not a whole number.
func numField(v interface{}) (n int64, ok, whole bool) {
	switch value := v.(type) {
	case nil:
		return 0, false, true
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			return 0, false, true
		}
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, true, false
		}
		return parsed, true, true
	case float64:
		if value != math.Trunc(value) {
			return 0, true, false
		}
		return int64(value), true, true
	default:
		return 0, true, false
	}
}

// validatePlaceOrder validates a creation payload and converts it to a
// use case input. The owner is always the authenticated caller.
func validatePlaceOrder(req placeOrderRequest, callerID uint) (application.PlaceOrderInput, fieldErrors) {
	errs := fieldErrors{}
	input := application.PlaceOrderInput{UserID: callerID}

	mealID, present, whole := numField(req.MealID)
	switch {
	case !present:
		errs["mealId"] = "Meal id is required"
	case !whole || mealID <= 0:
		errs["mealId"] = "Meal id must be a positive whole number"
	default:
		input.MealID = uint(mealID)
	}

	quantity, present, whole := numField(req.Quantity)
	switch {
	case !present:
		errs["quantity"] = "Order quantity is required"
	case !whole:
		errs["quantity"] = "Order quantity must be whole numbers"
	case quantity < 1:
		errs["quantity"] = "Order quantity cannot be less than zero"
	default:
		input.Quantity = int(quantity)
	}

	total, present, whole := numField(req.Total)
	switch {
	case !present:
		errs["total"] = "Order total is required"
	case !whole || total < 0:
		errs["total"] = "Order total cannot be less than zero"
	default:
		input.Total = total
	}

	// amount is the unit price echoed by the client; it is not stored,
	// but a malformed value still fails fast.
	if amount, present, whole := numField(req.Amount); present && (!whole || amount < 0) {
		errs["amount"] = "Order amount cannot be less than zero"
	}

	return input, errs
}

// validateUpdateOrder validates a patch payload. All fields optional,
// present fields must be well-formed.
func validateUpdateOrder(req updateOrderRequest) (domain.Patch, fieldErrors) {
	errs := fieldErrors{}
	patch := domain.Patch{}

	if quantity, present, whole := numField(req.Quantity); present {
		switch {
		case !whole:
			errs["quantity"] = "Order quantity must be whole numbers"
		case quantity < 1:
			errs["quantity"] = "Order quantity cannot be less than zero"
		default:
			value := int(quantity)
			patch.Quantity = &value
		}
	}

	if total, present, whole := numField(req.Total); present {
		if !whole || total < 0 {
			errs["total"] = "Order total cannot be less than zero"
		} else {
			patch.Total = &total
		}
	}

	if req.Status != nil {
		status, isString := req.Status.(string)
		orderStatus := domain.OrderStatus(strings.TrimSpace(status))
		if !isString || !domain.ValidStatus(orderStatus) {
			errs["status"] = "Order status is not valid"
		} else {
			patch.Status = &orderStatus
		}
	}

	return patch, errs
}

// parseIDParam validates a positive whole-number path parameter
func parseIDParam(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
