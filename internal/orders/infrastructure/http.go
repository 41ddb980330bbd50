package infrastructure

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookameal/internal/orders/application"
	"bookameal/internal/orders/domain"
	"bookameal/pkg/errors"
	"bookameal/pkg/middleware"
)

const dateLayout = "2006-01-02"

// HTTPHandler handles HTTP requests for orders
type HTTPHandler struct {
	useCase  *application.OrderUseCase
	reporter *application.SalesReporter
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase, reporter *application.SalesReporter) *HTTPHandler {
	return &HTTPHandler{useCase: useCase, reporter: reporter}
}

// RegisterRoutes registers the order routes. The group is expected to
// carry the authentication middleware already; sales totals addition-
// ally require the caterer role.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.GET("", h.GetAllOrders)
		orders.GET("/date/:date", h.GetOrdersByDate)
		orders.GET("/users/:userId", h.GetUserOrders)
		orders.GET("/total", middleware.RequireRole(middleware.RoleCaterer), h.GetTotal)
		orders.GET("/total/:date", middleware.RequireRole(middleware.RoleCaterer), h.GetTotal)
		orders.POST("", h.PlaceOrder)
		orders.PUT("/:orderId", h.UpdateOrder)
		orders.DELETE("/:orderId", h.DeleteOrder)
	}
}

// OrderResponse is the sanitized order view exposed by the API.
// Total is serialized as a decimal string; the original service stored
// numerics as strings and clients compare against that.
type OrderResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"userId"`
	MealID    uint   `json:"mealId"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
	Status    string `json:"status"`
	Expired   bool   `json:"expired"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// PlacedOrderResponse decorates the sanitized order with denormalized
// names for the confirmation view.
type PlacedOrderResponse struct {
	OrderResponse
	MealName     string `json:"mealName"`
	CustomerName string `json:"customerName"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		MealID:    o.MealID,
		Quantity:  o.Quantity,
		Total:     strconv.FormatInt(o.Total, 10),
		Status:    string(o.Status),
		Expired:   o.Expired,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i, order := range orders {
		result[i] = toOrderResponse(order)
	}
	return result
}

// GetAllOrders handles GET /orders
func (h *HTTPHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.useCase.GetAllOrders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders succesfully retrieved",
		"status":  "success",
		"orders":  toOrderResponses(orders),
	})
}

// GetOrdersByDate handles GET /orders/date/:date
func (h *HTTPHandler) GetOrdersByDate(c *gin.Context) {
	day, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.Error(errors.NewValidation("Date is invalid", map[string]interface{}{
			"date": "Date must be in the format YYYY-MM-DD",
		}))
		return
	}

	orders, err := h.useCase.GetOrdersByDate(c.Request.Context(), day)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders succesfully retrieved",
		"status":  "success",
		"orders":  toOrderResponses(orders),
	})
}

// GetUserOrders handles GET /orders/users/:userId
func (h *HTTPHandler) GetUserOrders(c *gin.Context) {
	userID, ok := parseIDParam(c.Param("userId"))
	if !ok {
		c.Error(errors.NewValidation("User id must be a number", map[string]interface{}{
			"userId": "User id must be a number",
		}))
		return
	}

	orders, err := h.useCase.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders succesfully retrieved",
		"status":  "success",
		"orders":  toOrderResponses(orders),
	})
}

// GetTotal handles GET /orders/total and GET /orders/total/:date
func (h *HTTPHandler) GetTotal(c *gin.Context) {
	var date time.Time
	if raw := c.Param("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.Error(errors.NewValidation("Date is invalid", map[string]interface{}{
				"date": "Date must be in the format YYYY-MM-DD",
			}))
			return
		}
		date = parsed
	}

	total, err := h.reporter.TotalForDate(c.Request.Context(), date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders total amount successfully retrieved",
		"status":  "success",
		"total":   total,
	})
}

// PlaceOrder handles POST /orders
func (h *HTTPHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("Invalid request body", map[string]interface{}{
			"body": "Request body must be valid JSON",
		}))
		return
	}

	callerID, _ := middleware.Identity(c)
	input, fieldErrs := validatePlaceOrder(req, callerID)
	if len(fieldErrs) > 0 {
		c.Error(errors.NewValidation("Order validation failed", fieldErrs))
		return
	}

	output, err := h.useCase.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"status":  "success",
		"order": PlacedOrderResponse{
			OrderResponse: toOrderResponse(output.Order),
			MealName:      output.MealName,
			CustomerName:  output.CustomerName,
		},
	})
}

// UpdateOrder handles PUT /orders/:orderId
func (h *HTTPHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c.Param("orderId"))
	if !ok {
		c.Error(errors.NewValidation("Order id must be a number", map[string]interface{}{
			"orderId": "Order id must be a number",
		}))
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("Invalid request body", map[string]interface{}{
			"body": "Request body must be valid JSON",
		}))
		return
	}

	patch, fieldErrs := validateUpdateOrder(req)
	if len(fieldErrs) > 0 {
		c.Error(errors.NewValidation("Order validation failed", fieldErrs))
		return
	}

	callerID, _ := middleware.Identity(c)
	output, err := h.useCase.UpdateOrder(c.Request.Context(), application.UpdateOrderInput{
		OrderID:      orderID,
		CallerUserID: callerID,
		Patch:        patch,
	})
	if err != nil {
		c.Error(sanitizeExpired(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully updated order",
		"status":  "success",
		"order":   toOrderResponse(output.Order),
	})
}

// DeleteOrder handles DELETE /orders/:orderId
func (h *HTTPHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c.Param("orderId"))
	if !ok {
		c.Error(errors.NewValidation("Order id must be a number", map[string]interface{}{
			"orderId": "Order id must be a number",
		}))
		return
	}

	order, err := h.useCase.DeleteOrder(c.Request.Context(), orderID)
	if err != nil {
		c.Error(err)
		return
	}

	// 201 on delete is a legacy quirk clients depend on
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order successfully deleted",
		"status":  "success",
		"order":   toOrderResponse(order),
	})
}

// sanitizeExpired swaps the raw domain order carried by an expired
// error for the sanitized API view before it is serialized.
func sanitizeExpired(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Code == errors.CodeExpired {
		if order, ok := appErr.Payload.(*domain.Order); ok {
			appErr.Payload = toOrderResponse(order)
		}
	}
	return err
}
