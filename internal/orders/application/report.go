package application

import (
	"context"
	"time"

	"bookameal/internal/orders/ports"
	"bookameal/pkg/clock"
	"bookameal/pkg/errors"
	"bookameal/pkg/logger"

	"go.uber.org/zap"
)

// SalesReporter computes summed order totals over a date range.
// Access is restricted to caterers at the transport layer.
type SalesReporter struct {
	repo  ports.OrderRepository
	clock clock.Clock
	log   *logger.Logger
}

// NewSalesReporter creates a new sales reporter
func NewSalesReporter(repo ports.OrderRepository, clk clock.Clock, log *logger.Logger) *SalesReporter {
	return &SalesReporter{repo: repo, clock: clk, log: log}
}

// TotalForDate sums the totals of orders created at or after the start
// of the given UTC day. A zero date means the current day. An empty
// matching set yields 0, never an error.
func (r *SalesReporter) TotalForDate(ctx context.Context, date time.Time) (int64, error) {
	if date.IsZero() {
		date = r.clock.Now()
	}
	since := StartOfDay(date)

	orders, err := r.repo.GetCreatedSince(ctx, since)
	if err != nil {
		return 0, errors.NewInternal("failed to get orders for total", err)
	}

	var total int64
	for _, order := range orders {
		total += order.Total
	}

	r.log.WithContext(ctx).Info("sales total computed",
		zap.Time("since", since),
		zap.Int("orders", len(orders)),
		zap.Int64("total", total),
	)

	return total, nil
}

// StartOfDay truncates t to midnight UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
