package adapters

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"bookameal/internal/orders/domain"
)

func TestModelConversion_PreservesClockTimestamps(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(30 * time.Minute)

	order := &domain.Order{
		ID:        7,
		UserID:    1,
		MealID:    2,
		Quantity:  3,
		Total:     6000,
		Status:    domain.OrderStatusPending,
		Expired:   true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	model := toModel(order)
	if !model.CreatedAt.Equal(createdAt) || !model.UpdatedAt.Equal(updatedAt) {
		t.Errorf("model timestamps diverged: created %s updated %s", model.CreatedAt, model.UpdatedAt)
	}

	back := toDomain(model)
	if !reflect.DeepEqual(back, order) {
		t.Errorf("round trip changed the order: %+v != %+v", back, order)
	}
}

// The domain owns CreatedAt/UpdatedAt; gorm's convention-based auto
// timestamps for those field names must stay disabled or Save would
// overwrite them with the database wall clock.
func TestOrderModel_AutoTimeDisabled(t *testing.T) {
	modelType := reflect.TypeOf(OrderModel{})

	created, _ := modelType.FieldByName("CreatedAt")
	if !strings.Contains(created.Tag.Get("gorm"), "autoCreateTime:false") {
		t.Errorf("CreatedAt auto tracking not disabled: %q", created.Tag.Get("gorm"))
	}

	updated, _ := modelType.FieldByName("UpdatedAt")
	if !strings.Contains(updated.Tag.Get("gorm"), "autoUpdateTime:false") {
		t.Errorf("UpdatedAt auto tracking not disabled: %q", updated.Tag.Get("gorm"))
	}
}
