package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookameal/internal/orders/domain"
	apperrors "bookameal/pkg/errors"
)

// UserModel is the GORM model for the users the order service reads.
// Accounts are owned by the auth service; this side only looks up.
type UserModel struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null"`
	Email string `gorm:"size:255;uniqueIndex;not null"`
	Role  string `gorm:"size:20;not null;default:'customer'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// MealModel is the GORM model for menu meals, read-only here
type MealModel struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null"`
	Price int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MealModel) TableName() string {
	return "meals"
}

// PostgresCatalog implements the UserFinder and MealFinder lookups
// against the shared database.
type PostgresCatalog struct {
	db *gorm.DB
}

// NewPostgresCatalog creates a new catalog lookup adapter
func NewPostgresCatalog(db *gorm.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// Migrate runs auto-migration for the catalog models. The auth and
// menu services own these tables in production; migrating here keeps
// local single-database setups working.
func (c *PostgresCatalog) Migrate() error {
	return c.db.AutoMigrate(&UserModel{}, &MealModel{})
}

// GetUser retrieves a user by ID
func (c *PostgresCatalog) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var model UserModel

	result := c.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, apperrors.NewInternal("failed to get user", result.Error)
	}

	return &domain.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Role:  model.Role,
	}, nil
}

// GetMeal retrieves a meal by ID
func (c *PostgresCatalog) GetMeal(ctx context.Context, id uint) (*domain.Meal, error) {
	var model MealModel

	result := c.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealNotExist
		}
		return nil, apperrors.NewInternal("failed to get meal", result.Error)
	}

	return &domain.Meal{
		ID:    model.ID,
		Name:  model.Name,
		Price: model.Price,
	}, nil
}
