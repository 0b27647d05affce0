package repositories

import (
	"context"
	"errors"

	"coffeehub/internal/models"
)

var (
	// ErrInvalidID is returned when an id does not match the store's
	// identifier format. The check happens before any store call.
	ErrInvalidID = errors.New("invalid product id")

	// ErrNotFound is returned when a well-formed id matches no record.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update merges only the supplied fields into the stored record,
	// stamps updatedAt and returns the merged view.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
