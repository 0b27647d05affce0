package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"coffeehub/internal/models"
	"coffeehub/internal/repositories"
)

// EventPublisher publishes catalog change events. A nil publisher
// disables event emission.
type EventPublisher interface {
	PublishProductEvent(action string, payload map[string]interface{}) error
}

// CatalogStats aggregates the whole product set. AvgPrice is a
// two-decimal number, or the literal 0 when the catalog is empty.
type CatalogStats struct {
	Total         int64       `json:"total"`
	AvgPrice      json.Number `json:"avgPrice"`
	PopularOrigin string      `json:"popularOrigin"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. The event publisher
// may be nil when event publishing is disabled.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct persists a new product built from a sanitized patch,
// applying the documented defaults and stamping CreatedAt.
func (s *ProductService) CreateProduct(ctx context.Context, patch *models.ProductPatch) (*models.Product, error) {
	product := models.NewProduct(patch)
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish("product.created", product.ID, product)
	return product, nil
}

// UpdateProduct merges only the supplied fields into the stored record
// and returns the merged view.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	updated, err := s.repo.Update(ctx, id, patch.Fields())
	if err != nil {
		return nil, err
	}
	s.publish("product.updated", updated.ID, updated)
	return updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("product.deleted", id, nil)
	return nil
}

// Stats computes the aggregate statistics over the full product set.
// Origin popularity uses a frequency map; on a tie the first origin
// (in store order) to reach the maximal count wins.
func (s *ProductService) Stats(ctx context.Context) (*CatalogStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	avgPrice := json.Number("0")
	if len(products) > 0 {
		var sum float64
		for _, p := range products {
			sum += p.Price
		}
		avg := sum / float64(len(products))
		avgPrice = json.Number(strconv.FormatFloat(avg, 'f', 2, 64))
	}

	popularOrigin := "N/A"
	counts := make(map[string]int)
	best := 0
	for _, p := range products {
		if p.Origin == "" {
			continue
		}
		counts[p.Origin]++
		if counts[p.Origin] > best {
			best = counts[p.Origin]
			popularOrigin = p.Origin
		}
	}

	return &CatalogStats{
		Total:         total,
		AvgPrice:      avgPrice,
		PopularOrigin: popularOrigin,
	}, nil
}

// Ping checks connectivity to the underlying store.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish emits a catalog event. Publishing failures are logged and
// never fail the request that triggered them.
func (s *ProductService) publish(action, id string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{"id": id}
	if product != nil {
		payload["name"] = product.Name
		payload["origin"] = product.Origin
		payload["type"] = product.Type
		payload["price"] = product.Price
		payload["roast"] = product.Roast
		payload["rating"] = product.Rating
	}
	if err := s.events.PublishProductEvent(action, payload); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", action, id, err)
	}
}
