package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"coffeehub/internal/catalog"
	"coffeehub/internal/repositories"
	"coffeehub/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service   *services.ProductService
	validator *catalog.ProductValidator
	env       string
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, env string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: catalog.NewProductValidator(),
		env:       env,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
	router.Get("/stats", h.HandleGetStats)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)

	// Sanitization echo endpoint, handy during development. Not
	// registered in production.
	if h.env != "production" {
		router.Post("/debug/products", h.HandleDebugProduct)
	}
}

// HandleHealth reports service and store status.
func (h *ProductHandler) HandleHealth(c *fiber.Ctx) error {
	database := "connected"
	if err := h.service.Ping(c.UserContext()); err != nil {
		log.Printf("Health check store ping failed: %v", err)
		database = "disconnected"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"database":    database,
		"environment": h.env,
	})
}

// HandleGetProducts retrieves all products. An empty catalog yields an
// empty array, not an error.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "getting all products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err, "getting product "+id)
	}
	return c.JSON(product)
}

// HandleCreateProduct sanitizes and validates the payload, then
// persists a new product with server-assigned id and timestamps.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sanitized := catalog.Sanitize(raw)
	valid, details := h.validator.Validate(sanitized, false)
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid product data",
			"details": details,
		})
	}

	product, err := h.service.CreateProduct(c.UserContext(), sanitized)
	if err != nil {
		return h.handleError(c, err, "creating product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct merges only the supplied fields into an existing
// product and returns the merged view.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sanitized := catalog.Sanitize(raw)
	valid, details := h.validator.Validate(sanitized, true)
	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid product data",
			"details": details,
		})
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, sanitized)
	if err != nil {
		return h.handleError(c, err, "updating product "+id)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "deleting product "+id)
	}
	return c.JSON(fiber.Map{
		"message":   "Product deleted successfully",
		"deletedId": id,
	})
}

// HandleGetStats returns aggregate statistics over the whole catalog.
func (h *ProductHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "computing stats")
	}
	return c.JSON(stats)
}

// HandleDebugProduct echoes the sanitization and validation outcome
// for a payload without persisting anything.
func (h *ProductHandler) HandleDebugProduct(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sanitized := catalog.Sanitize(raw)
	valid, details := h.validator.Validate(sanitized, false)
	return c.JSON(fiber.Map{
		"received":  raw,
		"sanitized": sanitized,
		"validation": fiber.Map{
			"valid":  valid,
			"errors": details,
		},
	})
}

// handleError maps repository errors to HTTP responses. Store failures
// become a generic 500; the detail is logged server-side and only
// echoed outside production.
func (h *ProductHandler) handleError(c *fiber.Ctx, err error, context string) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	log.Printf("Error %s: %v", context, err)
	response := fiber.Map{"error": "Internal server error"}
	if h.env != "production" {
		response["message"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(response)
}
