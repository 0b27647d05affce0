package models

import "time"

// Default values applied when a field is still absent after sanitization.
const (
	DefaultOrigin      = "Unknown"
	DefaultType        = "Unknown"
	DefaultRoast       = "Medium"
	DefaultDescription = "No description"
)

// Product represents a coffee product in the catalog.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name"`
	Origin      string    `json:"origin" bson:"origin"`
	Type        string    `json:"type" bson:"type"`
	Price       float64   `json:"price" bson:"price"`
	Roast       string    `json:"roast" bson:"roast"`
	Rating      float64   `json:"rating" bson:"rating"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductPatch is a sanitized partial product. A nil field means the
// field was absent from the request: it is left untouched on update
// and defaulted on create.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Origin      *string  `json:"origin,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Roast       *string  `json:"roast,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Fields returns the supplied fields keyed by their stored column
// names. The map drives partial updates in the repositories.
func (p *ProductPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Origin != nil {
		fields["origin"] = *p.Origin
	}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Roast != nil {
		fields["roast"] = *p.Roast
	}
	if p.Rating != nil {
		fields["rating"] = *p.Rating
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

// NewProduct builds a full product from a sanitized patch, applying
// the documented defaults for every field still absent. Defaulting
// happens exactly once, at creation.
func NewProduct(patch *ProductPatch) *Product {
	product := &Product{
		Origin:      DefaultOrigin,
		Type:        DefaultType,
		Roast:       DefaultRoast,
		Rating:      0,
		Description: DefaultDescription,
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Origin != nil {
		product.Origin = *patch.Origin
	}
	if patch.Type != nil {
		product.Type = *patch.Type
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Roast != nil {
		product.Roast = *patch.Roast
	}
	if patch.Rating != nil {
		product.Rating = *patch.Rating
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	return product
}
