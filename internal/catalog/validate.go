package catalog

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"coffeehub/internal/models"
)

// ProductValidator checks a sanitized partial product against the
// catalog business rules.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a new ProductValidator.
func NewProductValidator() *ProductValidator {
	return &ProductValidator{
		validate: validator.New(),
	}
}

// Validate applies every rule independently and collects one
// human-readable message per violated rule, in field order. In update
// mode a field absent from the patch skips its rules entirely; a field
// that is present is validated either way.
func (v *ProductValidator) Validate(patch *models.ProductPatch, isUpdate bool) (bool, []string) {
	var errors []string

	if !isUpdate || patch.Name != nil {
		switch {
		case patch.Name == nil:
			errors = append(errors, "Name is required and must be a string")
		case strings.TrimSpace(*patch.Name) == "":
			errors = append(errors, "Name cannot be empty or only whitespace")
		case v.validate.Var(*patch.Name, "max=255") != nil:
			errors = append(errors, "Name cannot exceed 255 characters")
		}
	}

	if !isUpdate || patch.Price != nil {
		switch {
		case patch.Price == nil || math.IsNaN(*patch.Price) || math.IsInf(*patch.Price, 0):
			errors = append(errors, "Price must be a valid number")
		case v.validate.Var(*patch.Price, "gte=0") != nil:
			errors = append(errors, "Price cannot be negative")
		case v.validate.Var(*patch.Price, "lte=999999.99") != nil:
			errors = append(errors, "Price cannot exceed 999,999.99")
		}
	}

	if patch.Rating != nil {
		switch {
		case math.IsNaN(*patch.Rating) || math.IsInf(*patch.Rating, 0):
			errors = append(errors, "Rating must be a valid number")
		case v.validate.Var(*patch.Rating, "gte=0,lte=5") != nil:
			errors = append(errors, "Rating must be between 0 and 5")
		}
	}

	return len(errors) == 0, errors
}
