package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"coffeehub/internal/models"
)

// Sanitize normalizes a raw request payload into a typed partial
// product. Text fields are coerced to strings and trimmed, price and
// rating are coerced to numbers (falling back to 0 when the value is
// not numeric), and fields absent from the payload are left nil.
// Sanitize never judges validity; that is the validator's job.
func Sanitize(raw map[string]interface{}) *models.ProductPatch {
	patch := &models.ProductPatch{}

	if value, ok := raw["name"]; ok {
		name := strings.TrimSpace(coerceString(value))
		patch.Name = &name
	}

	if value, ok := raw["origin"]; ok {
		origin := strings.TrimSpace(coerceString(value))
		patch.Origin = &origin
	}

	if value, ok := raw["type"]; ok {
		productType := strings.TrimSpace(coerceString(value))
		patch.Type = &productType
	}

	if value, ok := raw["price"]; ok && value != nil && value != "" {
		price := coerceNumber(value)
		patch.Price = &price
	}

	if value, ok := raw["roast"]; ok {
		roast := strings.TrimSpace(coerceString(value))
		patch.Roast = &roast
	}

	if value, ok := raw["rating"]; ok && value != nil && value != "" {
		rating := coerceNumber(value)
		patch.Rating = &rating
	}

	if value, ok := raw["description"]; ok {
		description := models.DefaultDescription
		if !isFalsy(value) {
			description = strings.TrimSpace(coerceString(value))
		}
		patch.Description = &description
	}

	return patch
}

// coerceString converts an arbitrary JSON value to its text form.
func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceNumber converts a text-or-number value to a float64. Anything
// that does not parse to a finite number becomes 0; this is a silent
// fallback, not an error.
func coerceNumber(value interface{}) float64 {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case int:
		number = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		number = parsed
	default:
		return 0
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0
	}
	return number
}

// isFalsy reports whether a JSON value is empty in the loose sense
// used for the description default (nil, empty string, false, or 0).
func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	default:
		return false
	}
}
