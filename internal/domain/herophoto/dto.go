package herophoto

import (
	"strconv"
	"strings"

	"github.com/portfolio/portfolio-api/internal/pkg/validator"
)

// CreateRequest for POST /api/hero-photos (multipart fields). Nil positions
// default to 50.
type CreateRequest struct {
	Alt       string
	PositionX *int
	PositionY *int
}

// UpdateRequest for PUT /api/hero-photos/{id}. Nil fields are left unchanged.
type UpdateRequest struct {
	Alt       *string
	PositionX *int
	PositionY *int
}

// ReorderRequest for PATCH /api/hero-photos/reorder
type ReorderRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// parsePositions reads positionX and positionY from raw form values.
// Absent or blank values stay nil.
func parsePositions(rawX, rawY *string) (x, y *int, errs map[string]string) {
	errs = map[string]string{}
	x = parsePosition("positionX", rawX, errs)
	y = parsePosition("positionY", rawY, errs)
	if len(errs) == 0 {
		errs = nil
	}
	return x, y, errs
}

func parsePosition(field string, raw *string, errs map[string]string) *int {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		errs[field] = "Value must be a whole number"
		return nil
	}
	if err := validator.ValidateVar(n, "position"); err != nil {
		errs[field] = "Value must be between 0 and 100"
		return nil
	}
	return &n
}
