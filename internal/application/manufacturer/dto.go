// Package manufacturer provides application layer handlers for
// manufacturer operations.
package manufacturer

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
)

// ManufacturerDTO is the read shape returned by every command and query.
type ManufacturerDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// toDTO maps the aggregate to its read shape.
func toDTO(m *manufacturer.Manufacturer) *ManufacturerDTO {
	return &ManufacturerDTO{
		ID:          m.ID(),
		Name:        m.Name(),
		Country:     m.Country(),
		Description: m.Description(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}
