// Package supplier provides application layer handlers for supplier
// operations.
package supplier

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/supplier"
)

// SupplierDTO is the read shape returned by every command and query.
type SupplierDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// toDTO maps the aggregate to its read shape.
func toDTO(s *supplier.Supplier) *SupplierDTO {
	return &SupplierDTO{
		ID:          s.ID(),
		Name:        s.Name(),
		Email:       s.Email(),
		Phone:       s.Phone(),
		Description: s.Description(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}
