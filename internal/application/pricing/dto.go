// Package pricing provides application layer handlers for category
// pricing policy operations.
package pricing

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/pricing"
)

// PolicyDTO is the read shape returned by every command and query.
type PolicyDTO struct {
	ID                int64      `json:"id"`
	CategoryID        int64      `json:"category_id"`
	MarkupPercent     float64    `json:"markup_percent"`
	CommissionPercent float64    `json:"commission_percent"`
	DiscountPercent   float64    `json:"discount_percent"`
	TaxRate           float64    `json:"tax_rate"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// toDTO maps the aggregate to its read shape.
func toDTO(p *pricing.Policy) *PolicyDTO {
	return &PolicyDTO{
		ID:                p.ID(),
		CategoryID:        p.CategoryID(),
		MarkupPercent:     p.MarkupPercent(),
		CommissionPercent: p.CommissionPercent(),
		DiscountPercent:   p.DiscountPercent(),
		TaxRate:           p.TaxRate(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}
