// Package pricing provides domain logic for per-category pricing policies.
package pricing

import (
	"strconv"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// Domain errors for pricing policy operations.
var (
	ErrNotFound = shared.NotFound("category_pricing_policy_not_found", "pricing policy not found")

	// ErrAlreadyExists is returned when the category already has a policy.
	ErrAlreadyExists = shared.Conflict("category_pricing_policy_already_exists", "pricing policy for this category already exists")

	// ErrInvalidRateValue is returned when a percentage rate falls outside [0, 100].
	ErrInvalidRateValue = shared.Validation("category_pricing_policy_invalid_rate_value", "rate must be between 0 and 100")

	// ErrCategoryNotFound is returned when the referenced category does not exist.
	ErrCategoryNotFound = shared.RelatedMissing("category_pricing_policy_category_not_found", "referenced category does not exist")
)

// Rate field names used in validation details.
const (
	FieldMarkupPercent     = "markup_percent"
	FieldCommissionPercent = "commission_percent"
	FieldDiscountPercent   = "discount_percent"
	FieldTaxRate           = "tax_rate"
)

// validateRate checks a percentage rate for the boundary-inclusive [0, 100]
// range and returns a detail-carrying validation error on violation.
func validateRate(field string, value float64) error {
	if value < 0 || value > 100 {
		return ErrInvalidRateValue.WithDetails(map[string]string{
			"field":  field,
			"value":  strconv.FormatFloat(value, 'f', -1, 64),
			"reason": "rate must be between 0 and 100 inclusive",
		})
	}
	return nil
}

// Policy is the aggregate root for a category's pricing policy. Exactly one
// policy may exist per category; the repository enforces uniqueness.
type Policy struct {
	id                int64
	categoryID        int64
	markupPercent     float64
	commissionPercent float64
	discountPercent   float64
	taxRate           float64
	createdAt         time.Time
	updatedAt         *time.Time
}

// New creates a new Policy with validation.
func New(categoryID int64, markupPercent, commissionPercent, discountPercent, taxRate float64) (*Policy, error) {
	p := &Policy{categoryID: categoryID, createdAt: time.Now()}
	if err := p.SetMarkupPercent(markupPercent); err != nil {
		return nil, err
	}
	if err := p.SetCommissionPercent(commissionPercent); err != nil {
		return nil, err
	}
	if err := p.SetDiscountPercent(discountPercent); err != nil {
		return nil, err
	}
	if err := p.SetTaxRate(taxRate); err != nil {
		return nil, err
	}
	return p, nil
}

// Reconstruct rebuilds a Policy from persistence data.
func Reconstruct(id, categoryID int64, markupPercent, commissionPercent, discountPercent, taxRate float64, createdAt time.Time, updatedAt *time.Time) *Policy {
	return &Policy{
		id:                id,
		categoryID:        categoryID,
		markupPercent:     markupPercent,
		commissionPercent: commissionPercent,
		discountPercent:   discountPercent,
		taxRate:           taxRate,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ID returns the unique identifier (zero until persisted).
func (p *Policy) ID() int64 { return p.id }

// SetID assigns the persisted identity. Called by repositories only.
func (p *Policy) SetID(id int64) { p.id = id }

// CategoryID returns the owning category identifier.
func (p *Policy) CategoryID() int64 { return p.categoryID }

// MarkupPercent returns the markup rate.
func (p *Policy) MarkupPercent() float64 { return p.markupPercent }

// CommissionPercent returns the commission rate.
func (p *Policy) CommissionPercent() float64 { return p.commissionPercent }

// DiscountPercent returns the discount rate.
func (p *Policy) DiscountPercent() float64 { return p.discountPercent }

// TaxRate returns the tax rate.
func (p *Policy) TaxRate() float64 { return p.taxRate }

// CreatedAt returns the creation timestamp.
func (p *Policy) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update timestamp.
func (p *Policy) UpdatedAt() *time.Time { return p.updatedAt }

// SetMarkupPercent validates and sets the markup rate.
func (p *Policy) SetMarkupPercent(v float64) error {
	if err := validateRate(FieldMarkupPercent, v); err != nil {
		return err
	}
	p.markupPercent = v
	p.touch()
	return nil
}

// SetCommissionPercent validates and sets the commission rate.
func (p *Policy) SetCommissionPercent(v float64) error {
	if err := validateRate(FieldCommissionPercent, v); err != nil {
		return err
	}
	p.commissionPercent = v
	p.touch()
	return nil
}

// SetDiscountPercent validates and sets the discount rate.
func (p *Policy) SetDiscountPercent(v float64) error {
	if err := validateRate(FieldDiscountPercent, v); err != nil {
		return err
	}
	p.discountPercent = v
	p.touch()
	return nil
}

// SetTaxRate validates and sets the tax rate.
func (p *Policy) SetTaxRate(v float64) error {
	if err := validateRate(FieldTaxRate, v); err != nil {
		return err
	}
	p.taxRate = v
	p.touch()
	return nil
}

// Snapshot serializes the observable state for audit diffing.
func (p *Policy) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"category_id":        p.categoryID,
		"markup_percent":     p.markupPercent,
		"commission_percent": p.commissionPercent,
		"discount_percent":   p.discountPercent,
		"tax_rate":           p.taxRate,
	}
}

func (p *Policy) touch() {
	now := time.Now()
	p.updatedAt = &now
}
