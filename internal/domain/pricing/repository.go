package pricing

import "context"

// Repository defines the interface for pricing policy persistence. Create
// must translate the one-policy-per-category uniqueness violation into
// ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id int64) (*Policy, error)
	GetByCategoryID(ctx context.Context, categoryID int64) (*Policy, error)
	List(ctx context.Context, filter ListFilter) ([]*Policy, int64, error)
	Update(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id int64) error
}

// ListFilter contains filtering options for listing pricing policies.
type ListFilter struct {
	CategoryID *int64
	Page       int
	PageSize   int
}

// Validate normalizes the filter values.
func (f *ListFilter) Validate() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Offset returns the offset for pagination.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
