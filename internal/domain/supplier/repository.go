package supplier

import "context"

// Repository defines the interface for supplier persistence.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context, filter ListFilter) ([]*Supplier, int64, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ListFilter contains filtering options for listing suppliers.
type ListFilter struct {
	Search   string
	Page     int
	PageSize int
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
