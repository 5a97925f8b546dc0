package manufacturer

import "context"

// Repository defines the interface for manufacturer persistence.
type Repository interface {
	Create(ctx context.Context, m *Manufacturer) error
	GetByID(ctx context.Context, id int64) (*Manufacturer, error)
	List(ctx context.Context, filter ListFilter) ([]*Manufacturer, int64, error)
	Update(ctx context.Context, m *Manufacturer) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ListFilter contains filtering options for listing manufacturers.
type ListFilter struct {
	Search   string
	Country  string
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
