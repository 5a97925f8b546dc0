package product

import "context"

// Repository defines the interface for product persistence.
type Repository interface {
	// Create persists a new product with its attribute and image rows and
	// assigns the identity.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product with attributes and images.
	GetByID(ctx context.Context, id int64) (*Product, error)

	// List retrieves products with filtering and pagination.
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)

	// ListAll retrieves every product (for export).
	ListAll(ctx context.Context) ([]*Product, error)

	// Update persists changes to an existing product, rewriting attribute
	// and image rows to match the aggregate's collections.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product; attribute and image rows cascade.
	Delete(ctx context.Context, id int64) error

	// ExistsByID checks whether a product exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ListFilter contains filtering options for listing products.
type ListFilter struct {
	// Search query (matches sku, name, description).
	Search string

	// CategoryID filter.
	CategoryID *int64

	// Pagination.
	Page     int
	PageSize int

	// Sorting.
	SortBy    string // "sku", "name", "price", "created_at"
	SortOrder string // "asc", "desc"
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
	if f.SortBy == "" {
		f.SortBy = "name"
	}
	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
}

// Offset returns the offset for pagination.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
