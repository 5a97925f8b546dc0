package category

import "context"

// Repository defines the interface for category persistence.
// Defined in the domain layer, implemented in infrastructure.
type Repository interface {
	// Create persists a new category and assigns its identity.
	Create(ctx context.Context, c *Category) error

	// GetByID retrieves a category with its images.
	GetByID(ctx context.Context, id int64) (*Category, error)

	// List retrieves categories with filtering and pagination.
	List(ctx context.Context, filter ListFilter) ([]*Category, int64, error)

	// ListAll retrieves every category (for export).
	ListAll(ctx context.Context) ([]*Category, error)

	// Update persists changes to an existing category, rewriting the image
	// association rows to match the aggregate's collection.
	Update(ctx context.Context, c *Category) error

	// Delete removes a category; image association rows cascade.
	Delete(ctx context.Context, id int64) error

	// ExistsByID checks whether a category exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ListFilter contains filtering options for listing categories.
type ListFilter struct {
	// Search query (matches name and description).
	Search string

	// Pagination.
	Page     int
	PageSize int

	// Sorting.
	SortBy    string // "name", "created_at"
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
