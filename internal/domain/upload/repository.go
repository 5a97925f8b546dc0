package upload

import "context"

// Repository defines the interface for upload record persistence.
type Repository interface {
	// Create persists a new upload record and assigns the identity.
	Create(ctx context.Context, u *Upload) error

	// GetByID retrieves an upload record.
	GetByID(ctx context.Context, id int64) (*Upload, error)

	// List retrieves upload records with pagination.
	List(ctx context.Context, filter ListFilter) ([]*Upload, int64, error)

	// Delete removes an upload record.
	Delete(ctx context.Context, id int64) error
}

// ListFilter contains filtering options for listing uploads.
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
