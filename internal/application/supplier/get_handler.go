package supplier

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/supplier"
)

// GetQuery represents the get supplier query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the get supplier query.
type GetHandler struct {
	repo supplier.Repository
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo supplier.Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the get supplier query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*SupplierDTO, error) {
	s, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(s), nil
}
