package manufacturer

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
)

// GetQuery represents the get manufacturer query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the get manufacturer query.
type GetHandler struct {
	repo manufacturer.Repository
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo manufacturer.Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the get manufacturer query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*ManufacturerDTO, error) {
	m, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(m), nil
}
