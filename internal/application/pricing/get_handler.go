package pricing

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/pricing"
)

// GetQuery represents the get pricing policy query. When CategoryID is
// set the policy is looked up by its owning category instead of its id.
type GetQuery struct {
	ID         int64
	CategoryID *int64
}

// GetHandler handles the get pricing policy query.
type GetHandler struct {
	repo pricing.Repository
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo pricing.Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the get pricing policy query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*PolicyDTO, error) {
	var (
		p   *pricing.Policy
		err error
	)
	if query.CategoryID != nil {
		p, err = h.repo.GetByCategoryID(ctx, *query.CategoryID)
	} else {
		p, err = h.repo.GetByID(ctx, query.ID)
	}
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}
