package upload

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
)

// GetQuery represents the get upload query.
type GetQuery struct {
	ID int64
}

// GetHandler handles the get upload query.
type GetHandler struct {
	repo    upload.Repository
	storage shared.ObjectStorage
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo upload.Repository, storage shared.ObjectStorage) *GetHandler {
	return &GetHandler{repo: repo, storage: storage}
}

// Handle executes the get upload query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*UploadDTO, error) {
	u, err := h.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(u, h.storage), nil
}
