package upload

import (
	"context"

	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
)

// ListQuery represents the list uploads query.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// ListResult represents the list uploads result.
type ListResult struct {
	Uploads  []*UploadDTO `json:"uploads"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ListHandler handles the list uploads query.
type ListHandler struct {
	repo    upload.Repository
	storage shared.ObjectStorage
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo upload.Repository, storage shared.ObjectStorage) *ListHandler {
	return &ListHandler{repo: repo, storage: storage}
}

// Handle executes the list uploads query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) (*ListResult, error) {
	filter := upload.ListFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	filter.Validate()

	uploads, total, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]*UploadDTO, 0, len(uploads))
	for _, u := range uploads {
		dtos = append(dtos, toDTO(u, h.storage))
	}

	return &ListResult{
		Uploads:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
