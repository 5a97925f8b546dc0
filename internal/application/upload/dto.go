// Package upload provides application layer handlers for file upload
// operations. An upload owns its object-storage blob; catalog images
// reference uploads by identifier.
package upload

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/domain/upload"
)

// folder is the object-storage folder standalone uploads live under.
const folder = "uploads"

// UploadDTO is the read shape returned by every command and query.
type UploadDTO struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// toDTO maps the aggregate to its read shape, resolving the public URL.
func toDTO(u *upload.Upload, storage shared.ObjectStorage) *UploadDTO {
	return &UploadDTO{
		ID:          u.ID(),
		Filename:    u.Filename(),
		ContentType: u.ContentType(),
		Size:        u.Size(),
		URL:         storage.PublicURL(u.Key()),
		CreatedAt:   u.CreatedAt(),
	}
}
