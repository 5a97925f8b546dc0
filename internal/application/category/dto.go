// Package category provides application layer handlers for category
// operations: create/update/delete commands with image reconciliation,
// audit, and event emission, plus get/list/export queries.
package category

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/category"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// imageFolder is the object-storage folder category images live under.
const imageFolder = "categories"

// ImageDTO is the read shape of one category image.
type ImageDTO struct {
	UploadID int64  `json:"upload_id"`
	Ordering int    `json:"ordering"`
	URL      string `json:"url"`
}

// CategoryDTO is the read shape returned by every command and query.
// Commands never expose the aggregate itself.
type CategoryDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Images      []ImageDTO `json:"images"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ImageInput describes one image attached to a create command: either a
// reference to an existing upload record (UploadID) or raw bytes to store
// first (Data + Filename + ContentType).
type ImageInput struct {
	UploadID    int64
	Data        []byte
	Filename    string
	ContentType string
	Ordering    int
}

// ImageOp is one tagged image operation in an update command. Action
// accepts the canonical create|update|pass|delete tags plus their legacy
// aliases. UploadID targets an existing image for pass and update; create
// takes either raw bytes or an upload reference.
type ImageOp struct {
	Action      string
	UploadID    int64
	Data        []byte
	Filename    string
	ContentType string
	Ordering    int
}

// toDTO maps the aggregate to its read shape, resolving public URLs.
func toDTO(c *category.Category, storage shared.ObjectStorage) *CategoryDTO {
	images := make([]ImageDTO, 0, len(c.Images()))
	for _, img := range c.Images() {
		images = append(images, ImageDTO{
			UploadID: img.UploadID(),
			Ordering: img.Ordering(),
			URL:      storage.PublicURL(img.Key()),
		})
	}
	return &CategoryDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Images:      images,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
