// Package upload provides domain logic for file upload records. An upload
// owns exactly one object-storage blob; catalog images reference uploads by
// identifier and never own blobs themselves.
package upload

import (
	"strings"
	"time"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// Domain errors for upload operations.
var (
	ErrNotFound      = shared.NotFound("upload_not_found", "upload not found")
	ErrEmptyFilename = shared.Validation("upload_filename_empty", "upload filename cannot be empty")
	ErrEmptyKey      = shared.Validation("upload_key_empty", "upload storage key cannot be empty")
	ErrEmptyContent  = shared.Validation("upload_content_empty", "upload content cannot be empty")

	// ErrInUse is returned when deleting an upload still referenced by an image.
	ErrInUse = shared.Conflict("upload_in_use", "upload is referenced by a catalog image")
)

// Upload is the aggregate root for one uploaded file.
type Upload struct {
	id          int64
	filename    string
	key         string
	contentType string
	size        int64
	createdAt   time.Time
}

// New creates a new Upload with validation.
func New(filename, key, contentType string, size int64) (*Upload, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	if key == "" {
		return nil, ErrEmptyKey
	}
	if size <= 0 {
		return nil, ErrEmptyContent
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Upload{
		filename:    filename,
		key:         key,
		contentType: contentType,
		size:        size,
		createdAt:   time.Now(),
	}, nil
}

// Reconstruct rebuilds an Upload from persistence data.
func Reconstruct(id int64, filename, key, contentType string, size int64, createdAt time.Time) *Upload {
	return &Upload{id: id, filename: filename, key: key, contentType: contentType, size: size, createdAt: createdAt}
}

// ID returns the unique identifier (zero until persisted).
func (u *Upload) ID() int64 { return u.id }

// SetID assigns the persisted identity. Called by repositories only.
func (u *Upload) SetID(id int64) { u.id = id }

// Filename returns the original filename.
func (u *Upload) Filename() string { return u.filename }

// Key returns the object storage key.
func (u *Upload) Key() string { return u.key }

// ContentType returns the MIME type.
func (u *Upload) ContentType() string { return u.contentType }

// Size returns the blob size in bytes.
func (u *Upload) Size() int64 { return u.size }

// CreatedAt returns the creation timestamp.
func (u *Upload) CreatedAt() time.Time { return u.createdAt }

// Snapshot serializes the observable state for audit entries.
func (u *Upload) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"filename":     u.filename,
		"key":          u.key,
		"content_type": u.contentType,
		"size":         u.size,
	}
}
