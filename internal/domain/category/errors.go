// Package category provides domain logic for catalog category management.
package category

import "github.com/mutugading/catalog-service/internal/domain/shared"

// Domain errors for category operations.
var (
	// ErrNotFound is returned when a category is not found.
	ErrNotFound = shared.NotFound("category_not_found", "category not found")

	// ErrAlreadyExists is returned when a category with the same name exists.
	ErrAlreadyExists = shared.Conflict("category_already_exists", "category with this name already exists")

	// ErrNameTooShort is returned when the name has fewer than 2 trimmed characters.
	ErrNameTooShort = shared.Validation("category_name_too_short", "category name must be at least 2 characters")

	// ErrNameTooLong is returned when the name exceeds max length.
	ErrNameTooLong = shared.Validation("category_name_too_long", "category name must be at most 255 characters")

	// ErrInvalidImage is returned when an image association is malformed.
	ErrInvalidImage = shared.Validation("category_image_invalid", "category image must reference an upload and carry a storage key")

	// ErrInvalidImageAction is returned when an image operation tag is unknown.
	ErrInvalidImageAction = shared.Validation("category_image_invalid_action", "image operation must be one of create, update, pass, delete")

	// ErrImageUploadNotFound is returned when an image references a missing upload.
	ErrImageUploadNotFound = shared.RelatedMissing("category_image_upload_not_found", "referenced upload does not exist")
)
