// Package product provides domain logic for catalog product management.
package product

import "github.com/mutugading/catalog-service/internal/domain/shared"

// Domain errors for product operations.
var (
	// ErrNotFound is returned when a product is not found.
	ErrNotFound = shared.NotFound("product_not_found", "product not found")

	// ErrAlreadyExists is returned when a product with the same SKU exists.
	ErrAlreadyExists = shared.Conflict("product_already_exists", "product with this sku already exists")

	// ErrNameTooShort is returned when the name has fewer than 2 trimmed characters.
	ErrNameTooShort = shared.Validation("product_name_too_short", "product name must be at least 2 characters")

	// ErrNameTooLong is returned when the name exceeds max length.
	ErrNameTooLong = shared.Validation("product_name_too_long", "product name must be at most 255 characters")

	// ErrEmptySKU is returned when the SKU is empty.
	ErrEmptySKU = shared.Validation("product_sku_empty", "product sku cannot be empty")

	// ErrInvalidSKUFormat is returned when the SKU format is invalid.
	ErrInvalidSKUFormat = shared.Validation("product_sku_invalid_format", "product sku must be uppercase alphanumeric with dashes or underscores, 2-64 chars")

	// ErrNegativePrice is returned when the price is below zero.
	ErrNegativePrice = shared.Validation("product_price_negative", "product price cannot be negative")

	// ErrEmptyAttributeName is returned when an attribute has no name.
	ErrEmptyAttributeName = shared.Validation("product_attribute_name_empty", "product attribute name cannot be empty")

	// ErrInvalidImage is returned when an image association is malformed.
	ErrInvalidImage = shared.Validation("product_image_invalid", "product image must reference an upload and carry a storage key")

	// ErrInvalidImageAction is returned when an image operation tag is unknown.
	ErrInvalidImageAction = shared.Validation("product_image_invalid_action", "image operation must be one of create, update, pass, delete")

	// ErrImageUploadNotFound is returned when an image references a missing upload.
	ErrImageUploadNotFound = shared.RelatedMissing("product_image_upload_not_found", "referenced upload does not exist")

	// ErrCategoryNotFound is returned when the referenced category does not exist.
	ErrCategoryNotFound = shared.RelatedMissing("product_category_not_found", "referenced category does not exist")

	// ErrManufacturerNotFound is returned when the referenced manufacturer does not exist.
	ErrManufacturerNotFound = shared.RelatedMissing("product_manufacturer_not_found", "referenced manufacturer does not exist")

	// ErrSupplierNotFound is returned when the referenced supplier does not exist.
	ErrSupplierNotFound = shared.RelatedMissing("product_supplier_not_found", "referenced supplier does not exist")
)
