package product

// Image is a value object associating an upload record with the product.
// Position gives the implicit display order; IsMain marks the primary image.
type Image struct {
	uploadID int64
	isMain   bool
	position int
	key      string
}

// NewImage creates a validated image association.
func NewImage(uploadID int64, isMain bool, position int, key string) (Image, error) {
	if uploadID <= 0 || key == "" {
		return Image{}, ErrInvalidImage
	}
	return Image{uploadID: uploadID, isMain: isMain, position: position, key: key}, nil
}

// UploadID returns the referenced upload identifier.
func (i Image) UploadID() int64 { return i.uploadID }

// IsMain reports whether this is the primary image.
func (i Image) IsMain() bool { return i.isMain }

// Position returns the implicit display order.
func (i Image) Position() int { return i.position }

// Key returns the object storage key.
func (i Image) Key() string { return i.key }
