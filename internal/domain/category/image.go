package category

// Image is a value object associating an upload record with the category.
// The ordering attribute drives display order; the key is the resolved object
// storage key the upload lives under.
type Image struct {
	uploadID int64
	ordering int
	key      string
}

// NewImage creates a validated image association.
func NewImage(uploadID int64, ordering int, key string) (Image, error) {
	if uploadID <= 0 || key == "" {
		return Image{}, ErrInvalidImage
	}
	return Image{uploadID: uploadID, ordering: ordering, key: key}, nil
}

// UploadID returns the referenced upload identifier.
func (i Image) UploadID() int64 { return i.uploadID }

// Ordering returns the display order.
func (i Image) Ordering() int { return i.ordering }

// Key returns the object storage key.
func (i Image) Key() string { return i.key }
