// Package product provides application layer handlers for product
// operations: create/update/delete commands with attribute and image
// reconciliation, audit, and event emission, plus get/list/export queries.
package product

import (
	"time"

	"github.com/mutugading/catalog-service/internal/domain/product"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// imageFolder is the object-storage folder product images live under.
const imageFolder = "products"

// ImageDTO is the read shape of one product image.
type ImageDTO struct {
	UploadID int64  `json:"upload_id"`
	IsMain   bool   `json:"is_main"`
	Position int    `json:"position"`
	URL      string `json:"url"`
}

// AttributeDTO is the read shape of one product attribute.
type AttributeDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDTO is the read shape returned by every command and query.
type ProductDTO struct {
	ID             int64          `json:"id"`
	SKU            string         `json:"sku"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	CategoryID     int64          `json:"category_id"`
	ManufacturerID *int64         `json:"manufacturer_id,omitempty"`
	SupplierID     *int64         `json:"supplier_id,omitempty"`
	Price          float64        `json:"price"`
	Attributes     []AttributeDTO `json:"attributes"`
	Images         []ImageDTO     `json:"images"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

// AttributeInput is one named attribute value in a command. The attribute
// collection is always replaced wholesale.
type AttributeInput struct {
	Name  string
	Value string
}

// ImageInput describes one image attached to a create command: either a
// reference to an existing upload record (UploadID) or raw bytes to store
// first (Data + Filename + ContentType).
type ImageInput struct {
	UploadID    int64
	Data        []byte
	Filename    string
	ContentType string
	IsMain      bool
	Position    int
}

// ImageOp is one tagged image operation in an update command. Action
// accepts the canonical create|update|pass|delete tags plus their legacy
// aliases.
type ImageOp struct {
	Action      string
	UploadID    int64
	Data        []byte
	Filename    string
	ContentType string
	IsMain      bool
	Position    int
}

// toDTO maps the aggregate to its read shape, resolving public URLs.
func toDTO(p *product.Product, storage shared.ObjectStorage) *ProductDTO {
	attributes := make([]AttributeDTO, 0, len(p.Attributes()))
	for _, a := range p.Attributes() {
		attributes = append(attributes, AttributeDTO{Name: a.Name(), Value: a.Value()})
	}
	images := make([]ImageDTO, 0, len(p.Images()))
	for _, img := range p.Images() {
		images = append(images, ImageDTO{
			UploadID: img.UploadID(),
			IsMain:   img.IsMain(),
			Position: img.Position(),
			URL:      storage.PublicURL(img.Key()),
		})
	}
	return &ProductDTO{
		ID:             p.ID(),
		SKU:            p.SKU().String(),
		Name:           p.Name(),
		Description:    p.Description(),
		CategoryID:     p.CategoryID(),
		ManufacturerID: p.ManufacturerID(),
		SupplierID:     p.SupplierID(),
		Price:          p.Price(),
		Attributes:     attributes,
		Images:         images,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

// toAttributes validates and converts attribute inputs.
func toAttributes(inputs []AttributeInput) ([]product.Attribute, error) {
	attrs := make([]product.Attribute, 0, len(inputs))
	for _, in := range inputs {
		a, err := product.NewAttribute(in.Name, in.Value)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}
