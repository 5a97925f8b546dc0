package product

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Product is the aggregate root for catalog products. Validation runs at
// construction and at every mutating method; no method performs I/O.
//
// Invariant: whenever the image collection is non-empty, exactly one image
// has IsMain set. ReplaceImages re-normalizes after every substitution.
type Product struct {
	id             int64
	sku            SKU
	name           string
	description    string
	categoryID     int64
	manufacturerID *int64
	supplierID     *int64
	price          float64
	attributes     []Attribute
	images         []Image
	createdAt      time.Time
	updatedAt      *time.Time
}

// New creates a new Product with validation. Identity stays zero until the
// repository persists the aggregate.
func New(sku SKU, name, description string, categoryID int64, manufacturerID, supplierID *int64, price float64, attributes []Attribute, images []Image) (*Product, error) {
	p := &Product{
		sku:            sku,
		categoryID:     categoryID,
		manufacturerID: manufacturerID,
		supplierID:     supplierID,
		createdAt:      time.Now(),
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	p.description = description
	p.ReplaceAttributes(attributes)
	p.ReplaceImages(images)
	return p, nil
}

// Reconstruct rebuilds a Product from persistence data.
func Reconstruct(id int64, sku SKU, name, description string, categoryID int64, manufacturerID, supplierID *int64, price float64, attributes []Attribute, images []Image, createdAt time.Time, updatedAt *time.Time) *Product {
	return &Product{
		id:             id,
		sku:            sku,
		name:           name,
		description:    description,
		categoryID:     categoryID,
		manufacturerID: manufacturerID,
		supplierID:     supplierID,
		price:          price,
		attributes:     attributes,
		images:         images,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ID returns the unique identifier (zero until persisted).
func (p *Product) ID() int64 { return p.id }

// SetID assigns the persisted identity. Called by repositories only.
func (p *Product) SetID(id int64) { p.id = id }

// SKU returns the stock keeping unit.
func (p *Product) SKU() SKU { return p.sku }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// Description returns the description.
func (p *Product) Description() string { return p.description }

// CategoryID returns the owning category identifier.
func (p *Product) CategoryID() int64 { return p.categoryID }

// ManufacturerID returns the optional manufacturer identifier.
func (p *Product) ManufacturerID() *int64 { return p.manufacturerID }

// SupplierID returns the optional supplier identifier.
func (p *Product) SupplierID() *int64 { return p.supplierID }

// Price returns the price.
func (p *Product) Price() float64 { return p.price }

// Attributes returns a copy of the attribute collection.
func (p *Product) Attributes() []Attribute {
	out := make([]Attribute, len(p.attributes))
	copy(out, p.attributes)
	return out
}

// Images returns a copy of the image collection.
func (p *Product) Images() []Image {
	out := make([]Image, len(p.images))
	copy(out, p.images)
	return out
}

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update timestamp.
func (p *Product) UpdatedAt() *time.Time { return p.updatedAt }

// SetName validates and sets the name. On error the previous name is kept.
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > 255 {
		return ErrNameTooLong
	}
	p.name = name
	p.touch()
	return nil
}

// SetDescription sets the description.
func (p *Product) SetDescription(description string) {
	p.description = description
	p.touch()
}

// SetPrice validates and sets the price.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.price = price
	p.touch()
	return nil
}

// SetCategoryID sets the owning category. Existence of the category is a
// command-level concern, not an aggregate invariant.
func (p *Product) SetCategoryID(id int64) {
	p.categoryID = id
	p.touch()
}

// SetManufacturerID sets the optional manufacturer reference.
func (p *Product) SetManufacturerID(id *int64) {
	p.manufacturerID = id
	p.touch()
}

// SetSupplierID sets the optional supplier reference.
func (p *Product) SetSupplierID(id *int64) {
	p.supplierID = id
	p.touch()
}

// ReplaceAttributes fully substitutes the attribute collection.
func (p *Product) ReplaceAttributes(attributes []Attribute) {
	attrs := make([]Attribute, len(attributes))
	copy(attrs, attributes)
	p.attributes = attrs
	p.touch()
}

// ReplaceImages fully substitutes the image collection and re-applies the
// main-image invariant: if none is marked main the first becomes main; if
// several are marked only the first encountered stays main.
func (p *Product) ReplaceImages(images []Image) {
	imgs := make([]Image, len(images))
	copy(imgs, images)
	sort.SliceStable(imgs, func(i, j int) bool { return imgs[i].position < imgs[j].position })

	mainSeen := false
	for i := range imgs {
		if imgs[i].isMain {
			if mainSeen {
				imgs[i].isMain = false
			}
			mainSeen = true
		}
	}
	if !mainSeen && len(imgs) > 0 {
		imgs[0].isMain = true
	}

	p.images = imgs
	p.touch()
}

// MainImage returns the primary image, if any.
func (p *Product) MainImage() *Image {
	for i := range p.images {
		if p.images[i].isMain {
			img := p.images[i]
			return &img
		}
	}
	return nil
}

// ImageKeys returns the object storage keys of all images.
func (p *Product) ImageKeys() []string {
	keys := make([]string, 0, len(p.images))
	for _, img := range p.images {
		keys = append(keys, img.key)
	}
	return keys
}

// Snapshot serializes the observable state for audit diffing.
func (p *Product) Snapshot() map[string]interface{} {
	attrs := make([]interface{}, 0, len(p.attributes))
	for _, a := range p.attributes {
		attrs = append(attrs, map[string]interface{}{"name": a.name, "value": a.value})
	}
	images := make([]interface{}, 0, len(p.images))
	for _, img := range p.images {
		images = append(images, map[string]interface{}{
			"upload_id": img.uploadID,
			"is_main":   img.isMain,
			"position":  img.position,
			"key":       img.key,
		})
	}
	snap := map[string]interface{}{
		"sku":         p.sku.String(),
		"name":        p.name,
		"description": p.description,
		"category_id": p.categoryID,
		"price":       p.price,
		"attributes":  attrs,
		"images":      images,
	}
	if p.manufacturerID != nil {
		snap["manufacturer_id"] = *p.manufacturerID
	} else {
		snap["manufacturer_id"] = nil
	}
	if p.supplierID != nil {
		snap["supplier_id"] = *p.supplierID
	} else {
		snap["supplier_id"] = nil
	}
	return snap
}

func (p *Product) touch() {
	now := time.Now()
	p.updatedAt = &now
}
