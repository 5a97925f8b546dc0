package category

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is the aggregate root for catalog categories. It is never
// observable in an invalid state: every constructor and mutator validates
// before changing any field, and no method performs I/O.
type Category struct {
	id          int64
	name        string
	description string
	images      []Image
	createdAt   time.Time
	updatedAt   *time.Time
}

// New creates a new Category with validation. The identity stays zero until
// the repository persists the aggregate.
func New(name, description string, images []Image) (*Category, error) {
	c := &Category{createdAt: time.Now()}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	c.description = description
	c.ReplaceImages(images)
	return c, nil
}

// Reconstruct rebuilds a Category from persistence data.
func Reconstruct(id int64, name, description string, images []Image, createdAt time.Time, updatedAt *time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		images:      images,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the unique identifier (zero until persisted).
func (c *Category) ID() int64 { return c.id }

// SetID assigns the persisted identity. Called by repositories only.
func (c *Category) SetID(id int64) { c.id = id }

// Name returns the display name.
func (c *Category) Name() string { return c.name }

// Description returns the description.
func (c *Category) Description() string { return c.description }

// Images returns a copy of the image collection.
func (c *Category) Images() []Image {
	out := make([]Image, len(c.images))
	copy(out, c.images)
	return out
}

// CreatedAt returns the creation timestamp.
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last update timestamp.
func (c *Category) UpdatedAt() *time.Time { return c.updatedAt }

// SetName validates and sets the name. On error the previous name is kept.
func (c *Category) SetName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > 255 {
		return ErrNameTooLong
	}
	c.name = name
	c.touch()
	return nil
}

// SetDescription sets the description.
func (c *Category) SetDescription(description string) {
	c.description = description
	c.touch()
}

// ReplaceImages fully substitutes the image collection, ordered by the
// ordering attribute. It does not talk to storage.
func (c *Category) ReplaceImages(images []Image) {
	imgs := make([]Image, len(images))
	copy(imgs, images)
	sort.SliceStable(imgs, func(i, j int) bool { return imgs[i].ordering < imgs[j].ordering })
	c.images = imgs
	c.touch()
}

// ImageKeys returns the object storage keys of all images.
func (c *Category) ImageKeys() []string {
	keys := make([]string, 0, len(c.images))
	for _, img := range c.images {
		keys = append(keys, img.key)
	}
	return keys
}

// Snapshot serializes the observable state for audit diffing. Create, update
// and delete commands all snapshot through this one method so old and new
// states always share a shape.
func (c *Category) Snapshot() map[string]interface{} {
	images := make([]interface{}, 0, len(c.images))
	for _, img := range c.images {
		images = append(images, map[string]interface{}{
			"upload_id": img.uploadID,
			"ordering":  img.ordering,
			"key":       img.key,
		})
	}
	return map[string]interface{}{
		"name":        c.name,
		"description": c.description,
		"images":      images,
	}
}

func (c *Category) touch() {
	now := time.Now()
	c.updatedAt = &now
}
