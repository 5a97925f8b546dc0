// Package manufacturer provides domain logic for manufacturer management.
package manufacturer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// Domain errors for manufacturer operations.
var (
	ErrNotFound      = shared.NotFound("manufacturer_not_found", "manufacturer not found")
	ErrAlreadyExists = shared.Conflict("manufacturer_already_exists", "manufacturer with this name already exists")
	ErrNameTooShort  = shared.Validation("manufacturer_name_too_short", "manufacturer name must be at least 2 characters")
	ErrNameTooLong   = shared.Validation("manufacturer_name_too_long", "manufacturer name must be at most 255 characters")
)

// Manufacturer is the aggregate root for manufacturers.
type Manufacturer struct {
	id          int64
	name        string
	country     string
	description string
	createdAt   time.Time
	updatedAt   *time.Time
}

// New creates a new Manufacturer with validation.
func New(name, country, description string) (*Manufacturer, error) {
	m := &Manufacturer{createdAt: time.Now()}
	if err := m.SetName(name); err != nil {
		return nil, err
	}
	m.country = country
	m.description = description
	return m, nil
}

// Reconstruct rebuilds a Manufacturer from persistence data.
func Reconstruct(id int64, name, country, description string, createdAt time.Time, updatedAt *time.Time) *Manufacturer {
	return &Manufacturer{id: id, name: name, country: country, description: description, createdAt: createdAt, updatedAt: updatedAt}
}

// ID returns the unique identifier (zero until persisted).
func (m *Manufacturer) ID() int64 { return m.id }

// SetID assigns the persisted identity. Called by repositories only.
func (m *Manufacturer) SetID(id int64) { m.id = id }

// Name returns the display name.
func (m *Manufacturer) Name() string { return m.name }

// Country returns the country.
func (m *Manufacturer) Country() string { return m.country }

// Description returns the description.
func (m *Manufacturer) Description() string { return m.description }

// CreatedAt returns the creation timestamp.
func (m *Manufacturer) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last update timestamp.
func (m *Manufacturer) UpdatedAt() *time.Time { return m.updatedAt }

// SetName validates and sets the name.
func (m *Manufacturer) SetName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > 255 {
		return ErrNameTooLong
	}
	m.name = name
	m.touch()
	return nil
}

// SetCountry sets the country.
func (m *Manufacturer) SetCountry(country string) {
	m.country = country
	m.touch()
}

// SetDescription sets the description.
func (m *Manufacturer) SetDescription(description string) {
	m.description = description
	m.touch()
}

// Snapshot serializes the observable state for audit diffing.
func (m *Manufacturer) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.name,
		"country":     m.country,
		"description": m.description,
	}
}

func (m *Manufacturer) touch() {
	now := time.Now()
	m.updatedAt = &now
}
