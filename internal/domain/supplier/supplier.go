// Package supplier provides domain logic for supplier management.
package supplier

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// Domain errors for supplier operations.
var (
	ErrNotFound      = shared.NotFound("supplier_not_found", "supplier not found")
	ErrAlreadyExists = shared.Conflict("supplier_already_exists", "supplier with this name already exists")
	ErrNameTooShort  = shared.Validation("supplier_name_too_short", "supplier name must be at least 2 characters")
	ErrNameTooLong   = shared.Validation("supplier_name_too_long", "supplier name must be at most 255 characters")
	ErrInvalidEmail  = shared.Validation("supplier_email_invalid", "supplier email is not a valid address")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Supplier is the aggregate root for suppliers.
type Supplier struct {
	id          int64
	name        string
	email       string
	phone       string
	description string
	createdAt   time.Time
	updatedAt   *time.Time
}

// New creates a new Supplier with validation.
func New(name, email, phone, description string) (*Supplier, error) {
	s := &Supplier{createdAt: time.Now()}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if err := s.SetEmail(email); err != nil {
		return nil, err
	}
	s.phone = phone
	s.description = description
	return s, nil
}

// Reconstruct rebuilds a Supplier from persistence data.
func Reconstruct(id int64, name, email, phone, description string, createdAt time.Time, updatedAt *time.Time) *Supplier {
	return &Supplier{id: id, name: name, email: email, phone: phone, description: description, createdAt: createdAt, updatedAt: updatedAt}
}

// ID returns the unique identifier (zero until persisted).
func (s *Supplier) ID() int64 { return s.id }

// SetID assigns the persisted identity. Called by repositories only.
func (s *Supplier) SetID(id int64) { s.id = id }

// Name returns the display name.
func (s *Supplier) Name() string { return s.name }

// Email returns the contact email.
func (s *Supplier) Email() string { return s.email }

// Phone returns the contact phone.
func (s *Supplier) Phone() string { return s.phone }

// Description returns the description.
func (s *Supplier) Description() string { return s.description }

// CreatedAt returns the creation timestamp.
func (s *Supplier) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update timestamp.
func (s *Supplier) UpdatedAt() *time.Time { return s.updatedAt }

// SetName validates and sets the name.
func (s *Supplier) SetName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(name) > 255 {
		return ErrNameTooLong
	}
	s.name = name
	s.touch()
	return nil
}

// SetEmail validates and sets the contact email. Empty is allowed.
func (s *Supplier) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	s.email = email
	s.touch()
	return nil
}

// SetPhone sets the contact phone.
func (s *Supplier) SetPhone(phone string) {
	s.phone = phone
	s.touch()
}

// SetDescription sets the description.
func (s *Supplier) SetDescription(description string) {
	s.description = description
	s.touch()
}

// Snapshot serializes the observable state for audit diffing.
func (s *Supplier) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"name":        s.name,
		"email":       s.email,
		"phone":       s.phone,
		"description": s.description,
	}
}

func (s *Supplier) touch() {
	now := time.Now()
	s.updatedAt = &now
}
