package product

import (
	"regexp"
	"strings"
)

// SKU represents a validated stock keeping unit value object.
type SKU struct {
	value string
}

// skuPattern defines the valid SKU format.
var skuPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,63}$`)

// NewSKU creates a new validated SKU value object.
func NewSKU(sku string) (SKU, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return SKU{}, ErrEmptySKU
	}
	if !skuPattern.MatchString(sku) {
		return SKU{}, ErrInvalidSKUFormat
	}
	return SKU{value: sku}, nil
}

// String returns the string representation of the SKU.
func (s SKU) String() string {
	return s.value
}

// IsEmpty returns true if the SKU is empty.
func (s SKU) IsEmpty() bool {
	return s.value == ""
}

// Attribute is a named attribute value owned by a product. The attribute
// collection is only ever replaced wholesale, never diffed.
type Attribute struct {
	name  string
	value string
}

// NewAttribute creates a validated attribute value.
func NewAttribute(name, value string) (Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{}, ErrEmptyAttributeName
	}
	return Attribute{name: name, value: value}, nil
}

// Name returns the attribute name.
func (a Attribute) Name() string { return a.name }

// Value returns the attribute value.
func (a Attribute) Value() string { return a.value }
