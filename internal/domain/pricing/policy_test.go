package pricing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/catalog-service/internal/domain/pricing"
	"github.com/mutugading/catalog-service/internal/domain/shared"
)

func TestNew_RateBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		markup  float64
		wantErr bool
	}{
		{"zero is valid", 0, false},
		{"hundred is valid", 100, false},
		{"mid range", 42.5, false},
		{"just below zero", -0.01, true},
		{"just above hundred", 100.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pricing.New(1, tt.markup, 0, 0, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, pricing.ErrInvalidRateValue)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.markup, p.MarkupPercent())
		})
	}
}

func TestValidation_CarriesFieldDetails(t *testing.T) {
	_, err := pricing.New(1, 0, 0, 101, 0)
	require.Error(t, err)

	var domainErr *shared.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "category_pricing_policy_invalid_rate_value", domainErr.Code)
	assert.Equal(t, pricing.FieldDiscountPercent, domainErr.Details["field"])
	assert.Equal(t, "101", domainErr.Details["value"])
}

func TestSetters_ValidateEachRate(t *testing.T) {
	p, err := pricing.New(1, 10, 10, 10, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, p.SetCommissionPercent(-1), pricing.ErrInvalidRateValue)
	assert.ErrorIs(t, p.SetTaxRate(100.5), pricing.ErrInvalidRateValue)

	// failed setters leave the previous value intact
	assert.Equal(t, 10.0, p.CommissionPercent())
	assert.Equal(t, 10.0, p.TaxRate())

	require.NoError(t, p.SetDiscountPercent(100))
	assert.Equal(t, 100.0, p.DiscountPercent())
}
