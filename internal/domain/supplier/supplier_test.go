package supplier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/catalog-service/internal/domain/supplier"
)

func TestNew_EmailValidation(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "sales@acme.com", false},
		{"empty allowed", "", false},
		{"no at sign", "acme.com", true},
		{"no domain", "sales@", true},
		{"spaces", "sa les@acme.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := supplier.New("Acme Corp", tt.email, "", "")
			if tt.wantErr {
				assert.ErrorIs(t, err, supplier.ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, s.Email())
		})
	}
}

func TestNew_NameValidation(t *testing.T) {
	_, err := supplier.New("A", "", "", "")
	assert.ErrorIs(t, err, supplier.ErrNameTooShort)

	// length counts characters, not bytes
	_, err = supplier.New("名", "", "", "")
	assert.ErrorIs(t, err, supplier.ErrNameTooShort)

	s, err := supplier.New("名前", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "名前", s.Name())
}
