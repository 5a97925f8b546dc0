package manufacturer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/catalog-service/internal/domain/manufacturer"
)

func TestNew_NameValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "Acme Industries", nil},
		{"too short", "A", manufacturer.ErrNameTooShort},
		{"single multi-byte rune too short", "名", manufacturer.ErrNameTooShort},
		{"two multi-byte runes", "名前", nil},
		{"whitespace only", "   ", manufacturer.ErrNameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manufacturer.New(tt.input, "", "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, m.Name())
		})
	}
}

func TestSetName_KeepsPreviousValueOnError(t *testing.T) {
	m, err := manufacturer.New("Acme Industries", "DE", "")
	require.NoError(t, err)

	err = m.SetName("X")
	assert.ErrorIs(t, err, manufacturer.ErrNameTooShort)
	assert.Equal(t, "Acme Industries", m.Name())
}
