package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/catalog-service/internal/domain/product"
)

func mustSKU(t *testing.T, s string) product.SKU {
	t.Helper()
	sku, err := product.NewSKU(s)
	require.NoError(t, err)
	return sku
}

func mustImage(t *testing.T, uploadID int64, isMain bool, position int) product.Image {
	t.Helper()
	img, err := product.NewImage(uploadID, isMain, position, "products/x.png")
	require.NoError(t, err)
	return img
}

func TestNewSKU(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"valid", "ABC-123", "ABC-123", nil},
		{"lowercase normalized", "abc-123", "ABC-123", nil},
		{"underscores", "SKU_001", "SKU_001", nil},
		{"empty", "", "", product.ErrEmptySKU},
		{"whitespace only", "  ", "", product.ErrEmptySKU},
		{"single char", "A", "", product.ErrInvalidSKUFormat},
		{"illegal chars", "AB C!", "", product.ErrInvalidSKUFormat},
		{"leading dash", "-ABC", "", product.ErrInvalidSKUFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku, err := product.NewSKU(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sku.String())
		})
	}
}

func TestNew_NameLengthCountsCharacters(t *testing.T) {
	_, err := product.New(mustSKU(t, "SKU-1"), "名", "", 1, nil, nil, 10, nil, nil)
	assert.ErrorIs(t, err, product.ErrNameTooShort)

	p, err := product.New(mustSKU(t, "SKU-1"), "名前", "", 1, nil, nil, 10, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "名前", p.Name())
}

func TestNew_PriceValidation(t *testing.T) {
	_, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, -0.01, nil, nil)
	assert.ErrorIs(t, err, product.ErrNegativePrice)

	p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Price())
}

func TestReplaceImages_MainImageNormalization(t *testing.T) {
	t.Run("none marked main promotes the first", func(t *testing.T) {
		p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, 10, nil, []product.Image{
			mustImage(t, 1, false, 0),
			mustImage(t, 2, false, 1),
		})
		require.NoError(t, err)

		images := p.Images()
		require.Len(t, images, 2)
		assert.True(t, images[0].IsMain())
		assert.False(t, images[1].IsMain())
	})

	t.Run("multiple marked main keeps only the first", func(t *testing.T) {
		p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, 10, nil, []product.Image{
			mustImage(t, 1, true, 0),
			mustImage(t, 2, true, 1),
			mustImage(t, 3, true, 2),
		})
		require.NoError(t, err)

		images := p.Images()
		require.Len(t, images, 3)
		assert.True(t, images[0].IsMain())
		assert.False(t, images[1].IsMain())
		assert.False(t, images[2].IsMain())

		main := p.MainImage()
		require.NotNil(t, main)
		assert.Equal(t, int64(1), main.UploadID())
	})

	t.Run("sorted by position before normalization", func(t *testing.T) {
		p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, 10, nil, []product.Image{
			mustImage(t, 1, false, 5),
			mustImage(t, 2, false, 1),
		})
		require.NoError(t, err)

		images := p.Images()
		assert.Equal(t, int64(2), images[0].UploadID())
		assert.True(t, images[0].IsMain())
	})

	t.Run("empty collection has no main", func(t *testing.T) {
		p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, nil, nil, 10, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, p.MainImage())
	})
}

func TestNewAttribute_RequiresName(t *testing.T) {
	_, err := product.NewAttribute("  ", "red")
	assert.ErrorIs(t, err, product.ErrEmptyAttributeName)

	a, err := product.NewAttribute("color", "red")
	require.NoError(t, err)
	assert.Equal(t, "color", a.Name())
	assert.Equal(t, "red", a.Value())
}

func TestSnapshot_OptionalReferences(t *testing.T) {
	manufacturerID := int64(42)
	p, err := product.New(mustSKU(t, "SKU-1"), "Widget", "", 1, &manufacturerID, nil, 10, nil, nil)
	require.NoError(t, err)

	snap := p.Snapshot()
	assert.Equal(t, int64(42), snap["manufacturer_id"])
	assert.Nil(t, snap["supplier_id"])
	assert.Equal(t, "SKU-1", snap["sku"])
}
