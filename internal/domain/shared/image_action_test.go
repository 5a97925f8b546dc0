package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

func TestNormalizeImageAction(t *testing.T) {
	tests := []struct {
		tag  string
		want shared.ImageAction
		ok   bool
	}{
		{"create", shared.ImageActionCreate, true},
		{"add", shared.ImageActionCreate, true},
		{"new", shared.ImageActionCreate, true},
		{"update", shared.ImageActionUpdate, true},
		{"replace", shared.ImageActionUpdate, true},
		{"change", shared.ImageActionUpdate, true},
		{"pass", shared.ImageActionPass, true},
		{"keep", shared.ImageActionPass, true},
		{"skip", shared.ImageActionPass, true},
		{"delete", shared.ImageActionDelete, true},
		{"remove", shared.ImageActionDelete, true},
		{"del", shared.ImageActionDelete, true},
		{" KEEP ", shared.ImageActionPass, true},
		{"Create", shared.ImageActionCreate, true},
		{"drop", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := shared.NormalizeImageAction(tt.tag)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
