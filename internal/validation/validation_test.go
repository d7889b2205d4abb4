package validation

import (
	"testing"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string   `json:"name" validate:"required"`
	MOQ    int      `json:"moq" validate:"gte=1"`
	Images []string `json:"images" validate:"dive,url"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Name: "pipe", MOQ: 1, Images: []string{"https://cdn/x.png"}}))

	err := v.Validate(&sample{MOQ: 0, Images: []string{"not a url"}})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "moq must be at least 1")
	assert.Contains(t, err.Error(), "images[0] must be a valid URL")
}
