package service

import (
	"testing"

	"storefront-service/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestValidateProductRequest(t *testing.T) {
	req := &ProductRequest{Name: "Tamales", Price: 7.99, Stock: 50}
	assert.NoError(t, validateProductRequest(req))

	req.Variants = []VariantInput{{Name: "Pollo", Stock: 25}}
	assert.NoError(t, validateProductRequest(req))
}

func TestValidateProductRequestRejectsEmptyName(t *testing.T) {
	err := validateProductRequest(&ProductRequest{Name: "   ", Price: 1})
	assert.True(t, apperr.IsValidation(err))
}

func TestValidateProductRequestRejectsNegativePrice(t *testing.T) {
	err := validateProductRequest(&ProductRequest{Name: "Jugo", Price: -0.01})
	assert.True(t, apperr.IsValidation(err))
}

func TestValidateProductRequestRejectsNegativeStock(t *testing.T) {
	err := validateProductRequest(&ProductRequest{Name: "Jugo", Price: 4.99, Stock: -1})
	assert.True(t, apperr.IsValidation(err))
}

func TestValidateProductRequestChecksVariants(t *testing.T) {
	req := &ProductRequest{
		Name:  "Jugo",
		Price: 4.99,
		Variants: []VariantInput{
			{Name: ""},
		},
	}
	assert.True(t, apperr.IsValidation(validateProductRequest(req)))

	req.Variants = []VariantInput{{Name: "Naranja", Stock: -5}}
	assert.True(t, apperr.IsValidation(validateProductRequest(req)))
}
