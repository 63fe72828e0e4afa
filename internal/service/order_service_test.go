package service

import (
	"testing"

	"storefront-service/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		CustomerName:  "Maria",
		CustomerPhone: "5491112345678",
		Total:         15.98,
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2, UnitPrice: 7.99},
		},
	}
}

func TestValidateOrderRequestAccepts(t *testing.T) {
	assert.NoError(t, validateOrderRequest(validRequest()))
}

func TestValidateOrderRequestRequiredFields(t *testing.T) {
	req := validRequest()
	req.CustomerName = "  "
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))

	req = validRequest()
	req.CustomerPhone = ""
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))

	req = validRequest()
	req.Items = nil
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))
}

func TestValidateOrderRequestTotalMustMatchItems(t *testing.T) {
	req := validRequest()
	req.Total = 20.00
	err := validateOrderRequest(req)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "does not match")
}

func TestValidateOrderRequestMultipleItems(t *testing.T) {
	req := validRequest()
	req.Items = []OrderItemRequest{
		{ProductID: 1, Quantity: 2, UnitPrice: 7.99},
		{ProductID: 2, Quantity: 1, UnitPrice: 4.99},
	}
	req.Total = 20.97
	assert.NoError(t, validateOrderRequest(req))
}

func TestValidateOrderRequestPositiveTotal(t *testing.T) {
	req := validRequest()
	req.Total = 0
	req.Items[0].UnitPrice = 0
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))
}

func TestValidateOrderRequestQuantityAtLeastOne(t *testing.T) {
	req := validRequest()
	req.Items[0].Quantity = 0
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))

	req.Items[0].Quantity = -2
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))
}

func TestValidateOrderRequestNegativePrice(t *testing.T) {
	req := validRequest()
	req.Items[0].UnitPrice = -1
	req.Total = -2
	assert.True(t, apperr.IsValidation(validateOrderRequest(req)))
}
