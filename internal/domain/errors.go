package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrOrderNotFound    = errors.New("order not found")
)
