package service

import "errors"

// Caller-distinguishable error conditions. Handlers map these onto HTTP
// status codes; everything else surfaces as a wrapped internal error.
var (
	ErrProductUnknown   = errors.New("product unknown")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidPayment   = errors.New("payment amount must be greater than zero")
	ErrInvalidStatus    = errors.New("invalid delivery status")
	ErrEmptyItems       = errors.New("at least one line item is required")
)
