package errs

import "errors"

// Storefront error taxonomy shared by the cart engine, checkout and handlers
var (
	// Local validation, rejected before any network round-trip
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrNoItemsSelected  = errors.New("no items selected")
	ErrEmptyCart        = errors.New("empty cart")

	// Remote collaborator errors
	ErrNetworkFailure   = errors.New("network failure")
	ErrSyncDivergence   = errors.New("cart sync divergence")
	ErrProductNotFound  = errors.New("product not found")
	ErrVoucherInvalid   = errors.New("voucher invalid")
	ErrVoucherNotFound  = errors.New("voucher not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenValidation    = errors.New("token validation failed")
	ErrTokenGeneration    = errors.New("token generation failed")

	// Client state storage
	ErrStateStoreFailed = errors.New("client state store operation failed")
)
