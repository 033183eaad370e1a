package httperr

import (
	"net/http"

	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/commands"
	"fahasa-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, "", err, msg, detail)
}

func abort(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first match wins, so narrower marks come before the ones they may carry.
var mappings = []mapping{
	{errs.ErrInvalidQuantity, http.StatusUnprocessableEntity, "INVALID_QUANTITY", "Invalid quantity"},
	{errs.ErrProductNotInCart, http.StatusNotFound, "PRODUCT_NOT_IN_CART", "Product is not in the cart"},
	{errs.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"},
	{errs.ErrEmptyCart, http.StatusConflict, "EMPTY_CART", "Cart is empty"},
	{errs.ErrNoItemsSelected, http.StatusConflict, "NO_ITEMS_SELECTED", "No items selected"},
	{errs.ErrSyncDivergence, http.StatusConflict, "SYNC_DIVERGENCE", "Cart was out of sync and has been reloaded"},
	{errs.ErrVoucherNotFound, http.StatusNotFound, "VOUCHER_NOT_FOUND", "Voucher not found"},
	{errs.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found"},
	{order.ErrInvalidPaymentMethod, http.StatusBadRequest, "INVALID_PAYMENT_METHOD", "Invalid payment method"},
	{order.ErrMissingAddress, http.StatusBadRequest, "MISSING_ADDRESS", "Shipping address is required"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{commands.ErrAuthenticationFailed, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{commands.ErrRefreshTokenReused, http.StatusUnauthorized, "REFRESH_TOKEN_REUSED", "Session has been revoked, please log in again"},
	{queries.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{errs.ErrTokenValidation, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token"},
	{errs.ErrNotAuthenticated, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Authentication required"},
	{errs.ErrNetworkFailure, http.StatusBadGateway, "NETWORK_FAILURE", "Storefront backend is unavailable"},
	{errs.ErrStateStoreFailed, http.StatusServiceUnavailable, "STATE_STORE_FAILURE", "Session storage is unavailable"},
	{cartsync.ErrSessionClosed, http.StatusServiceUnavailable, "SESSION_CLOSED", "Session is shutting down, please retry"},
}

// Abort maps err through the storefront error taxonomy and aborts the request.
func Abort(c *gin.Context, err error) {
	// voucher rejections carry their own user-facing reason
	if errs.Is(err, errs.ErrVoucherInvalid) {
		abort(c, http.StatusUnprocessableEntity, "VOUCHER_INVALID", err, errs.Reason(err, voucher.GenericReason), nil)
		return
	}
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			abort(c, m.status, m.code, err, m.message, nil)
			return
		}
	}
	abort(c, http.StatusInternalServerError, "INTERNAL", err, "Internal server error", nil)
}

// StatusFor returns the status Abort would use for err.
func StatusFor(err error) int {
	if errs.Is(err, errs.ErrVoucherInvalid) {
		return http.StatusUnprocessableEntity
	}
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
