package shared

import (
	"context"

	"fahasa-storefront/internal/domain/auth"
	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound means the user has no server cart yet.
	ErrCartNotFound = errs.New("server cart not found")
	// ErrValidationUnavailable means the voucher validator is not deployed (404/501).
	ErrValidationUnavailable = errs.New("voucher validation unavailable")
)

type Catalog interface {
	GetProduct(ctx context.Context, productID string) (cart.Product, error)
}

// CartBackend has no update endpoint: callers change a quantity by removing then adding.
type CartBackend interface {
	GetCart(ctx context.Context, userID string) (*ServerCart, error)
	CreateCart(ctx context.Context, userID string) (*ServerCart, error)
	AddToCart(ctx context.Context, userID, productID string, qty int) error
	RemoveFromCart(ctx context.Context, userID, productID string) error
}

type VoucherBackend interface {
	GetVoucher(ctx context.Context, voucherID string) (*voucher.Voucher, error)
	ValidateVoucher(ctx context.Context, voucherID, userID string, subtotal decimal.Decimal) (VoucherValidation, error)
}

type LoyaltyBackend interface {
	GetUserRankInfo(ctx context.Context, userID string) (loyalty.RankInfo, error)
	ListTiers(ctx context.Context) ([]loyalty.Tier, error)
	CreditPoints(ctx context.Context, userID, orderID string, amount decimal.Decimal) error
}

type OrderBackend interface {
	CreateOrder(ctx context.Context, draft *order.Draft) (CreatedOrder, error)
	CreatePayment(ctx context.Context, req PaymentRequest) (CreatedPayment, error)
	GetOrder(ctx context.Context, orderID string) (OrderSummary, error)
	ConfirmDelivery(ctx context.Context, orderID string) error
}

type AuthBackend interface {
	Login(ctx context.Context, creds auth.Credentials) (*user.Account, error)
}

// CartStateStore is the durable cart namespace. Load returns nil, nil when nothing is stored.
type CartStateStore interface {
	LoadCart(ctx context.Context, sessionID string) (*StoredCart, error)
	SaveCart(ctx context.Context, sessionID string, state StoredCart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// AuthStateStore is the durable auth namespace. Load returns nil, nil when nothing is stored.
type AuthStateStore interface {
	LoadAuth(ctx context.Context, sessionID string) (*AuthState, error)
	SaveAuth(ctx context.Context, sessionID string, state AuthState) error
	DeleteAuth(ctx context.Context, sessionID string) error
}
