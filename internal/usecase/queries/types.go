package queries

import (
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/usecase/cartsync"

	"github.com/shopspring/decimal"
)

// CartView is the cart as shown to the shopper: lines, selection, a voucher-free quote of the
// selection and any notices raised since the last read.
type CartView struct {
	Cart    cart.Snapshot
	Tier    loyalty.Tier
	Quote   pricing.Quote
	Notices []cartsync.Notice
}

// LoyaltyView is the user's standing and what it takes to reach the next tier.
type LoyaltyView struct {
	Rank         string
	Points       int64
	Multiplier   decimal.Decimal
	ActiveTier   loyalty.Tier
	NextTier     *loyalty.Tier
	PointsToNext int64
	Tiers        []loyalty.Tier
}

// CurrentUserView is read from the session's auth namespace.
type CurrentUserView struct {
	ID       string
	Email    string
	FullName string
	Role     string
	IssuedAt time.Time
}
