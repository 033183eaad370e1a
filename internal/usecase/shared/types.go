package shared

import (
	"time"

	"fahasa-storefront/internal/domain/cart"

	"github.com/shopspring/decimal"
)

// Snapshots exchanged with external collaborators. They carry only what the use cases read.

type ServerCartLine struct {
	ProductID string
	Quantity  int
}

type ServerCart struct {
	ID     string
	UserID string
	Lines  []ServerCartLine
}

type VoucherValidation struct {
	Valid   bool
	Message string
}

type CreatedOrder struct {
	ID          string
	TotalAmount decimal.Decimal
}

type OrderSummary struct {
	ID            string
	UserID        string
	Status        string
	PaymentMethod string
	TotalAmount   decimal.Decimal
}

type PaymentRequest struct {
	OrderID     string
	UserID      string
	Method      string
	VoucherCode string
	Amount      decimal.Decimal
}

type CreatedPayment struct {
	ID         string
	Status     string
	PaymentURL string
}

// StoredCart is the guest cart as persisted in the cart namespace.
type StoredCart struct {
	Items     []cart.LineItem
	Selected  []string
	UpdatedAt time.Time
}

// AuthState is the auth namespace record for a session.
type AuthState struct {
	UserID           string
	Email            string
	FullName         string
	Role             string
	RefreshTokenHash string
	IssuedAt         time.Time
}

// Session identifies the caller: a session id always, a user id once authenticated.
type Session struct {
	ID     string
	UserID string
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}
