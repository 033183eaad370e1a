package order

import (
	"errors"
	"strings"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart            = errs.ErrEmptyCart
	ErrNoItemsSelected      = errs.ErrNoItemsSelected
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingAddress       = errors.New("shipping address is required")
)

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "COD"
	PaymentVNPay        PaymentMethod = "VNPAY"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case PaymentCOD, PaymentVNPay, PaymentBankTransfer:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// CreditsPointsOnPayment is false for cash on delivery, where points wait for delivery confirmation.
func (m PaymentMethod) CreditsPointsOnPayment() bool {
	return m != PaymentCOD
}

type ShippingAddress struct {
	Recipient string
	Phone     string
	Line      string
}

func (a ShippingAddress) Validate() error {
	if strings.TrimSpace(a.Recipient) == "" || strings.TrimSpace(a.Phone) == "" || strings.TrimSpace(a.Line) == "" {
		return ErrMissingAddress
	}
	return nil
}

// Draft is an order ready to submit. Items are the selected cart lines.
type Draft struct {
	UserID          string
	Items           []cart.LineItem
	Quote           pricing.Quote
	VoucherID       string
	VoucherCode     string
	PaymentMethod   PaymentMethod
	ShippingAddress ShippingAddress
	Note            string
}

// NewDraft guards the checkout preconditions: the cart must hold items, some of them selected,
// each within stock.
func NewDraft(userID string, c cart.Snapshot, method PaymentMethod, addr ShippingAddress) (*Draft, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := c.SelectedItems()
	for _, item := range items {
		if err := item.ValidateQuantity(item.Quantity); err != nil {
			return nil, errs.Wrap(err, "item "+item.ProductID)
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItemsSelected
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	return &Draft{
		UserID:          userID,
		Items:           items,
		PaymentMethod:   method,
		ShippingAddress: addr,
	}, nil
}

func (d *Draft) ProductIDs() []string {
	out := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		out = append(out, item.ProductID)
	}
	return out
}

// Placement is the outcome of a submitted order.
type Placement struct {
	OrderID        string
	TotalAmount    decimal.Decimal
	PaymentID      string
	PaymentStatus  string
	PaymentURL     string
	PointsCredited int64
}

// PointsFor converts a paid amount to loyalty points: one point per 1,000đ.
func PointsFor(amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	return amount.Div(decimal.NewFromInt(1000)).IntPart()
}
