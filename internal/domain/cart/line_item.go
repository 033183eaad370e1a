package cart

import (
	"errors"
	"strings"

	"fahasa-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity        = errs.ErrInvalidQuantity
	ErrProductNotInCart       = errs.ErrProductNotInCart
	ErrInvalidProduct         = errors.New("invalid product")
	ErrInvalidDiscountPercent = errors.New("discount percent must be between 0 and 100")
	ErrNegativePrice          = errors.New("price cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// Product is the catalog view of a book; the catalog is the source of truth for prices.
type Product struct {
	ID              string
	Title           string
	ImageURL        string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Stock           int
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidProduct
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscountPercent
	}
	return nil
}

type LineItem struct {
	ProductID       string
	Title           string
	ImageURL        string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Stock           int
}

func NewLineItem(p Product, qty int) (LineItem, error) {
	if err := p.Validate(); err != nil {
		return LineItem{}, err
	}
	item := LineItem{}.withProduct(p)
	if err := item.ValidateQuantity(qty); err != nil {
		return LineItem{}, err
	}
	item.Quantity = qty
	return item, nil
}

// ServerLineItem mirrors a line reported by the backend. The quantity is taken as-is since the
// server cart is authoritative even when stock has since dropped.
func ServerLineItem(p Product, qty int) LineItem {
	item := LineItem{}.withProduct(p)
	item.Quantity = qty
	return item
}

func (li LineItem) EffectiveUnitPrice() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(1).Sub(li.DiscountPercent.Div(hundred)))
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ValidateQuantity rejects, never clamps, quantities outside [1, stock].
func (li LineItem) ValidateQuantity(n int) error {
	if n < 1 || n > li.Stock {
		return ErrInvalidQuantity
	}
	return nil
}

func (li LineItem) withProduct(p Product) LineItem {
	li.ProductID = p.ID
	li.Title = p.Title
	li.ImageURL = p.ImageURL
	li.UnitPrice = p.Price
	li.DiscountPercent = p.DiscountPercent
	li.Stock = p.Stock
	return li
}
