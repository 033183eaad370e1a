//go:build unit || e2e

package builder

import (
	"fahasa-storefront/internal/domain/cart"

	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID              string
	Title           string
	ImageURL        string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Stock           int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:              "book-1",
		Title:           "Nhà Giả Kim",
		ImageURL:        "https://cdn.example.com/books/1.jpg",
		Price:           decimal.NewFromInt(100000),
		DiscountPercent: decimal.Zero,
		Stock:           10,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

func (p *ProductBuilder) WithID(id string) *ProductBuilder {
	p.ID = id
	return p
}

func (p *ProductBuilder) WithPrice(price int64) *ProductBuilder {
	p.Price = decimal.NewFromInt(price)
	return p
}

func (p *ProductBuilder) WithDiscountPercent(percent int64) *ProductBuilder {
	p.DiscountPercent = decimal.NewFromInt(percent)
	return p
}

func (p *ProductBuilder) WithStock(stock int) *ProductBuilder {
	p.Stock = stock
	return p
}

// Build methods
func (p *ProductBuilder) Build() cart.Product {
	return cart.Product{
		ID:              p.ID,
		Title:           p.Title,
		ImageURL:        p.ImageURL,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
	}
}

func (p *ProductBuilder) BuildLineItem(qty int) cart.LineItem {
	item, err := cart.NewLineItem(p.Build(), qty)
	if err != nil {
		panic(err)
	}
	return item
}
