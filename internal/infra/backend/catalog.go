package backend

import (
	"context"
	"net/url"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/errs"
)

type CatalogClient struct {
	client *Client
}

func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{client: client}
}

func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (cart.Product, error) {
	var resp productResponse
	err := c.client.do(ctx, get("/api/products/{id}", "/api/products/"+url.PathEscape(productID)), &resp)
	if err != nil {
		return cart.Product{}, translate(err, errs.ErrProductNotFound)
	}

	p := toProduct(resp)
	if p.ID == "" {
		p.ID = productID
	}
	if err := p.Validate(); err != nil {
		return cart.Product{}, errs.Mark(infra.WrapRepoErr("invalid product payload", err, infra.KindDecodeFailure), errs.ErrNetworkFailure)
	}
	return p, nil
}

func toProduct(resp productResponse) cart.Product {
	title := resp.Title
	if title == "" {
		title = resp.Name
	}
	return cart.Product{
		ID:              resp.ID.String(),
		Title:           title,
		ImageURL:        resp.ImageURL,
		Price:           resp.Price,
		DiscountPercent: resp.DiscountPercent,
		Stock:           resp.Stock,
	}
}
