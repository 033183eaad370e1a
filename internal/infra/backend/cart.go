package backend

import (
	"context"
	"net/url"

	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"
)

// CartClient is the server cart of an authenticated user. The backend has no update endpoint.
type CartClient struct {
	client *Client
}

func NewCartClient(client *Client) *CartClient {
	return &CartClient{client: client}
}

func (c *CartClient) GetCart(ctx context.Context, userID string) (*shared.ServerCart, error) {
	var resp cartResponse
	err := c.client.do(ctx, get("/api/carts/user/{userId}", "/api/carts/user/"+url.PathEscape(userID)), &resp)
	if err != nil {
		return nil, translate(err, shared.ErrCartNotFound)
	}
	return toServerCart(resp, userID), nil
}

func (c *CartClient) CreateCart(ctx context.Context, userID string) (*shared.ServerCart, error) {
	var resp cartResponse
	err := c.client.do(ctx, post("/api/carts", "/api/carts", createCartRequest{UserID: userID}), &resp)
	if err != nil {
		return nil, translate(err, nil)
	}
	return toServerCart(resp, userID), nil
}

func (c *CartClient) AddToCart(ctx context.Context, userID, productID string, qty int) error {
	path := "/api/carts/" + url.PathEscape(userID) + "/items"
	err := c.client.do(ctx, post("/api/carts/{userId}/items", path, addToCartRequest{ProductID: productID, Quantity: qty}), nil)
	return translate(err, errs.ErrProductNotFound)
}

func (c *CartClient) RemoveFromCart(ctx context.Context, userID, productID string) error {
	path := "/api/carts/" + url.PathEscape(userID) + "/items/" + url.PathEscape(productID)
	err := c.client.do(ctx, del("/api/carts/{userId}/items/{productId}", path), nil)
	return translate(err, errs.ErrProductNotInCart)
}

func toServerCart(resp cartResponse, userID string) *shared.ServerCart {
	out := &shared.ServerCart{
		ID:     resp.ID.String(),
		UserID: resp.UserID.String(),
		Lines:  make([]shared.ServerCartLine, 0, len(resp.Items)),
	}
	if out.UserID == "" {
		out.UserID = userID
	}
	for _, item := range resp.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		out.Lines = append(out.Lines, shared.ServerCartLine{ProductID: item.ProductID.String(), Quantity: item.Quantity})
	}
	return out
}
