package backend

import (
	"context"
	"net/url"

	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"
)

type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

func (c *OrderClient) CreateOrder(ctx context.Context, draft *order.Draft) (shared.CreatedOrder, error) {
	req := createOrderRequest{
		UserID:            draft.UserID,
		Items:             make([]orderItemRequest, 0, len(draft.Items)),
		Subtotal:          draft.Quote.Subtotal,
		PromotionDiscount: draft.Quote.PromotionDiscount,
		VoucherDiscount:   draft.Quote.VoucherDiscount,
		TotalAmount:       draft.Quote.FinalTotal,
		VoucherID:         draft.VoucherID,
		PaymentMethod:     draft.PaymentMethod.String(),
		ShippingAddress: shippingAddressRequest{
			Recipient: draft.ShippingAddress.Recipient,
			Phone:     draft.ShippingAddress.Phone,
			Address:   draft.ShippingAddress.Line,
		},
		Note: draft.Note,
	}
	for _, item := range draft.Items {
		req.Items = append(req.Items, orderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.EffectiveUnitPrice(),
		})
	}

	var resp orderResponse
	if err := c.client.do(ctx, post("/api/orders", "/api/orders", req), &resp); err != nil {
		return shared.CreatedOrder{}, translate(err, nil)
	}
	return shared.CreatedOrder{ID: resp.ID.String(), TotalAmount: resp.TotalAmount}, nil
}

func (c *OrderClient) CreatePayment(ctx context.Context, req shared.PaymentRequest) (shared.CreatedPayment, error) {
	var resp paymentResponse
	err := c.client.do(ctx, post("/api/payments", "/api/payments", createPaymentRequest{
		OrderID:     req.OrderID,
		UserID:      req.UserID,
		Method:      req.Method,
		VoucherCode: req.VoucherCode,
		Amount:      req.Amount,
	}), &resp)
	if err != nil {
		return shared.CreatedPayment{}, translate(err, errs.ErrOrderNotFound)
	}
	return shared.CreatedPayment{ID: resp.ID.String(), Status: resp.Status, PaymentURL: resp.PaymentURL}, nil
}

func (c *OrderClient) GetOrder(ctx context.Context, orderID string) (shared.OrderSummary, error) {
	var resp orderResponse
	if err := c.client.do(ctx, get("/api/orders/{id}", "/api/orders/"+url.PathEscape(orderID)), &resp); err != nil {
		return shared.OrderSummary{}, translate(err, errs.ErrOrderNotFound)
	}
	out := shared.OrderSummary{
		ID:            resp.ID.String(),
		UserID:        resp.UserID.String(),
		Status:        resp.Status,
		PaymentMethod: resp.PaymentMethod,
		TotalAmount:   resp.TotalAmount,
	}
	if out.ID == "" {
		out.ID = orderID
	}
	return out, nil
}

func (c *OrderClient) ConfirmDelivery(ctx context.Context, orderID string) error {
	path := "/api/orders/" + url.PathEscape(orderID) + "/confirm-delivery"
	err := c.client.do(ctx, post("/api/orders/{id}/confirm-delivery", path, nil), nil)
	return translate(err, errs.ErrOrderNotFound)
}
