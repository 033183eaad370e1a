package response

import (
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/usecase/commands"
)

type VoucherResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type CheckoutQuoteResponse struct {
	Items            []LineItemResponse `json:"items"`
	Tier             *TierResponse      `json:"tier,omitempty"`
	Voucher          *VoucherResponse   `json:"voucher,omitempty"`
	VoucherValidated bool               `json:"voucher_validated"`
	Quote            QuoteResponse      `json:"quote"`
}

type PlaceOrderResponse struct {
	OrderID        string `json:"order_id"`
	TotalAmount    string `json:"total_amount"`
	PaymentID      string `json:"payment_id,omitempty"`
	PaymentStatus  string `json:"payment_status,omitempty"`
	PaymentURL     string `json:"payment_url,omitempty"`
	PointsCredited int64  `json:"points_credited"`
}

type DeliveryResponse struct {
	OrderID        string `json:"order_id"`
	PointsCredited int64  `json:"points_credited"`
}

func FromVoucher(v *voucher.Voucher) *VoucherResponse {
	if v == nil {
		return nil
	}
	return &VoucherResponse{
		ID:    v.ID(),
		Code:  v.Code().String(),
		Type:  v.Type().String(),
		Value: v.Value().String(),
	}
}

func FromQuoteResult(r *commands.QuoteResult) CheckoutQuoteResponse {
	items := make([]LineItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		li := FromLineItem(item)
		li.Selected = true
		items = append(items, li)
	}
	return CheckoutQuoteResponse{
		Items:            items,
		Tier:             FromTier(r.Tier),
		Voucher:          FromVoucher(r.Voucher),
		VoucherValidated: r.VoucherValidated,
		Quote:            FromQuote(r.Quote),
	}
}

func FromPlacement(p *order.Placement) PlaceOrderResponse {
	var r PlaceOrderResponse
	mustCopy(&r, p)
	return r
}

func FromDelivery(d *commands.DeliveryResult) DeliveryResponse {
	var r DeliveryResponse
	mustCopy(&r, d)
	return r
}
