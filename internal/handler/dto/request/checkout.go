package request

import (
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/usecase/commands"
)

type ShippingAddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,max=20"`
	Address       string `json:"address" binding:"required,max=500"`
}

type PlaceOrderRequest struct {
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	VoucherID       string                 `json:"voucher_id"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
	Note            string                 `json:"note" binding:"max=500"`
}

func (r *PlaceOrderRequest) ToCommand() commands.PlaceOrderRequest {
	return commands.PlaceOrderRequest{
		PaymentMethod: r.PaymentMethod,
		VoucherID:     r.VoucherID,
		ShippingAddress: order.ShippingAddress{
			Recipient: r.ShippingAddress.RecipientName,
			Phone:     r.ShippingAddress.Phone,
			Line:      r.ShippingAddress.Address,
		},
		Note: r.Note,
	}
}
