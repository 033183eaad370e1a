package backend

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// id accepts both numeric and string identifiers; the backend is not consistent across
// services.
type id string

func (i *id) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*i = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = id(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = id(n.String())
	return nil
}

func (i id) String() string { return string(i) }

// wireTime accepts RFC 3339 timestamps and bare dates.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	_, err := time.Parse(time.RFC3339, s)
	return err
}

type productResponse struct {
	ID              id              `json:"id"`
	Title           string          `json:"title"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"imageUrl"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Stock           int             `json:"stock"`
}

type cartItemResponse struct {
	ProductID id  `json:"productId"`
	Quantity  int `json:"quantity"`
}

type cartResponse struct {
	ID     id                 `json:"id"`
	UserID id                 `json:"userId"`
	Items  []cartItemResponse `json:"items"`
}

type createCartRequest struct {
	UserID string `json:"userId"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type voucherResponse struct {
	ID                id               `json:"id"`
	Code              string           `json:"code"`
	DiscountType      string           `json:"discountType"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount"`
	MinPurchaseAmount decimal.Decimal  `json:"minPurchaseAmount"`
	UsageLimit        *int             `json:"usageLimit"`
	UsedCount         int              `json:"usedCount"`
	ExpiryDate        *wireTime        `json:"expiryDate"`
}

type validateVoucherRequest struct {
	VoucherID   string          `json:"voucherId"`
	UserID      string          `json:"userId"`
	OrderAmount decimal.Decimal `json:"orderAmount"`
}

type validateVoucherResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type rankInfoResponse struct {
	Rank       string          `json:"rank"`
	Points     int64           `json:"points"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type tierResponse struct {
	Rank       string          `json:"rank"`
	Name       string          `json:"name"`
	MinPoints  int64           `json:"minPoints"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type creditPointsRequest struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Points  int64           `json:"points"`
}

type orderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type shippingAddressRequest struct {
	Recipient string `json:"recipientName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type createOrderRequest struct {
	UserID            string                 `json:"userId"`
	Items             []orderItemRequest     `json:"items"`
	Subtotal          decimal.Decimal        `json:"subtotal"`
	PromotionDiscount decimal.Decimal        `json:"promotionDiscount"`
	VoucherDiscount   decimal.Decimal        `json:"voucherDiscount"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"`
	VoucherID         string                 `json:"voucherId,omitempty"`
	PaymentMethod     string                 `json:"paymentMethod"`
	ShippingAddress   shippingAddressRequest `json:"shippingAddress"`
	Note              string                 `json:"note,omitempty"`
}

type orderResponse struct {
	ID            id              `json:"id"`
	UserID        id              `json:"userId"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

type createPaymentRequest struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	Method      string          `json:"method"`
	VoucherCode string          `json:"voucherCode,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

type paymentResponse struct {
	ID         id     `json:"id"`
	Status     string `json:"status"`
	PaymentURL string `json:"paymentUrl"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       id     `json:"id"`
	UserID   id     `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}
