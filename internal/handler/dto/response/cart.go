package response

import (
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/queries"
)

type LineItemResponse struct {
	ProductID       string `json:"product_id"`
	Title           string `json:"title"`
	ImageURL        string `json:"image_url,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
	EffectivePrice  string `json:"effective_price"`
	LineTotal       string `json:"line_total"`
	Stock           int    `json:"stock"`
	Selected        bool   `json:"selected"`
}

type QuoteResponse struct {
	Subtotal          string `json:"subtotal"`
	PromotionDiscount string `json:"promotion_discount"`
	VoucherDiscount   string `json:"voucher_discount"`
	FinalTotal        string `json:"final_total"`
}

type TierResponse struct {
	Rank            string `json:"rank"`
	PointsThreshold int64  `json:"points_threshold"`
	Multiplier      string `json:"multiplier"`
}

type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	At      int64  `json:"at"`
}

type CartResponse struct {
	Items        []LineItemResponse `json:"items"`
	SelectedIDs  []string           `json:"selected_ids"`
	PendingCount int                `json:"pending_count"`
	SyncState    string             `json:"sync_state"`
	Tier         *TierResponse      `json:"tier,omitempty"`
	Quote        QuoteResponse      `json:"quote"`
	Notices      []NoticeResponse   `json:"notices"`
}

type LineItemMutationResponse struct {
	Item LineItemResponse `json:"item"`
	Cart CartResponse     `json:"cart"`
}

func FromLineItems(items []cart.LineItem, selected []string) []LineItemResponse {
	ids := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		ids[id] = struct{}{}
	}
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		r := FromLineItem(item)
		_, r.Selected = ids[item.ProductID]
		out = append(out, r)
	}
	return out
}

func FromLineItem(item cart.LineItem) LineItemResponse {
	var r LineItemResponse
	mustCopy(&r, &item)
	r.EffectivePrice = item.EffectiveUnitPrice().String()
	r.LineTotal = item.LineTotal().String()
	return r
}

func FromQuote(q pricing.Quote) QuoteResponse {
	var r QuoteResponse
	mustCopy(&r, &q)
	return r
}

// FromTier returns nil for the no-bonus fallback.
func FromTier(t loyalty.Tier) *TierResponse {
	if t.IsNone() {
		return nil
	}
	r := &TierResponse{}
	mustCopy(r, &t)
	return r
}

func FromNotices(notices []cartsync.Notice) []NoticeResponse {
	out := make([]NoticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, NoticeResponse{Kind: string(n.Kind), Message: n.Message, At: n.At.Unix()})
	}
	return out
}

func FromCartView(v *queries.CartView) CartResponse {
	selected := v.Cart.Selected
	if selected == nil {
		selected = []string{}
	}
	return CartResponse{
		Items:        FromLineItems(v.Cart.Items, v.Cart.Selected),
		SelectedIDs:  selected,
		PendingCount: len(v.Cart.Pending),
		SyncState:    v.Cart.SyncState.String(),
		Tier:         FromTier(v.Tier),
		Quote:        FromQuote(v.Quote),
		Notices:      FromNotices(v.Notices),
	}
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
