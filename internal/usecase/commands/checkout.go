package commands

import (
	"context"
	"log/slog"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

const reasonVoucherNotFound = "Mã giảm giá không tồn tại"

type QuoteResult struct {
	Items   []cart.LineItem
	Tier    loyalty.Tier
	Voucher *voucher.Voucher
	Quote   pricing.Quote

	// VoucherValidated is false when the voucher was applied without the server validator.
	VoucherValidated bool
}

type PlaceOrderRequest struct {
	PaymentMethod   string
	VoucherID       string
	ShippingAddress order.ShippingAddress
	Note            string
}

type DeliveryResult struct {
	OrderID        string
	PointsCredited int64
}

type CheckoutCommands interface {
	Quote(ctx context.Context, s shared.Session, voucherID string) (*QuoteResult, error)
	PlaceOrder(ctx context.Context, s shared.Session, req PlaceOrderRequest) (*order.Placement, error)
	ConfirmDelivery(ctx context.Context, userID, orderID string) (*DeliveryResult, error)
}

type CheckoutDeps struct {
	Registry   *cartsync.Registry
	Calculator pricing.Calculator
	Vouchers   shared.VoucherBackend
	Loyalty    shared.LoyaltyBackend
	Orders     shared.OrderBackend
	Clock      clock.Clock
	Logger     *slog.Logger
}

type checkoutCommandsImpl struct {
	registry   *cartsync.Registry
	calculator pricing.Calculator
	vouchers   shared.VoucherBackend
	loyalty    shared.LoyaltyBackend
	orders     shared.OrderBackend
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCheckoutCommands(deps CheckoutDeps) CheckoutCommands {
	if deps.Calculator == nil {
		deps.Calculator = pricing.NewDefaultCalculator()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &checkoutCommandsImpl{
		registry:   deps.Registry,
		calculator: deps.Calculator,
		vouchers:   deps.Vouchers,
		loyalty:    deps.Loyalty,
		orders:     deps.Orders,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
}

// Quote prices the current selection at today's catalog prices. An empty selection is an
// all-zero quote, not an error.
func (c *checkoutCommandsImpl) Quote(ctx context.Context, s shared.Session, voucherID string) (*QuoteResult, error) {
	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return nil, err
	}
	snap, err := repricedSnapshot(ctx, e)
	if err != nil {
		return nil, err
	}
	selected := snap.SelectedItems()
	for _, item := range selected {
		if err := item.ValidateQuantity(item.Quantity); err != nil {
			return nil, errs.Wrap(err, "item "+item.ProductID)
		}
	}

	tier, err := tierFor(ctx, c.loyalty, s.UserID)
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{Items: selected, Tier: tier}
	if len(selected) > 0 {
		subtotal := c.calculator.Quote(selected, loyalty.NoTier, nil).Subtotal
		v, validated, err := c.resolveVoucher(ctx, s.UserID, voucherID, subtotal)
		if err != nil {
			return nil, err
		}
		result.Voucher = v
		result.VoucherValidated = validated
	}
	result.Quote = c.calculator.Quote(selected, tier, result.Voucher)
	return result, nil
}

// PlaceOrder submits the selected items. The pending batch is flushed first so the order is built
// from a cart the server has seen.
func (c *checkoutCommandsImpl) PlaceOrder(ctx context.Context, s shared.Session, req PlaceOrderRequest) (*order.Placement, error) {
	if !s.IsAuthenticated() {
		return nil, errs.ErrNotAuthenticated
	}
	method, err := order.NewPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	e, err := c.registry.Acquire(ctx, s.ID, s.UserID)
	if err != nil {
		return nil, err
	}
	if err := e.Flush(ctx); err != nil {
		return nil, errs.Wrap(err, "flush cart before checkout")
	}
	snap, err := repricedSnapshot(ctx, e)
	if err != nil {
		return nil, err
	}

	draft, err := order.NewDraft(s.UserID, snap, method, req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	tier, err := tierFor(ctx, c.loyalty, s.UserID)
	if err != nil {
		return nil, err
	}
	subtotal := c.calculator.Quote(draft.Items, loyalty.NoTier, nil).Subtotal
	v, _, err := c.resolveVoucher(ctx, s.UserID, req.VoucherID, subtotal)
	if err != nil {
		return nil, err
	}
	draft.Quote = c.calculator.Quote(draft.Items, tier, v)
	draft.Note = req.Note
	if v != nil {
		draft.VoucherID = v.ID()
		draft.VoucherCode = v.Code().String()
	}

	created, err := c.orders.CreateOrder(ctx, draft)
	if err != nil {
		return nil, remoteErr(err, "create order")
	}
	total := created.TotalAmount
	if total.IsZero() {
		total = draft.Quote.FinalTotal
	}

	payment, err := c.orders.CreatePayment(ctx, shared.PaymentRequest{
		OrderID:     created.ID,
		UserID:      s.UserID,
		Method:      method.String(),
		VoucherCode: draft.VoucherCode,
		Amount:      total,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "payment creation failed after order was created",
			"order_id", created.ID, "user_id", s.UserID, "error", err)
		return nil, remoteErr(err, "create payment for order "+created.ID)
	}

	placement := &order.Placement{
		OrderID:       created.ID,
		TotalAmount:   total,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
		PaymentURL:    payment.PaymentURL,
	}
	if method.CreditsPointsOnPayment() {
		placement.PointsCredited = c.creditPoints(ctx, s.UserID, created.ID, total)
	}

	if err := e.RemovePurchased(ctx, draft.ProductIDs()); err != nil {
		c.logger.WarnContext(ctx, "failed to remove ordered items from cart",
			"order_id", created.ID, "session_id", s.ID, "error", err)
	}
	return placement, nil
}

// ConfirmDelivery marks a cash-on-delivery order as received and credits its points.
func (c *checkoutCommandsImpl) ConfirmDelivery(ctx context.Context, userID, orderID string) (*DeliveryResult, error) {
	if userID == "" {
		return nil, errs.ErrNotAuthenticated
	}
	summary, err := c.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, remoteErr(err, "get order")
	}
	if summary.UserID != userID {
		return nil, errs.ErrOrderNotFound
	}
	if err := c.orders.ConfirmDelivery(ctx, orderID); err != nil {
		return nil, remoteErr(err, "confirm delivery")
	}

	result := &DeliveryResult{OrderID: orderID}
	method, err := order.NewPaymentMethod(summary.PaymentMethod)
	if err == nil && !method.CreditsPointsOnPayment() {
		result.PointsCredited = c.creditPoints(ctx, userID, orderID, summary.TotalAmount)
	}
	return result, nil
}

// repricedSnapshot re-reads prices and stock from the catalog when anything is selected.
func repricedSnapshot(ctx context.Context, e *cartsync.Engine) (cart.Snapshot, error) {
	snap := e.Snapshot()
	if len(snap.Selected) == 0 {
		return snap, nil
	}
	snap, err := e.Reprice(ctx)
	if err != nil {
		return cart.Snapshot{}, remoteErr(err, "reprice cart")
	}
	return snap, nil
}

// creditPoints is best effort: a failure is logged and never retried automatically.
func (c *checkoutCommandsImpl) creditPoints(ctx context.Context, userID, orderID string, amount decimal.Decimal) int64 {
	if err := c.loyalty.CreditPoints(ctx, userID, orderID, amount); err != nil {
		c.logger.WarnContext(ctx, "failed to credit loyalty points",
			"user_id", userID, "order_id", orderID, "amount", amount.String(), "error", err)
		return 0
	}
	return order.PointsFor(amount)
}

// resolveVoucher runs the local eligibility check, then the server validator. A validator that
// is not deployed (404/501) lets the voucher through unvalidated.
func (c *checkoutCommandsImpl) resolveVoucher(ctx context.Context, userID, voucherID string, subtotal decimal.Decimal) (*voucher.Voucher, bool, error) {
	if voucherID == "" {
		return nil, false, nil
	}

	v, err := c.vouchers.GetVoucher(ctx, voucherID)
	if errs.Is(err, errs.ErrVoucherNotFound) {
		return nil, false, errs.WithReason(errs.Mark(err, errs.ErrVoucherInvalid), reasonVoucherNotFound)
	}
	if err != nil {
		return nil, false, remoteErr(err, "get voucher")
	}
	if err := v.ValidateUsage(c.clock.Now(), subtotal); err != nil {
		return nil, false, err
	}

	res, err := c.vouchers.ValidateVoucher(ctx, voucherID, userID, subtotal)
	switch {
	case errs.Is(err, shared.ErrValidationUnavailable):
		c.logger.WarnContext(ctx, "voucher validation unavailable, applying without server check",
			"voucher_id", voucherID, "user_id", userID)
		return v, false, nil
	case err != nil:
		return nil, false, remoteErr(err, "validate voucher")
	case !res.Valid:
		reason := res.Message
		if reason == "" {
			reason = voucher.GenericReason
		}
		return nil, false, errs.WithReason(errs.Mark(errs.New("voucher rejected by validator"), errs.ErrVoucherInvalid), reason)
	}
	return v, true, nil
}
