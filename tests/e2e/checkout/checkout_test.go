//go:build e2e

package checkout_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"fahasa-storefront/internal/handler/dto/request"
	"fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/tests/common/authtest"
	"fahasa-storefront/tests/common/fakebackend"
	"fahasa-storefront/tests/common/httptest"
	"fahasa-storefront/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	quoteURL   = "/api/checkout/quote"
	ordersURL  = "/api/checkout/orders"
	loyaltyURL = "/api/loyalty/me"

	bookAlchemist = "8935235226272"

	email    = "buyer@example.com"
	password = "password123"
	userID   = "301"
)

type checkoutSuite struct {
	e2e.SharedSuite
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(checkoutSuite))
}

func (s *checkoutSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	s.Backend.AddProduct(fakebackend.Product{ID: bookAlchemist, Title: "Nhà Giả Kim", Price: 79000, DiscountPercent: 10, Stock: 50})
	s.Backend.AddUser(fakebackend.User{ID: userID, Email: email, Password: password, FullName: "Phạm Thị D", Role: "customer"})
	s.Backend.SetRank(userID, fakebackend.Rank{Rank: "GOLD", Points: 5200, Multiplier: "1.1"})
	s.Backend.SetTiers(
		fakebackend.Tier{Rank: "BRONZE", MinPoints: 0, Multiplier: "1"},
		fakebackend.Tier{Rank: "SILVER", MinPoints: 1000, Multiplier: "1.05"},
		fakebackend.Tier{Rank: "GOLD", MinPoints: 5000, Multiplier: "1.1"},
		fakebackend.Tier{Rank: "DIAMOND", MinPoints: 20000, Multiplier: "1.2"},
	)
	s.Backend.AddVoucher(fakebackend.Voucher{ID: "v-20k", Code: "FAHASA20K", DiscountType: "FIXED", DiscountValue: 20000, MinPurchaseAmount: 100000})
	s.Backend.AddVoucher(fakebackend.Voucher{ID: "v-rejected", Code: "DAHETLUOT", DiscountType: "PERCENT", DiscountValue: 10, RejectWith: "Bạn đã sử dụng mã này"})
}

// signedInWithSelection logs a buyer in with two selected copies of the book in the cart.
func (s *checkoutSuite) signedInWithSelection(t *testing.T) *authtest.Browser {
	t.Helper()
	return s.signedInWith(t, fakebackend.CartLine{ProductID: bookAlchemist, Quantity: 2})
}

// signedInWith logs a buyer in on a server cart holding lines, all selected.
func (s *checkoutSuite) signedInWith(t *testing.T, lines ...fakebackend.CartLine) *authtest.Browser {
	t.Helper()
	s.Backend.SetCart(userID, lines...)
	browser := authtest.NewBrowser(t, s.Router)
	authtest.LoginUser(t, browser, email, password)

	selected := true
	w := browser.Do(http.MethodPut, "/api/cart/selection", request.SelectRequest{Selected: &selected})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return browser
}

func placeOrderBody(method, voucherID string) request.PlaceOrderRequest {
	return request.PlaceOrderRequest{
		PaymentMethod: method,
		VoucherID:     voucherID,
		ShippingAddress: request.ShippingAddressRequest{
			RecipientName: "Phạm Thị D",
			Phone:         "0901234567",
			Address:       "60-62 Lê Lợi, Quận 1, TP.HCM",
		},
	}
}

func (s *checkoutSuite) TestQuote() {
	s.Run("会員ランクと割引コードを順に適用する", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodGet, quoteURL+"?voucher_id=v-20k", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CheckoutQuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotNil(t, res.Tier)
		assert.Equal(t, "GOLD", res.Tier.Rank)
		require.NotNil(t, res.Voucher)
		assert.Equal(t, "FAHASA20K", res.Voucher.Code)
		assert.True(t, res.VoucherValidated)
		assert.Equal(t, response.QuoteResponse{
			Subtotal:          "142200",
			PromotionDiscount: "14220",
			VoucherDiscount:   "20000",
			FinalTotal:        "107980",
		}, res.Quote)
	})

	s.Run("バックエンドが拒否した割引コードは理由付きで返す", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodGet, quoteURL+"?voucher_id=v-rejected", nil)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Bạn đã sử dụng mã này")
	})

	s.Run("存在しない割引コード", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodGet, quoteURL+"?voucher_id=v-missing", nil)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Mã giảm giá không tồn tại")
	})

	s.Run("選択がなければゼロの見積もり", func() {
		t := s.T()
		browser := authtest.NewBrowser(t, s.Router)

		w := browser.Do(http.MethodGet, quoteURL, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CheckoutQuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "0", res.Quote.FinalTotal)
		assert.Nil(t, res.Tier)
	})
}

func (s *checkoutSuite) TestPlaceOrder() {
	s.Run("オンライン決済は注文時にポイントが付与される", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("VNPAY", "v-20k"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res response.PlaceOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "107980", res.TotalAmount)
		assert.NotEmpty(t, res.PaymentURL)
		assert.EqualValues(t, 107, res.PointsCredited)

		credits := s.Backend.Credits()
		require.Len(t, credits, 1)
		assert.Equal(t, res.OrderID, credits[0].OrderID)
		assert.EqualValues(t, 107, credits[0].Points)

		order, ok := s.Backend.Order(res.OrderID)
		require.True(t, ok)
		assert.Equal(t, "v-20k", order.VoucherID)

		// 注文した商品はカートから消える
		w = browser.Do(http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var cartRes response.CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartRes))
		assert.Empty(t, cartRes.Items)
	})

	s.Run("代金引換は配達確認でポイントが付与される", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("COD", ""))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var placed response.PlaceOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
		assert.Equal(t, "127980", placed.TotalAmount)
		assert.Zero(t, placed.PointsCredited)
		require.Empty(t, s.Backend.Credits())

		w = browser.Do(http.MethodPost, "/api/orders/"+placed.OrderID+"/confirm-delivery", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var delivered response.DeliveryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &delivered))
		assert.EqualValues(t, 127, delivered.PointsCredited)
		require.Len(t, s.Backend.Credits(), 1)
	})

	s.Run("ゲストは注文できない", func() {
		t := s.T()
		browser := authtest.NewBrowser(t, s.Router)

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("COD", ""))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("不正な支払い方法", func() {
		t := s.T()
		browser := s.signedInWithSelection(t)

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("PAYPAL", ""))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid payment method")
		require.Equal(t, map[string]int{bookAlchemist: 2}, s.Backend.CartOf(userID), "失敗した注文でカートが変わった")
	})

	s.Run("商品を選択していない", func() {
		t := s.T()
		s.Backend.SetCart(userID, fakebackend.CartLine{ProductID: bookAlchemist, Quantity: 1})
		browser := authtest.NewBrowser(t, s.Router)
		authtest.LoginUser(t, browser, email, password)

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("COD", ""))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "No items selected")
	})
}

func (s *checkoutSuite) TestPlaceOrder_CatalogChanged() {
	s.Run("カート追加後に在庫が減ると注文できない", func() {
		t := s.T()
		const book = "8935235240001"
		s.Backend.AddProduct(fakebackend.Product{ID: book, Title: "Đắc Nhân Tâm", Price: 60000, Stock: 5})
		browser := s.signedInWith(t, fakebackend.CartLine{ProductID: book, Quantity: 3})

		s.Backend.AddProduct(fakebackend.Product{ID: book, Title: "Đắc Nhân Tâm", Price: 60000, Stock: 2})

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("COD", ""))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Invalid quantity")
		assert.Equal(t, map[string]int{book: 3}, s.Backend.CartOf(userID))
	})

	s.Run("注文は最新の価格で計算される", func() {
		t := s.T()
		const book = "8935235240002"
		s.Backend.AddProduct(fakebackend.Product{ID: book, Title: "Tuổi Trẻ Đáng Giá Bao Nhiêu", Price: 50000, Stock: 10})
		browser := s.signedInWith(t, fakebackend.CartLine{ProductID: book, Quantity: 1})

		s.Backend.AddProduct(fakebackend.Product{ID: book, Title: "Tuổi Trẻ Đáng Giá Bao Nhiêu", Price: 70000, Stock: 10})

		w := browser.Do(http.MethodPost, ordersURL, placeOrderBody("COD", ""))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var placed response.PlaceOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
		// 70,000 - GOLD 10%
		assert.Equal(t, "63000", placed.TotalAmount)
	})
}

func (s *checkoutSuite) TestLoyalty() {
	s.Run("会員ランクと次のランクまでのポイント", func() {
		t := s.T()
		browser := authtest.NewBrowser(t, s.Router)
		authtest.LoginUser(t, browser, email, password)

		w := browser.Do(http.MethodGet, loyaltyURL, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.LoyaltyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "GOLD", res.Rank)
		require.NotNil(t, res.NextTier)
		assert.Equal(t, "DIAMOND", res.NextTier.Rank)
		assert.Len(t, res.Tiers, 4)
	})

	s.Run("未ログインでは取得できない", func() {
		t := s.T()
		browser := authtest.NewBrowser(t, s.Router)

		w := browser.Do(http.MethodGet, loyaltyURL, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
