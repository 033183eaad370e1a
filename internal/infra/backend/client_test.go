//go:build unit

package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fahasa-storefront/internal/domain/auth"
	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/domain/order"
	"fahasa-storefront/internal/domain/pricing"
	"fahasa-storefront/internal/domain/voucher"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/infra/backend"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordedCall struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (o *recordingObserver) BackendRequest(method, route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, recordedCall{method: method, route: route, status: status})
}

type BackendClientTestSuite struct {
	suite.Suite
	mux      *http.ServeMux
	server   *httptest.Server
	observer *recordingObserver
	client   *backend.Client
	ctx      context.Context
}

func TestBackendClientSuite(t *testing.T) {
	suite.Run(t, new(BackendClientTestSuite))
}

func (s *BackendClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.observer = &recordingObserver{}
	s.ctx = context.Background()

	client, err := backend.NewClient(config.BackendConfig{
		BaseURL: s.server.URL + "/",
		APIKey:  "test-api-key",
		Timeout: 2 * time.Second,
	}, s.observer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.client = client
}

func (s *BackendClientTestSuite) SetupSubTest() {
	s.server.Close()
	s.SetupTest()
}

func (s *BackendClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *BackendClientTestSuite) respond(pattern string, status int, body string) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *BackendClientTestSuite) TestNewClient_RequiresBaseURL() {
	_, err := backend.NewClient(config.BackendConfig{}, nil, slog.Default())
	s.Error(err)
}

func (s *BackendClientTestSuite) TestCatalog_GetProduct() {
	s.Run("decodes numeric ids and enveloped payloads", func() {
		s.mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			s.Equal("test-api-key", r.Header.Get("X-API-Key"))
			s.Equal("42", r.PathValue("id"))
			_, _ = io.WriteString(w, `{"data":{"id":42,"title":"Nhà Giả Kim","imageUrl":"/img/42.jpg","price":"79000","discountPercent":10,"stock":5}}`)
		})

		p, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "42")

		s.Require().NoError(err)
		s.Equal("42", p.ID)
		s.Equal("Nhà Giả Kim", p.Title)
		s.True(p.Price.Equal(decimal.NewFromInt(79000)))
		s.True(p.DiscountPercent.Equal(decimal.NewFromInt(10)))
		s.Equal(5, p.Stock)
		s.Equal([]recordedCall{{method: http.MethodGet, route: "/api/products/{id}", status: http.StatusOK}}, s.observer.calls)
	})

	s.Run("falls back to name", func() {
		s.respond("GET /api/products/{id}", http.StatusOK, `{"id":"book-1","name":"Đắc Nhân Tâm","price":86000}`)

		p, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "book-1")

		s.Require().NoError(err)
		s.Equal("Đắc Nhân Tâm", p.Title)
	})

	s.Run("404 is product not found", func() {
		s.respond("GET /api/products/{id}", http.StatusNotFound, `{"message":"Product not found"}`)

		_, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "missing")

		s.True(errs.Is(err, errs.ErrProductNotFound))
		s.True(infra.IsKind(err, infra.KindNotFound))
		s.Equal(http.StatusNotFound, infra.StatusOf(err))
	})

	s.Run("5xx is a network failure", func() {
		s.respond("GET /api/products/{id}", http.StatusBadGateway, `upstream down`)

		_, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "book-1")

		s.True(errs.Is(err, errs.ErrNetworkFailure))
		s.False(errs.Is(err, errs.ErrProductNotFound))
	})

	s.Run("negative price is rejected as a bad payload", func() {
		s.respond("GET /api/products/{id}", http.StatusOK, `{"id":"book-1","title":"x","price":-1}`)

		_, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "book-1")

		s.True(errs.Is(err, errs.ErrNetworkFailure))
		s.True(infra.IsKind(err, infra.KindDecodeFailure))
	})

	s.Run("malformed json", func() {
		s.respond("GET /api/products/{id}", http.StatusOK, `{"id":`)

		_, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "book-1")

		s.True(infra.IsKind(err, infra.KindDecodeFailure))
	})
}

func (s *BackendClientTestSuite) TestTransportFailure() {
	s.server.Close()

	_, err := backend.NewCatalogClient(s.client).GetProduct(s.ctx, "book-1")

	s.True(errs.Is(err, errs.ErrNetworkFailure))
	s.True(infra.IsKind(err, infra.KindUnavailable))
	s.Require().Len(s.observer.calls, 1)
	s.Zero(s.observer.calls[0].status)
}

func (s *BackendClientTestSuite) TestCart() {
	s.Run("get skips empty lines", func() {
		s.respond("GET /api/carts/user/{userId}", http.StatusOK,
			`{"id":7,"userId":"user-1","items":[{"productId":1,"quantity":2},{"productId":"book-2","quantity":0}]}`)

		got, err := backend.NewCartClient(s.client).GetCart(s.ctx, "user-1")

		s.Require().NoError(err)
		want := &shared.ServerCart{ID: "7", UserID: "user-1", Lines: []shared.ServerCartLine{{ProductID: "1", Quantity: 2}}}
		s.Empty(cmp.Diff(want, got))
	})

	s.Run("missing cart", func() {
		s.respond("GET /api/carts/user/{userId}", http.StatusNotFound, `{}`)

		_, err := backend.NewCartClient(s.client).GetCart(s.ctx, "user-1")

		s.True(errs.Is(err, shared.ErrCartNotFound))
	})

	s.Run("create posts the owner", func() {
		s.mux.HandleFunc("POST /api/carts", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("user-1", body["userId"])
			s.Equal("application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":"c-1","items":[]}`)
		})

		got, err := backend.NewCartClient(s.client).CreateCart(s.ctx, "user-1")

		s.Require().NoError(err)
		s.Equal("c-1", got.ID)
		s.Equal("user-1", got.UserID)
		s.Empty(got.Lines)
	})

	s.Run("add sends product and quantity", func() {
		s.mux.HandleFunc("POST /api/carts/{userId}/items", func(w http.ResponseWriter, r *http.Request) {
			s.Equal("user-1", r.PathValue("userId"))
			var body struct {
				ProductID string `json:"productId"`
				Quantity  int    `json:"quantity"`
			}
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("book-1", body.ProductID)
			s.Equal(3, body.Quantity)
			w.WriteHeader(http.StatusOK)
		})

		s.NoError(backend.NewCartClient(s.client).AddToCart(s.ctx, "user-1", "book-1", 3))
	})

	s.Run("remove of an absent line", func() {
		s.respond("DELETE /api/carts/{userId}/items/{productId}", http.StatusNotFound, `{"message":"not in cart"}`)

		err := backend.NewCartClient(s.client).RemoveFromCart(s.ctx, "user-1", "book-1")

		s.True(errs.Is(err, errs.ErrProductNotInCart))
	})

	s.Run("rejected add is a network failure", func() {
		s.respond("POST /api/carts/{userId}/items", http.StatusBadRequest, `{"message":"Out of stock"}`)

		err := backend.NewCartClient(s.client).AddToCart(s.ctx, "user-1", "book-1", 99)

		s.True(errs.Is(err, errs.ErrNetworkFailure))
		s.True(infra.IsKind(err, infra.KindRejected))
	})
}

func (s *BackendClientTestSuite) TestVoucher_GetVoucher() {
	s.Run("maps usage and expiry", func() {
		s.respond("GET /api/vouchers/{id}", http.StatusOK, `{
			"id": 9, "code": "SALE10", "discountType": "PERCENTAGE", "discountValue": 10,
			"maxDiscountAmount": 50000, "minPurchaseAmount": 100000,
			"usageLimit": 5, "usedCount": 7, "expiryDate": "2024-12-31"
		}`)

		v, err := backend.NewVoucherClient(s.client).GetVoucher(s.ctx, "9")

		s.Require().NoError(err)
		s.Equal("9", v.ID())
		s.Equal(voucher.DiscountPercent, v.Type())
		s.Require().NotNil(v.MaxDiscountAmount())
		s.True(v.MaxDiscountAmount().Equal(decimal.NewFromInt(50000)))
		s.Require().NotNil(v.RemainingUses())
		s.Zero(*v.RemainingUses())
		s.Require().NotNil(v.ExpiryAt())
		s.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *v.ExpiryAt())
	})

	s.Run("not found", func() {
		s.respond("GET /api/vouchers/{id}", http.StatusNotFound, `{}`)

		_, err := backend.NewVoucherClient(s.client).GetVoucher(s.ctx, "9")

		s.True(errs.Is(err, errs.ErrVoucherNotFound))
	})
}

func (s *BackendClientTestSuite) TestVoucher_ValidateVoucher() {
	call := func() (shared.VoucherValidation, error) {
		return backend.NewVoucherClient(s.client).ValidateVoucher(s.ctx, "9", "user-1", decimal.NewFromInt(200000))
	}

	s.Run("valid", func() {
		s.mux.HandleFunc("POST /api/vouchers/validate", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("9", body["voucherId"])
			s.Equal("200000", body["orderAmount"])
			_, _ = io.WriteString(w, `{"valid":true}`)
		})

		res, err := call()

		s.Require().NoError(err)
		s.True(res.Valid)
	})

	s.Run("rejection with a message", func() {
		s.respond("POST /api/vouchers/validate", http.StatusBadRequest, `{"message":"Bạn đã sử dụng mã này"}`)

		res, err := call()

		s.Require().NoError(err)
		s.False(res.Valid)
		s.Equal("Bạn đã sử dụng mã này", res.Message)
	})

	for _, status := range []int{http.StatusNotFound, http.StatusNotImplemented} {
		s.Run(http.StatusText(status)+" means the validator is unavailable", func() {
			s.respond("POST /api/vouchers/validate", status, ``)

			_, err := call()

			s.True(errs.Is(err, shared.ErrValidationUnavailable))
		})
	}

	s.Run("outage", func() {
		s.respond("POST /api/vouchers/validate", http.StatusServiceUnavailable, ``)

		_, err := call()

		s.True(errs.Is(err, errs.ErrNetworkFailure))
	})
}

func (s *BackendClientTestSuite) TestLoyalty() {
	s.Run("rank info", func() {
		s.respond("GET /api/users/{userId}/rank", http.StatusOK, `{"rank":"GOLD","points":5400,"multiplier":1.1}`)

		info, err := backend.NewLoyaltyClient(s.client).GetUserRankInfo(s.ctx, "user-1")

		s.Require().NoError(err)
		s.Equal("GOLD", info.Rank)
		s.Equal(int64(5400), info.Points)
		s.True(info.Multiplier.Equal(decimal.RequireFromString("1.1")))
	})

	s.Run("tiers accept name or rank", func() {
		s.respond("GET /api/ranks", http.StatusOK, `[{"rank":"MEMBER","minPoints":0,"multiplier":1},{"name":"SILVER","minPoints":1000,"multiplier":1.05}]`)

		tiers, err := backend.NewLoyaltyClient(s.client).ListTiers(s.ctx)

		s.Require().NoError(err)
		s.Require().Len(tiers, 2)
		s.Equal("SILVER", tiers[1].Rank)
		s.Equal(int64(1000), tiers[1].PointsThreshold)
	})

	s.Run("credit sends the derived points", func() {
		s.mux.HandleFunc("POST /api/users/{userId}/points", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				OrderID string `json:"orderId"`
				Points  int64  `json:"points"`
			}
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("o-1", body.OrderID)
			s.Equal(int64(130), body.Points)
			w.WriteHeader(http.StatusNoContent)
		})

		s.NoError(backend.NewLoyaltyClient(s.client).CreditPoints(s.ctx, "user-1", "o-1", decimal.NewFromInt(130500)))
	})
}

func (s *BackendClientTestSuite) TestOrders() {
	s.Run("create posts the quote and selected lines", func() {
		s.mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				UserID      string `json:"userId"`
				TotalAmount string `json:"totalAmount"`
				Items       []struct {
					ProductID string `json:"productId"`
					Quantity  int    `json:"quantity"`
					Price     string `json:"price"`
				} `json:"items"`
				PaymentMethod   string `json:"paymentMethod"`
				ShippingAddress struct {
					Address string `json:"address"`
				} `json:"shippingAddress"`
			}
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("user-1", body.UserID)
			s.Equal("90000", body.TotalAmount)
			s.Require().Len(body.Items, 1)
			s.Equal("90000", body.Items[0].Price)
			s.Equal("VNPAY", body.PaymentMethod)
			s.Equal("1 Lê Lợi, Q1", body.ShippingAddress.Address)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":101,"totalAmount":90000}`)
		})

		draft := &order.Draft{
			UserID: "user-1",
			Items: []cart.LineItem{{
				ProductID:       "book-1",
				Quantity:        1,
				UnitPrice:       decimal.NewFromInt(100000),
				DiscountPercent: decimal.NewFromInt(10),
				Stock:           5,
			}},
			Quote: pricing.Quote{
				Subtotal:          decimal.NewFromInt(90000),
				PromotionDiscount: decimal.Zero,
				VoucherDiscount:   decimal.Zero,
				FinalTotal:        decimal.NewFromInt(90000),
			},
			PaymentMethod:   order.PaymentVNPay,
			ShippingAddress: order.ShippingAddress{Recipient: "A", Phone: "0900000000", Line: "1 Lê Lợi, Q1"},
		}

		created, err := backend.NewOrderClient(s.client).CreateOrder(s.ctx, draft)

		s.Require().NoError(err)
		s.Equal("101", created.ID)
		s.True(created.TotalAmount.Equal(decimal.NewFromInt(90000)))
	})

	s.Run("payment", func() {
		s.respond("POST /api/payments", http.StatusOK, `{"id":"p-1","status":"PENDING","paymentUrl":"https://pay.example/p-1"}`)

		pay, err := backend.NewOrderClient(s.client).CreatePayment(s.ctx, shared.PaymentRequest{OrderID: "101", Method: "VNPAY"})

		s.Require().NoError(err)
		s.Equal(shared.CreatedPayment{ID: "p-1", Status: "PENDING", PaymentURL: "https://pay.example/p-1"}, pay)
	})

	s.Run("get and confirm", func() {
		s.respond("GET /api/orders/{id}", http.StatusOK, `{"id":101,"userId":"user-1","status":"SHIPPING","paymentMethod":"COD","totalAmount":254000}`)
		s.respond("POST /api/orders/{id}/confirm-delivery", http.StatusOK, `{}`)
		orders := backend.NewOrderClient(s.client)

		summary, err := orders.GetOrder(s.ctx, "101")
		s.Require().NoError(err)
		s.Equal("user-1", summary.UserID)
		s.Equal("COD", summary.PaymentMethod)
		s.NoError(orders.ConfirmDelivery(s.ctx, "101"))
	})

	s.Run("unknown order", func() {
		s.respond("GET /api/orders/{id}", http.StatusNotFound, `{}`)

		_, err := backend.NewOrderClient(s.client).GetOrder(s.ctx, "999")

		s.True(errs.Is(err, errs.ErrOrderNotFound))
	})
}

func (s *BackendClientTestSuite) TestAuth_Login() {
	creds, err := auth.NewCredentials("test@example.com", "password123")
	s.Require().NoError(err)

	s.Run("success", func() {
		s.respond("POST /api/auth/login", http.StatusOK, `{"userId":17,"email":"test@example.com","fullName":"Nguyễn Văn A","role":"admin"}`)

		account, err := backend.NewAuthClient(s.client).Login(s.ctx, creds)

		s.Require().NoError(err)
		s.Equal("17", account.ID())
		s.Equal("Nguyễn Văn A", account.FullName())
		s.True(account.IsAdmin())
	})

	s.Run("unknown role defaults to customer", func() {
		s.respond("POST /api/auth/login", http.StatusOK, `{"id":"u-9","role":"SHOPPER"}`)

		account, err := backend.NewAuthClient(s.client).Login(s.ctx, creds)

		s.Require().NoError(err)
		s.Equal("u-9", account.ID())
		s.Equal("test@example.com", account.Email().Value())
		s.False(account.IsAdmin())
	})

	s.Run("refused", func() {
		s.respond("POST /api/auth/login", http.StatusUnauthorized, `{"message":"Bad credentials"}`)

		_, err := backend.NewAuthClient(s.client).Login(s.ctx, creds)

		s.True(errs.Is(err, errs.ErrInvalidCredentials))
	})

	s.Run("outage", func() {
		s.respond("POST /api/auth/login", http.StatusInternalServerError, ``)

		_, err := backend.NewAuthClient(s.client).Login(s.ctx, creds)

		s.True(errs.Is(err, errs.ErrNetworkFailure))
		s.False(errs.Is(err, errs.ErrInvalidCredentials))
	})
}
