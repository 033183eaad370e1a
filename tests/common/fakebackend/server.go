//go:build unit || e2e

package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Price           int64  `json:"price"`
	DiscountPercent int64  `json:"discountPercent"`
	Stock           int    `json:"stock"`
}

type Voucher struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	DiscountType      string `json:"discountType"`
	DiscountValue     int64  `json:"discountValue"`
	MaxDiscountAmount *int64 `json:"maxDiscountAmount,omitempty"`
	MinPurchaseAmount int64  `json:"minPurchaseAmount"`
	// RejectWith makes the validator refuse the voucher with this message.
	RejectWith string `json:"-"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type Rank struct {
	Rank       string `json:"rank"`
	Points     int64  `json:"points"`
	Multiplier string `json:"multiplier"`
}

type Tier struct {
	Rank       string `json:"rank"`
	MinPoints  int64  `json:"minPoints"`
	Multiplier string `json:"multiplier"`
}

type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	VoucherID     string          `json:"voucherId,omitempty"`
	Items         []CartLine      `json:"items"`
}

type Credit struct {
	UserID  string
	OrderID string
	Amount  decimal.Decimal
	Points  int64
}

// Server is an in-memory storefront backend speaking the REST dialect of the real one.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	products map[string]Product
	vouchers map[string]Voucher
	users    map[string]User
	ranks    map[string]Rank
	tiers    []Tier
	carts    map[string][]CartLine
	orders   map[string]*Order
	credits  []Credit
	down     bool
	seq      int
}

func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		products: make(map[string]Product),
		vouchers: make(map[string]Voucher),
		users:    make(map[string]User),
		ranks:    make(map[string]Rank),
		carts:    make(map[string][]CartLine),
		orders:   make(map[string]*Order),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}", s.getProduct)
	mux.HandleFunc("GET /api/carts/user/{userId}", s.getCart)
	mux.HandleFunc("POST /api/carts", s.createCart)
	mux.HandleFunc("POST /api/carts/{userId}/items", s.addToCart)
	mux.HandleFunc("DELETE /api/carts/{userId}/items/{productId}", s.removeFromCart)
	mux.HandleFunc("GET /api/vouchers/{id}", s.getVoucher)
	mux.HandleFunc("POST /api/vouchers/validate", s.validateVoucher)
	mux.HandleFunc("GET /api/users/{userId}/rank", s.getRank)
	mux.HandleFunc("GET /api/ranks", s.listTiers)
	mux.HandleFunc("POST /api/users/{userId}/points", s.creditPoints)
	mux.HandleFunc("POST /api/orders", s.createOrder)
	mux.HandleFunc("GET /api/orders/{id}", s.getOrder)
	mux.HandleFunc("POST /api/orders/{id}/confirm-delivery", s.confirmDelivery)
	mux.HandleFunc("POST /api/payments", s.createPayment)
	mux.HandleFunc("POST /api/auth/login", s.login)

	s.Server = httptest.NewServer(s.availability(mux))
	t.Cleanup(s.Close)
	return s
}

// Seeding

func (s *Server) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Server) AddVoucher(v Voucher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vouchers[v.ID] = v
}

func (s *Server) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
}

func (s *Server) SetRank(userID string, r Rank) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranks[userID] = r
}

func (s *Server) SetTiers(tiers ...Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers = tiers
}

func (s *Server) SetCart(userID string, lines ...CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = append([]CartLine(nil), lines...)
}

// SetDown makes every endpoint answer 503 until cleared.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// Reset drops carts, orders, credits and any injected outage. The catalog and accounts stay.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = make(map[string][]CartLine)
	s.orders = make(map[string]*Order)
	s.credits = nil
	s.down = false
}

// Inspection

// CartOf returns the server cart as productId -> quantity; nil when the user has no cart.
func (s *Server) CartOf(userID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, ok := s.carts[userID]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ProductID] = l.Quantity
	}
	return out
}

func (s *Server) Credits() []Credit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Credit(nil), s.credits...)
}

func (s *Server) Order(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// Handlers

func (s *Server) availability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		down := s.down
		s.mu.Unlock()
		if down {
			writeError(w, http.StatusServiceUnavailable, "service unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.products[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	s.mu.Lock()
	lines, ok := s.carts[userID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cartBody(userID, lines))
}

func (s *Server) createCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	s.mu.Lock()
	lines, ok := s.carts[req.UserID]
	if !ok {
		lines = []CartLine{}
		s.carts[req.UserID] = lines
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, cartBody(req.UserID, lines))
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	var req CartLine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "invalid item")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[req.ProductID]; !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == req.ProductID {
			lines[i].Quantity += req.Quantity
			writeJSON(w, http.StatusOK, cartBody(userID, lines))
			return
		}
	}
	s.carts[userID] = append(lines, req)
	writeJSON(w, http.StatusOK, cartBody(userID, s.carts[userID]))
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID, productID := r.PathValue("userId"), r.PathValue("productId")

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[userID] = append(lines[:i:i], lines[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "item not in cart")
}

func (s *Server) getVoucher(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	v, ok := s.vouchers[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "voucher not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) validateVoucher(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VoucherID   string          `json:"voucherId"`
		OrderAmount decimal.Decimal `json:"orderAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	v, ok := s.vouchers[req.VoucherID]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusBadRequest, "Mã giảm giá không tồn tại")
		return
	}
	if v.RejectWith != "" {
		writeError(w, http.StatusBadRequest, v.RejectWith)
		return
	}
	if req.OrderAmount.LessThan(decimal.NewFromInt(v.MinPurchaseAmount)) {
		writeError(w, http.StatusBadRequest, "Đơn hàng chưa đạt giá trị tối thiểu")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) getRank(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rank, ok := s.ranks[r.PathValue("userId")]
	s.mu.Unlock()
	if !ok {
		rank = Rank{Rank: "MEMBER", Points: 0, Multiplier: "1"}
	}
	writeJSON(w, http.StatusOK, rank)
}

func (s *Server) listTiers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	tiers := append([]Tier{}, s.tiers...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": tiers})
}

func (s *Server) creditPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string          `json:"orderId"`
		Amount  decimal.Decimal `json:"amount"`
		Points  int64           `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	userID := r.PathValue("userId")

	s.mu.Lock()
	s.credits = append(s.credits, Credit{UserID: userID, OrderID: req.OrderID, Amount: req.Amount, Points: req.Points})
	rank := s.ranks[userID]
	rank.Points += req.Points
	s.ranks[userID] = rank
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string          `json:"userId"`
		Items         []CartLine      `json:"items"`
		TotalAmount   decimal.Decimal `json:"totalAmount"`
		VoucherID     string          `json:"voucherId"`
		PaymentMethod string          `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid order")
		return
	}

	s.mu.Lock()
	s.seq++
	o := &Order{
		ID:            "ord-" + strconv.Itoa(s.seq),
		UserID:        req.UserID,
		Status:        "PENDING",
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
		VoucherID:     req.VoucherID,
		Items:         req.Items,
	}
	s.orders[o.ID] = o
	// the backend empties ordered lines from the server cart
	ordered := make(map[string]bool, len(req.Items))
	for _, it := range req.Items {
		ordered[it.ProductID] = true
	}
	kept := s.carts[req.UserID][:0:0]
	for _, l := range s.carts[req.UserID] {
		if !ordered[l.ProductID] {
			kept = append(kept, l)
		}
	}
	if _, ok := s.carts[req.UserID]; ok {
		s.carts[req.UserID] = kept
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := s.Order(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) confirmDelivery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	o.Status = "DELIVERED"
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
		Method  string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	o, ok := s.orders[req.OrderID]
	if ok && req.Method != "COD" {
		o.Status = "PAID"
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	resp := map[string]any{"id": "pay-" + req.OrderID, "status": "PENDING"}
	if req.Method != "COD" {
		resp["status"] = "SUCCESS"
		resp["paymentUrl"] = s.URL + "/pay/" + req.OrderID
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func cartBody(userID string, lines []CartLine) map[string]any {
	if lines == nil {
		lines = []CartLine{}
	}
	return map[string]any{"id": "cart-" + userID, "userId": userID, "items": lines}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
