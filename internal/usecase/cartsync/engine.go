package cartsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

var ErrSessionClosed = errs.New("cart session closed")

const (
	defaultDebounce       = 2 * time.Second
	backgroundSyncTimeout = 30 * time.Second
	catalogFanOut         = 8
)

// Deps are the collaborators shared by every engine of a registry.
type Deps struct {
	Catalog    shared.Catalog
	Carts      shared.CartBackend
	Store      shared.CartStateStore
	Observer   SyncObserver
	Clock      clock.Clock
	Logger     *slog.Logger
	Debounce   time.Duration
	MaxNotices int
}

func (d Deps) withDefaults() Deps {
	if d.Observer == nil {
		d.Observer = NopObserver{}
	}
	if d.Clock == nil {
		d.Clock = clock.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Debounce <= 0 {
		d.Debounce = defaultDebounce
	}
	return d
}

// Engine owns one session's cart. Its methods are the only way to change the cart; network
// calls run outside the lock so readers never wait on the backend.
type Engine struct {
	sessionID string
	deps      Deps

	// persistMu orders guest-cart writes so the newest snapshot is stored last.
	persistMu sync.Mutex

	mu       sync.Mutex
	cart     *cart.Cart
	epoch    uint64
	inflight chan struct{}
	// sending holds the product ids of the batch in flight.
	sending map[string]struct{}
	timer   clock.Timer
	notices  noticeLog
	closed   bool
}

func NewEngine(sessionID string, initial *cart.Cart, deps Deps) *Engine {
	deps = deps.withDefaults()
	if initial == nil {
		initial = cart.New("")
	}
	return &Engine{
		sessionID: sessionID,
		deps:      deps,
		cart:      initial,
		notices:   newNoticeLog(deps.MaxNotices),
	}
}

func (e *Engine) SessionID() string { return e.sessionID }

func (e *Engine) UserID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.UserID()
}

func (e *Engine) Snapshot() cart.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Snapshot()
}

func (e *Engine) DrainNotices() []Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notices.drain()
}

// AddItem prices the line from the catalog. Guest carts are persisted; authenticated carts are
// pushed to the backend right away and keep the optimistic line when that fails.
func (e *Engine) AddItem(ctx context.Context, productID string, qty int) (cart.LineItem, error) {
	if qty < 1 {
		return cart.LineItem{}, cart.ErrInvalidQuantity
	}
	product, err := e.deps.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return cart.LineItem{}, err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return cart.LineItem{}, ErrSessionClosed
	}
	item, err := e.cart.Add(product, qty)
	if err != nil {
		e.mu.Unlock()
		return cart.LineItem{}, err
	}
	userID := e.cart.UserID()
	if userID != "" {
		// The queued batch must land on the merged quantity, not an older one. The same holds for
		// a batch already in flight: its remove may reach the server after the add below.
		_, queued := e.cart.PendingFor(productID)
		_, sending := e.sending[productID]
		if queued || sending {
			e.cart.RecordPending(cart.SetQuantity(productID, item.Quantity))
			e.scheduleLocked()
		}
	}
	e.mu.Unlock()

	if userID == "" {
		e.persist(ctx)
		return item, nil
	}

	err = e.deps.Carts.AddToCart(ctx, userID, productID, qty)
	e.deps.Observer.ImmediateAdd(err)
	if err != nil {
		e.deps.Logger.WarnContext(ctx, "immediate cart add failed",
			"session_id", e.sessionID, "user_id", userID, "product_id", productID, "error", err)
		e.notify(NoticeNetworkFailure, msgAddFailed)
		return item, errs.Mark(errs.Wrap(err, "add to server cart"), errs.ErrNetworkFailure)
	}
	return item, nil
}

func (e *Engine) SetQuantity(ctx context.Context, productID string, n int) (cart.LineItem, error) {
	var item cart.LineItem
	err := e.apply(ctx, func(c *cart.Cart) ([]cart.Mutation, error) {
		updated, err := c.SetQuantity(productID, n)
		if err != nil {
			return nil, err
		}
		item = updated
		return []cart.Mutation{cart.SetQuantity(productID, n)}, nil
	})
	return item, err
}

func (e *Engine) RemoveItem(ctx context.Context, productID string) error {
	return e.apply(ctx, func(c *cart.Cart) ([]cart.Mutation, error) {
		if err := c.Remove(productID); err != nil {
			return nil, err
		}
		return []cart.Mutation{cart.Remove(productID)}, nil
	})
}

func (e *Engine) Select(ctx context.Context, productID string) error {
	return e.apply(ctx, func(c *cart.Cart) ([]cart.Mutation, error) {
		return nil, c.Select(productID)
	})
}

func (e *Engine) Deselect(ctx context.Context, productID string) error {
	return e.apply(ctx, func(c *cart.Cart) ([]cart.Mutation, error) {
		return nil, c.Deselect(productID)
	})
}

func (e *Engine) SelectAll(ctx context.Context, selected bool) error {
	return e.apply(ctx, func(c *cart.Cart) ([]cart.Mutation, error) {
		if selected {
			c.SelectAll()
		} else {
			c.DeselectAll()
		}
		return nil, nil
	})
}

// apply runs fn under the lock. Returned mutations are queued for authenticated carts;
// guest carts are persisted instead.
func (e *Engine) apply(ctx context.Context, fn func(c *cart.Cart) ([]cart.Mutation, error)) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrSessionClosed
	}
	mutations, err := fn(e.cart)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	guest := e.cart.IsGuest()
	if !guest && len(mutations) > 0 {
		for _, m := range mutations {
			e.cart.RecordPending(m)
		}
		e.scheduleLocked()
	}
	e.mu.Unlock()

	if guest {
		e.persist(ctx)
	}
	return nil
}

// SyncPending sends the pending set as one batch. It is a no-op while another batch is in flight;
// mutations recorded meanwhile wait for the next one. A failed batch is not retried: the cart is
// refreshed from the server instead.
func (e *Engine) SyncPending(ctx context.Context) error {
	e.mu.Lock()
	if e.inflight != nil || e.cart.IsGuest() || !e.cart.HasPending() {
		e.mu.Unlock()
		return nil
	}
	batch := e.cart.TakePending()
	userID := e.cart.UserID()
	done := make(chan struct{})
	e.inflight = done
	e.sending = make(map[string]struct{}, len(batch))
	for _, m := range batch {
		e.sending[m.ProductID] = struct{}{}
	}
	e.cart.SetSyncState(cart.SyncSyncing)
	e.mu.Unlock()

	start := time.Now()
	err := e.dispatch(ctx, userID, batch)
	var refreshErr error
	if err != nil {
		e.deps.Logger.WarnContext(ctx, "cart sync batch failed, refreshing from server",
			"session_id", e.sessionID, "user_id", userID, "batch_size", len(batch), "error", err)
		e.notify(NoticeSyncDivergence, msgSyncDiverged)
		refreshErr = e.RefreshFromServer(ctx)
	}

	e.mu.Lock()
	e.inflight = nil
	e.sending = nil
	close(done)
	if e.cart.UserID() == userID {
		if err != nil && refreshErr != nil {
			e.cart.SetSyncState(cart.SyncError)
		} else {
			e.cart.SetSyncState(cart.SyncIdle)
		}
		if e.cart.HasPending() {
			e.scheduleLocked()
		}
	}
	e.mu.Unlock()

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	e.deps.Observer.BatchCompleted(len(batch), outcome, time.Since(start))
	if err != nil {
		return errs.Mark(err, errs.ErrSyncDivergence)
	}
	return nil
}

// dispatch sends every mutation concurrently and reports the first failure after all finish.
func (e *Engine) dispatch(ctx context.Context, userID string, batch []cart.Mutation) error {
	var g errgroup.Group
	for _, m := range batch {
		g.Go(func() error {
			err := e.send(ctx, userID, m)
			e.deps.Observer.MutationApplied(m.Action, err)
			if err != nil {
				return errs.Wrap(err, m.Action.String()+" "+m.ProductID)
			}
			return nil
		})
	}
	return g.Wait()
}

// send maps a mutation onto the backend. A quantity change is remove-then-add, which is not
// atomic: a failure between the two leaves the line removed until the next refresh.
func (e *Engine) send(ctx context.Context, userID string, m cart.Mutation) error {
	switch m.Action {
	case cart.ActionRemove:
		return e.removeRemote(ctx, userID, m.ProductID)
	case cart.ActionSetQuantity:
		if err := e.removeRemote(ctx, userID, m.ProductID); err != nil {
			return err
		}
		return e.deps.Carts.AddToCart(ctx, userID, m.ProductID, m.Quantity)
	default:
		return errs.New("unknown cart action " + m.Action.String())
	}
}

func (e *Engine) removeRemote(ctx context.Context, userID, productID string) error {
	err := e.deps.Carts.RemoveFromCart(ctx, userID, productID)
	if errs.Is(err, errs.ErrProductNotInCart) {
		return nil
	}
	return err
}

// Flush cancels the debounce timer, waits for any batch in flight and then syncs what is left.
func (e *Engine) Flush(ctx context.Context) error {
	start := time.Now()
	defer func() { e.deps.Observer.Flushed(time.Since(start)) }()

	for {
		e.mu.Lock()
		e.stopTimerLocked()
		inflight := e.inflight
		e.mu.Unlock()
		if inflight == nil {
			break
		}
		select {
		case <-inflight:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return e.SyncPending(ctx)
}

// RefreshFromServer replaces the items with the server cart and lays still-pending intent on top.
// Results are dropped when the cart changed identity or was cleared while the request ran.
func (e *Engine) RefreshFromServer(ctx context.Context) error {
	e.mu.Lock()
	userID, epoch := e.cart.UserID(), e.epoch
	e.mu.Unlock()
	if userID == "" {
		return nil
	}

	sc, err := e.deps.Carts.GetCart(ctx, userID)
	if errs.Is(err, shared.ErrCartNotFound) {
		sc, err = &shared.ServerCart{UserID: userID}, nil
	}
	if err != nil {
		return e.refreshFailed(ctx, userID, epoch, err)
	}
	return e.applyServerCart(ctx, userID, epoch, sc)
}

func (e *Engine) applyServerCart(ctx context.Context, userID string, epoch uint64, sc *shared.ServerCart) error {
	items, err := e.loadLines(ctx, sc.Lines)
	if err != nil {
		return e.refreshFailed(ctx, userID, epoch, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch != epoch || e.cart.UserID() != userID {
		e.deps.Observer.Refreshed(OutcomeStale)
		e.deps.Logger.DebugContext(ctx, "discarding stale cart refresh", "session_id", e.sessionID, "user_id", userID)
		return nil
	}
	e.cart.Replace(items)
	e.cart.ReapplyPending()
	if e.inflight == nil {
		e.cart.SetSyncState(cart.SyncIdle)
	}
	e.deps.Observer.Refreshed(OutcomeSuccess)
	return nil
}

func (e *Engine) refreshFailed(ctx context.Context, userID string, epoch uint64, err error) error {
	e.deps.Logger.WarnContext(ctx, "cart refresh failed", "session_id", e.sessionID, "user_id", userID, "error", err)
	e.deps.Observer.Refreshed(OutcomeFailure)

	e.mu.Lock()
	if e.epoch == epoch && e.inflight == nil {
		e.cart.SetSyncState(cart.SyncError)
	}
	e.notices.push(Notice{Kind: NoticeNetworkFailure, Message: msgRefreshFailed, At: e.deps.Clock.Now()})
	e.mu.Unlock()
	return errs.Mark(errs.Wrap(err, "refresh cart"), errs.ErrNetworkFailure)
}

// loadLines prices server lines from the catalog. Products the catalog no longer knows are dropped.
func (e *Engine) loadLines(ctx context.Context, lines []shared.ServerCartLine) ([]cart.LineItem, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := e.fetchProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]cart.LineItem, 0, len(lines))
	for _, line := range lines {
		if p, ok := products[line.ProductID]; ok {
			out = append(out, cart.ServerLineItem(p, line.Quantity))
		}
	}
	return out, nil
}

// fetchProducts looks ids up in the catalog concurrently. Unknown products are absent from the
// result rather than an error.
func (e *Engine) fetchProducts(ctx context.Context, ids []string) (map[string]cart.Product, error) {
	found := make([]*cart.Product, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(catalogFanOut)
	for i, id := range ids {
		g.Go(func() error {
			p, err := e.deps.Catalog.GetProduct(gctx, id)
			if errs.Is(err, errs.ErrProductNotFound) {
				e.deps.Logger.WarnContext(ctx, "cart references unknown product", "session_id", e.sessionID, "product_id", id)
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]cart.Product, len(ids))
	for i, p := range found {
		if p != nil {
			out[ids[i]] = *p
		}
	}
	return out, nil
}

// Reprice reloads catalog prices and stock for every line so checkout never works from cached
// figures. Authenticated carts are refreshed from the server. Guest lines keep their quantities,
// lose products the catalog no longer has, and are persisted again.
func (e *Engine) Reprice(ctx context.Context) (cart.Snapshot, error) {
	e.mu.Lock()
	userID, epoch := e.cart.UserID(), e.epoch
	items := e.cart.Items()
	e.mu.Unlock()

	if userID != "" {
		if err := e.RefreshFromServer(ctx); err != nil {
			return cart.Snapshot{}, err
		}
		return e.Snapshot(), nil
	}
	if len(items) == 0 {
		return e.Snapshot(), nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := e.fetchProducts(ctx, ids)
	if err != nil {
		e.notify(NoticeNetworkFailure, msgRefreshFailed)
		return cart.Snapshot{}, errs.Mark(errs.Wrap(err, "reprice guest cart"), errs.ErrNetworkFailure)
	}

	e.mu.Lock()
	if e.epoch == epoch && e.cart.IsGuest() {
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				_ = e.cart.Remove(id)
			}
		}
		e.cart.Reprice(products)
	}
	e.mu.Unlock()

	e.persist(ctx)
	return e.Snapshot(), nil
}

// InitializeForUser switches the session to userID's server cart, creating it when missing.
// Any guest cart is dropped: the server cart wins.
func (e *Engine) InitializeForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.ErrNotAuthenticated
	}
	current := e.UserID()
	if current == userID {
		return e.RefreshFromServer(ctx)
	}
	if current != "" {
		if err := e.Flush(ctx); err != nil {
			e.deps.Logger.WarnContext(ctx, "flush before user switch failed", "session_id", e.sessionID, "error", err)
		}
	}

	sc, err := e.deps.Carts.GetCart(ctx, userID)
	if errs.Is(err, shared.ErrCartNotFound) {
		sc, err = e.deps.Carts.CreateCart(ctx, userID)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrSessionClosed
	}
	e.stopTimerLocked()
	e.epoch++
	epoch := e.epoch
	discarded := 0
	if e.cart.IsGuest() {
		discarded = e.cart.Len()
	}
	e.cart = cart.New(userID)
	if err != nil {
		e.cart.SetSyncState(cart.SyncError)
		e.notices.push(Notice{Kind: NoticeNetworkFailure, Message: msgInitFailed, At: e.deps.Clock.Now()})
	}
	e.mu.Unlock()

	if discarded > 0 {
		e.deps.Logger.InfoContext(ctx, "guest cart replaced by server cart",
			"session_id", e.sessionID, "user_id", userID, "discarded_items", discarded)
	}
	if e.deps.Store != nil {
		if derr := e.deps.Store.DeleteCart(ctx, e.sessionID); derr != nil {
			e.deps.Logger.WarnContext(ctx, "failed to delete guest cart", "session_id", e.sessionID, "error", derr)
		}
	}
	if err != nil {
		return errs.Mark(errs.Wrap(err, "initialize server cart"), errs.ErrNetworkFailure)
	}
	if sc == nil {
		sc = &shared.ServerCart{UserID: userID}
	}
	return e.applyServerCart(ctx, userID, epoch, sc)
}

// Logout flushes pending work and leaves an empty guest cart behind.
func (e *Engine) Logout(ctx context.Context) error {
	if err := e.Flush(ctx); err != nil {
		e.deps.Logger.WarnContext(ctx, "flush on logout failed", "session_id", e.sessionID, "error", err)
	}
	e.mu.Lock()
	e.stopTimerLocked()
	e.epoch++
	e.cart = cart.New("")
	e.mu.Unlock()
	return nil
}

// Clear empties the cart. For authenticated carts every line is removed on the server too.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrSessionClosed
	}
	e.epoch++
	guest := e.cart.IsGuest()
	if !guest {
		for _, item := range e.cart.Items() {
			e.cart.RecordPending(cart.Remove(item.ProductID))
		}
	}
	e.cart.Clear()
	e.mu.Unlock()

	if guest {
		e.persist(ctx)
		return nil
	}
	return e.Flush(ctx)
}

// RemovePurchased drops ordered lines after a successful order.
func (e *Engine) RemovePurchased(ctx context.Context, productIDs []string) error {
	e.mu.Lock()
	guest := e.cart.IsGuest()
	for _, id := range productIDs {
		if err := e.cart.Remove(id); err != nil {
			continue
		}
		if !guest {
			e.cart.RecordPending(cart.Remove(id))
		}
	}
	e.mu.Unlock()

	if guest {
		e.persist(ctx)
		return nil
	}
	return e.Flush(ctx)
}

// Close flushes and retires the engine. Later mutations fail with ErrSessionClosed.
func (e *Engine) Close(ctx context.Context) error {
	err := e.Flush(ctx)
	e.mu.Lock()
	e.closed = true
	e.stopTimerLocked()
	e.epoch++
	e.mu.Unlock()
	return err
}

func (e *Engine) scheduleLocked() {
	if e.closed {
		return
	}
	if e.timer == nil {
		e.timer = e.deps.Clock.AfterFunc(e.deps.Debounce, e.onDebounce)
		return
	}
	e.timer.Reset(e.deps.Debounce)
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

func (e *Engine) onDebounce() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundSyncTimeout)
	defer cancel()
	_ = e.SyncPending(ctx)
}

func (e *Engine) notify(kind NoticeKind, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notices.push(Notice{Kind: kind, Message: message, At: e.deps.Clock.Now()})
}

func (e *Engine) persist(ctx context.Context) {
	if e.deps.Store == nil {
		return
	}
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	snap := e.Snapshot()
	if snap.UserID != "" {
		return
	}

	var err error
	if len(snap.Items) == 0 {
		err = e.deps.Store.DeleteCart(ctx, e.sessionID)
	} else {
		err = e.deps.Store.SaveCart(ctx, e.sessionID, shared.StoredCart{
			Items:     snap.Items,
			Selected:  snap.Selected,
			UpdatedAt: e.deps.Clock.Now(),
		})
	}
	if err != nil {
		e.deps.Logger.WarnContext(ctx, "failed to persist guest cart", "session_id", e.sessionID, "error", err)
	}
}
