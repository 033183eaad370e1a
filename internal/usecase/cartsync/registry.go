package cartsync

import (
	"context"
	"sync"
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	engine   *Engine
	lastUsed time.Time
}

// Registry maps session ids to engines. Engines are created on first use, hydrated from the
// cart namespace, and closed by the janitor once idle.
type Registry struct {
	deps     Deps
	idleTTL  time.Duration
	interval time.Duration

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(deps Deps, idleTTL, interval time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Registry{
		deps:     deps.withDefaults(),
		idleTTL:  idleTTL,
		interval: interval,
		entries:  make(map[string]*entry),
	}
}

// Acquire returns the session's engine aligned with the caller's identity: a newly authenticated
// user gets their server cart, an anonymous caller on an authenticated session gets a guest cart.
func (r *Registry) Acquire(ctx context.Context, sessionID, userID string) (*Engine, error) {
	e, err := r.engine(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current := e.UserID()
	switch {
	case userID != "" && current != userID:
		if err := e.InitializeForUser(ctx, userID); err != nil {
			r.deps.Logger.WarnContext(ctx, "cart initialization failed", "session_id", sessionID, "user_id", userID, "error", err)
		}
	case userID == "" && current != "":
		if err := e.Logout(ctx); err != nil {
			r.deps.Logger.WarnContext(ctx, "cart logout failed", "session_id", sessionID, "error", err)
		}
	}
	return e, nil
}

// Peek returns a live engine without creating one.
func (r *Registry) Peek(sessionID string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	ent.lastUsed = r.deps.Clock.Now()
	return ent.engine, true
}

func (r *Registry) engine(ctx context.Context, sessionID string) (*Engine, error) {
	if e, ok := r.Peek(sessionID); ok {
		return e, nil
	}

	v, err, _ := r.group.Do(sessionID, func() (any, error) {
		if e, ok := r.Peek(sessionID); ok {
			return e, nil
		}
		c, err := r.hydrate(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		e := NewEngine(sessionID, c, r.deps)

		r.mu.Lock()
		r.entries[sessionID] = &entry{engine: e, lastUsed: r.deps.Clock.Now()}
		n := len(r.entries)
		r.mu.Unlock()

		r.deps.Observer.ActiveSessions(n)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

func (r *Registry) hydrate(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if r.deps.Store == nil {
		return cart.New(""), nil
	}
	stored, err := r.deps.Store.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load guest cart"), errs.ErrStateStoreFailed)
	}
	if stored == nil {
		return cart.New(""), nil
	}
	return cart.Restore("", stored.Items, stored.Selected), nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run evicts idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(ctx)
		}
	}
}

// EvictIdle closes engines unused for longer than the idle TTL, flushing their pending work.
func (r *Registry) EvictIdle(ctx context.Context) int {
	cutoff := r.deps.Clock.Now().Add(-r.idleTTL)

	r.mu.Lock()
	var stale []*Engine
	for id, ent := range r.entries {
		if ent.lastUsed.Before(cutoff) {
			stale = append(stale, ent.engine)
			delete(r.entries, id)
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	for _, e := range stale {
		if err := e.Close(ctx); err != nil {
			r.deps.Logger.WarnContext(ctx, "flush on eviction failed", "session_id", e.SessionID(), "error", err)
		}
	}
	if len(stale) > 0 {
		r.deps.Observer.ActiveSessions(n)
		r.deps.Logger.DebugContext(ctx, "evicted idle cart sessions", "count", len(stale), "remaining", n)
	}
	return len(stale)
}

// CloseAll flushes and closes every engine. Used on shutdown.
func (r *Registry) CloseAll(ctx context.Context) error {
	r.mu.Lock()
	engines := make([]*Engine, 0, len(r.entries))
	for _, ent := range r.entries {
		engines = append(engines, ent.engine)
	}
	clear(r.entries)
	r.mu.Unlock()

	var g errgroup.Group
	for _, e := range engines {
		g.Go(func() error {
			if err := e.Close(ctx); err != nil {
				return errs.Wrap(err, "close session "+e.SessionID())
			}
			return nil
		})
	}
	err := g.Wait()
	r.deps.Observer.ActiveSessions(0)
	return err
}
