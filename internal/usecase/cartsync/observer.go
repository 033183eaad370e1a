package cartsync

import (
	"time"

	"fahasa-storefront/internal/domain/cart"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// SyncObserver receives reconciliation events for metrics.
type SyncObserver interface {
	BatchCompleted(size int, outcome string, elapsed time.Duration)
	MutationApplied(action cart.Action, err error)
	ImmediateAdd(err error)
	Refreshed(outcome string)
	Flushed(elapsed time.Duration)
	ActiveSessions(n int)
}

type NopObserver struct{}

func (NopObserver) BatchCompleted(int, string, time.Duration) {}
func (NopObserver) MutationApplied(cart.Action, error)       {}
func (NopObserver) ImmediateAdd(error)                       {}
func (NopObserver) Refreshed(string)                         {}
func (NopObserver) Flushed(time.Duration)                    {}
func (NopObserver) ActiveSessions(int)                       {}
