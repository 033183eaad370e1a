package queries

import (
	"context"

	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"
)

var ErrUserNotFound = errs.New("user not found")

type UserQueries interface {
	GetCurrentUser(ctx context.Context, sessionID, userID string) (*CurrentUserView, error)
}

type userQueriesImpl struct {
	store shared.AuthStateStore
}

func NewUserQueries(store shared.AuthStateStore) UserQueries {
	return &userQueriesImpl{store: store}
}

// GetCurrentUser reads the session's auth record. A record for another user means the token and
// the session disagree, which is treated as not logged in.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, sessionID, userID string) (*CurrentUserView, error) {
	if userID == "" {
		return nil, errs.ErrNotAuthenticated
	}
	state, err := q.store.LoadAuth(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load auth state"), errs.ErrStateStoreFailed)
	}
	if state == nil || state.UserID != userID {
		return nil, ErrUserNotFound
	}

	return &CurrentUserView{
		ID:       state.UserID,
		Email:    state.Email,
		FullName: state.FullName,
		Role:     state.Role,
		IssuedAt: state.IssuedAt,
	}, nil
}
