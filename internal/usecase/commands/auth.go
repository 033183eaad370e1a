package commands

import (
	"context"
	"log/slog"

	"fahasa-storefront/internal/domain/auth"
	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/pkg/jwt"
	"fahasa-storefront/internal/pkg/tokenhash"
	"fahasa-storefront/internal/usecase/cartsync"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrRefreshTokenReused   = errs.New("refresh token reused")
)

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	Account   *user.Account
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, sessionID string, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, s shared.Session) error
}

type authCommandsImpl struct {
	backend    shared.AuthBackend
	store      shared.AuthStateStore
	registry   *cartsync.Registry
	jwtService *jwt.Service
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAuthCommands(
	backend shared.AuthBackend,
	store shared.AuthStateStore,
	registry *cartsync.Registry,
	jwtService *jwt.Service,
	clk clock.Clock,
	logger *slog.Logger,
) AuthCommands {
	return &authCommandsImpl{
		backend:    backend,
		store:      store,
		registry:   registry,
		jwtService: jwtService,
		clock:      clk,
		logger:     logger,
	}
}

// Login checks credentials with the backend, records the session in the auth namespace and
// switches the session cart to the user's server cart.
func (a *authCommandsImpl) Login(ctx context.Context, sessionID string, req LoginRequest) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	account, err := a.backend.Login(ctx, credentials)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidCredentials) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, remoteErr(err, "login")
	}

	pair, err := a.issue(ctx, sessionID, sid, shared.AuthState{
		UserID:   account.ID(),
		Email:    account.Email().Value(),
		FullName: account.FullName(),
		Role:     account.Role().String(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := a.registry.Acquire(ctx, sessionID, account.ID()); err != nil {
		// login stands; the cart is retried on the next request
		a.logger.WarnContext(ctx, "failed to initialize cart after login", "session_id", sessionID, "user_id", account.ID(), "error", err)
	}

	return &LoginResult{Account: account, TokenPair: pair}, nil
}

// Refresh rotates the token pair. A refresh token whose id no longer matches the stored hash
// has been used before, so the session is logged out.
func (a *authCommandsImpl) Refresh(ctx context.Context, sessionID, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh || claims.SessionID.String() != sessionID {
		return nil, errs.ErrTokenValidation
	}

	state, err := a.store.LoadAuth(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load auth state"), errs.ErrStateStoreFailed)
	}
	if state == nil || state.UserID != claims.UserID {
		return nil, errs.ErrTokenValidation
	}
	if err := tokenhash.Compare(state.RefreshTokenHash, claims.ID); err != nil {
		a.logger.WarnContext(ctx, "refresh token reuse detected, revoking session", "session_id", sessionID, "user_id", claims.UserID)
		if derr := a.store.DeleteAuth(ctx, sessionID); derr != nil {
			a.logger.ErrorContext(ctx, "failed to revoke auth state", "session_id", sessionID, "error", derr)
		}
		return nil, errs.Mark(ErrRefreshTokenReused, errs.ErrTokenValidation)
	}

	return a.issue(ctx, sessionID, claims.SessionID, *state)
}

// Logout flushes the cart before reverting it to a guest cart and drops the auth record.
func (a *authCommandsImpl) Logout(ctx context.Context, s shared.Session) error {
	if e, ok := a.registry.Peek(s.ID); ok {
		if err := e.Logout(ctx); err != nil {
			a.logger.WarnContext(ctx, "cart logout failed", "session_id", s.ID, "error", err)
		}
	}
	if err := a.store.DeleteAuth(ctx, s.ID); err != nil {
		return errs.Mark(errs.Wrap(err, "delete auth state"), errs.ErrStateStoreFailed)
	}
	return nil
}

func (a *authCommandsImpl) issue(ctx context.Context, sessionID string, sid uuid.UUID, state shared.AuthState) (*TokenPair, error) {
	sub := jwt.Subject{UserID: state.UserID, SessionID: sid, Role: user.RoleOrDefault(state.Role)}

	accessToken, err := a.jwtService.GenerateAccessToken(sub)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenGeneration)
	}
	refreshToken, tokenID, err := a.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenGeneration)
	}
	hashed, err := tokenhash.Hash(tokenID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenGeneration)
	}

	state.RefreshTokenHash = hashed
	state.IssuedAt = a.clock.Now()
	if err := a.store.SaveAuth(ctx, sessionID, state); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "save auth state"), errs.ErrStateStoreFailed)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
