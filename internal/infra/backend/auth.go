package backend

import (
	"context"
	"net/http"

	"fahasa-storefront/internal/domain/auth"
	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/errs"
)

type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// Login checks credentials against the backend. Any 4xx other than a missing endpoint means the
// credentials were refused.
func (c *AuthClient) Login(ctx context.Context, creds auth.Credentials) (*user.Account, error) {
	var resp loginResponse
	err := c.client.do(ctx, post("/api/auth/login", "/api/auth/login", loginRequest{
		Email:    creds.Email().Value(),
		Password: creds.Password().Value(),
	}), &resp)
	if err != nil {
		status := infra.StatusOf(err)
		if status == http.StatusUnauthorized || status == http.StatusForbidden || infra.IsKind(err, infra.KindRejected) {
			return nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return nil, translate(err, nil)
	}

	userID := resp.UserID.String()
	if userID == "" {
		userID = resp.ID.String()
	}
	email := creds.Email()
	if resp.Email != "" {
		if parsed, err := user.NewEmail(resp.Email); err == nil {
			email = parsed
		}
	}
	account, err := user.NewAccount(userID, email, resp.FullName, user.RoleOrDefault(resp.Role))
	if err != nil {
		return nil, errs.Mark(infra.WrapRepoErr("invalid login payload", err, infra.KindDecodeFailure), errs.ErrNetworkFailure)
	}
	return account, nil
}
