package response

import (
	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/usecase/queries"
)

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IssuedAt int64  `json:"issued_at,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

func FromAccount(a *user.Account) UserResponse {
	return UserResponse{
		ID:       a.ID(),
		Email:    a.Email().Value(),
		FullName: a.FullName(),
		Role:     a.Role().String(),
	}
}

func FromCurrentUser(v *queries.CurrentUserView) UserResponse {
	var r UserResponse
	mustCopy(&r, v)
	r.IssuedAt = unixOrZero(v.IssuedAt)
	return r
}
