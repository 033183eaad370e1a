package request

import (
	"fahasa-storefront/internal/usecase/commands"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToCommand() commands.LoginRequest {
	return commands.LoginRequest{Email: r.Email, Password: r.Password}
}

// RefreshRequest is optional: the refresh_token cookie is used when the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
