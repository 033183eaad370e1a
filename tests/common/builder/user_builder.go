//go:build unit || e2e

package builder

import (
	"time"

	"fahasa-storefront/internal/domain/user"
	"fahasa-storefront/internal/usecase/shared"
)

type UserBuilder struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       "user-1",
		Email:    "test@example.com",
		FullName: "Nguyễn Văn A",
		Role:     "customer",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.Account, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewAccount(u.ID, email, u.FullName, role)
}

func (u *UserBuilder) MustBuild() *user.Account {
	account, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return account
}

func (u *UserBuilder) BuildAuthState(issuedAt time.Time) shared.AuthState {
	return shared.AuthState{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		IssuedAt: issuedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id string) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	return u
}
