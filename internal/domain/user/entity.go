package user

import "strings"

// Account is the authenticated customer as reported by the backend. Ids are opaque backend strings.
type Account struct {
	id       string
	email    Email
	fullName string
	role     Role
}

func NewAccount(id string, email Email, fullName string, role Role) (*Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidUserID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Account{
		id:       id,
		email:    email,
		fullName: strings.TrimSpace(fullName),
		role:     role,
	}, nil
}

func (a *Account) ID() string       { return a.id }
func (a *Account) Email() Email     { return a.email }
func (a *Account) FullName() string { return a.fullName }
func (a *Account) Role() Role       { return a.role }
func (a *Account) IsAdmin() bool    { return a.role == RoleAdmin }
