package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// RoleOrDefault maps unknown or empty backend roles to a customer.
func RoleOrDefault(s string) Role {
	role, err := NewRole(s)
	if err != nil {
		return RoleCustomer
	}
	return role
}
