package auth

type Role string

const (
	RoleCustomer Role = "customer"
	RoleChef     Role = "chef"
	RoleCourier  Role = "delivery"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleChef, RoleCourier, RoleAdmin:
		return true
	}
	return false
}

// Principal is the identity attached to a request after token verification.
// SubjectID is zero for the configured fallback admin.
type Principal struct {
	Role      Role
	SubjectID uint
}
