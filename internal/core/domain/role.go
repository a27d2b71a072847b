package domain

// Role is the access level carried in an identity claim.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleShopOwner     Role = "shop_owner"
	RoleOperator      Role = "operator"
	RoleShopAssistant Role = "shop_assistant"
	RoleCustomer      Role = "customer"
)

var knownRoles = map[Role]struct{}{
	RoleSuperAdmin:    {},
	RoleShopOwner:     {},
	RoleOperator:      {},
	RoleShopAssistant: {},
	RoleCustomer:      {},
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// In reports whether r is a member of roles.
func (r Role) In(roles []Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}

// SelfServiceRoles are the roles an anonymous caller may request at signup.
var SelfServiceRoles = []Role{RoleShopAssistant, RoleOperator}
