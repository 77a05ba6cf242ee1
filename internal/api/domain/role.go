package domain

// Role is the coarse authorization role carried in the session token.
type Role string

const (
	RoleRoot  Role = "root"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Roles lists every role a session token may carry.
func Roles() []string {
	return []string{string(RoleRoot), string(RoleAdmin), string(RoleUser)}
}

// StaffRoles are the roles allowed into the admin route group.
func StaffRoles() []string {
	return []string{string(RoleRoot), string(RoleAdmin)}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleRoot, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// RequiresPhone reports whether logins for r must also present the phone
// number on record. Only root is exempt.
func (r Role) RequiresPhone() bool {
	return r != RoleRoot
}
