package auth

import "lms/internal/model"

// IsAdmin reports whether u holds the admin role.
func IsAdmin(u *model.User) bool {
	return u != nil && u.Role == model.RoleAdmin
}

// CanModify reports whether u may mutate a resource owned by ownerID.
// Admins may modify anything; everyone else only their own resources.
// All ownership checks in handlers and services go through here.
func CanModify(u *model.User, ownerID uint) bool {
	if u == nil {
		return false
	}
	return u.Role == model.RoleAdmin || u.ID == ownerID
}
