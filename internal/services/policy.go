package services

import "repaircafe_server/internal/models"

// CanManageUsers reports whether the acting user may create, edit or delete
// accounts. Only active admins qualify.
func CanManageUsers(actor *models.User) bool {
	return actor != nil && actor.IsActive && actor.IsAdmin
}

// CanEditAdminFlag reports whether the acting user may change the admin flag
// on the target account. Changing your own flag is never allowed; the edit
// itself still goes through, the flag is just left untouched.
func CanEditAdminFlag(actor *models.User, targetID uint) bool {
	return actor != nil && actor.ID != targetID
}

// CanDeleteUser reports whether the acting user may delete the target
// account. Deleting yourself is forbidden regardless of role.
func CanDeleteUser(actor *models.User, targetID uint) bool {
	if !CanManageUsers(actor) {
		return false
	}
	return actor.ID != targetID
}
