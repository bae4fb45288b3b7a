package policy

import "github.com/magabrotheeeer/grolo-gateway/internal/models"

// CheckPromote проверяет повышение target до admin.
// Переход возможен только user -> admin.
func CheckPromote(target models.UserInfo, permissions models.AdminPermissionSet) error {
	if target.Role.IsAdmin() {
		return permissionDenied("user %s is already an admin", target.Username)
	}
	if !permissions.CanPromote {
		return permissionDenied("not allowed to promote users")
	}
	return nil
}

// CheckDemote проверяет понижение target до user.
// super_admin не понижается никогда, понизить самого себя нельзя.
func CheckDemote(caller string, target models.UserInfo, permissions models.AdminPermissionSet) error {
	if caller == target.Username {
		return selfActionForbidden("cannot demote yourself")
	}
	if target.Role.IsSuperAdmin() {
		return permissionDenied("super admin %s cannot be demoted", target.Username)
	}
	if !target.Role.IsAdmin() {
		return permissionDenied("user %s is not an admin", target.Username)
	}
	if !permissions.CanDemote {
		return permissionDenied("not allowed to demote users")
	}
	return nil
}

// CheckAdminPanel проверяет доступ к спискам панели администратора.
func CheckAdminPanel(permissions models.AdminPermissionSet) error {
	if !permissions.CanViewAdminPanel {
		return permissionDenied("admin panel is not available")
	}
	return nil
}
