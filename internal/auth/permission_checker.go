package auth

import "context"

// PermissionChecker answers role/permission questions as pure functions of
// the caller's loaded role and permission sets; no store access at check time.
type PermissionChecker interface {
	HasAnyRole(userRoles []string, requiredRoles []string) bool
	HasPermission(userPermissions []string, permission string) bool
	CanViewDashboard(userRoles []string) bool
	CanManageUsers(userRoles []string) bool
	CanDeleteMessages(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasAnyRoleCtx(ctx context.Context, userRoles []string, requiredRoles []string) (bool, error) {
	return c.HasAnyRole(userRoles, requiredRoles), nil
}

func (c *DefaultPermissionChecker) HasPermissionCtx(ctx context.Context, userPermissions []string, permission string) (bool, error) {
	return c.HasPermission(userPermissions, permission), nil
}

func (c *DefaultPermissionChecker) HasAnyRole(userRoles []string, requiredRoles []string) bool {
	for _, userRole := range userRoles {
		for _, required := range requiredRoles {
			if userRole == required {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) HasPermission(userPermissions []string, permission string) bool {
	for _, p := range userPermissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (c *DefaultPermissionChecker) CanViewDashboard(userRoles []string) bool {
	return c.HasAnyRole(userRoles, []string{RoleSuperAdmin, RoleAdmin, RoleModerator})
}

func (c *DefaultPermissionChecker) CanManageUsers(userRoles []string) bool {
	return c.HasAnyRole(userRoles, []string{RoleSuperAdmin, RoleAdmin})
}

func (c *DefaultPermissionChecker) CanDeleteMessages(userPermissions []string) bool {
	return c.HasPermission(userPermissions, PermissionDeleteChatMessage)
}
