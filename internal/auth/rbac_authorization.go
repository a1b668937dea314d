package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/chat-management/internal"
)

// Requirement names either a role set (any-of) or a single permission. Exactly
// one side should be populated.
type Requirement struct {
	AnyRole    []string
	Permission string
}

func RequireAnyRoleOf(roles ...string) Requirement {
	return Requirement{AnyRole: roles}
}

func RequirePermissionOf(permission string) Requirement {
	return Requirement{Permission: permission}
}

// RBACAuthorization guards operations with role/permission checks. It fails
// closed: a missing user or an unsatisfied requirement denies the request, and
// the decision is final for the current call.
type RBACAuthorization struct {
	checker PermissionChecker
	logger  *slog.Logger
}

func NewRBACAuthorization(checker PermissionChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		checker: checker,
		logger:  logger,
	}
}

// Authorize decides whether u satisfies req. Returns nil on success, an
// UNAUTHORIZED error for a missing caller, and a FORBIDDEN error otherwise.
func (ra *RBACAuthorization) Authorize(u *User, req Requirement) *internal.AppError {
	if u == nil {
		return internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken)
	}

	if len(req.AnyRole) > 0 {
		if ra.checker.HasAnyRole(u.Roles, req.AnyRole) {
			return nil
		}
		ra.logger.Warn("access denied: missing required role",
			"user_id", u.ID,
			"required_roles", req.AnyRole,
			"user_roles", u.Roles)
		return internal.NewForbiddenError("insufficient role", internal.ErrCodeMissingRole)
	}

	if req.Permission != "" {
		if ra.checker.HasPermission(u.Permissions, req.Permission) {
			return nil
		}
		ra.logger.Warn("access denied: missing required permission",
			"user_id", u.ID,
			"required_permission", req.Permission,
			"user_permissions", u.Permissions)
		return internal.NewForbiddenError("insufficient permissions", internal.ErrCodeMissingPermission)
	}

	// An empty requirement grants nothing.
	return internal.NewForbiddenError("no requirement satisfied", internal.ErrCodeMissingPermission)
}

func (ra *RBACAuthorization) require(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if appErr := ra.Authorize(u, req); appErr != nil {
				http.Error(w, "Forbidden: "+appErr.Message, appErr.StatusCode)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole builds middleware that admits callers holding at least one
// of the named roles.
func (ra *RBACAuthorization) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return ra.require(RequireAnyRoleOf(roles...))
}

// RequirePermission builds middleware that admits callers whose role set
// grants the named permission.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return ra.require(RequirePermissionOf(permission))
}

// RequireDashboardAccess gates the dashboard and statistics endpoints.
func (ra *RBACAuthorization) RequireDashboardAccess() func(http.Handler) http.Handler {
	return ra.RequireAnyRole(RoleSuperAdmin, RoleAdmin, RoleModerator)
}

// RequireUserManagement gates the admin user endpoints.
func (ra *RBACAuthorization) RequireUserManagement() func(http.Handler) http.Handler {
	return ra.RequireAnyRole(RoleSuperAdmin, RoleAdmin)
}
