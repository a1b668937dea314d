package user

import "time"

// AdminRoleDTO is the compact role shape embedded in admin listings.
type AdminRoleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// AdminUserDTO is a row in the admin user listing.
type AdminUserDTO struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Roles           []AdminRoleDTO `json:"roles"`
}

// AdminPermissionDTO is the permission shape on the user detail view.
type AdminPermissionDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type AdminRoleDetailDTO struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	DisplayName string               `json:"display_name"`
	Description string               `json:"description,omitempty"`
	Permissions []AdminPermissionDTO `json:"permissions"`
}

// AdminUserDetailDTO is the single-user view with roles and each role's
// permission set expanded.
type AdminUserDetailDTO struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	EmailVerifiedAt *time.Time           `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Roles           []AdminRoleDetailDTO `json:"roles"`
}

func ToAdminUserDTO(u *User) AdminUserDTO {
	roles := make([]AdminRoleDTO, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = AdminRoleDTO{ID: r.ID, Name: r.Name, DisplayName: r.DisplayName}
	}
	return AdminUserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		Roles:           roles,
	}
}

func ToAdminUserDetailDTO(u *User) AdminUserDetailDTO {
	roles := make([]AdminRoleDetailDTO, len(u.Roles))
	for i, r := range u.Roles {
		perms := make([]AdminPermissionDTO, len(r.Permissions))
		for j, p := range r.Permissions {
			perms[j] = AdminPermissionDTO{ID: p.ID, Name: p.Name, DisplayName: p.DisplayName}
		}
		roles[i] = AdminRoleDetailDTO{
			ID:          r.ID,
			Name:        r.Name,
			DisplayName: r.DisplayName,
			Description: r.Description,
			Permissions: perms,
		}
	}
	return AdminUserDetailDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		Roles:           roles,
	}
}
