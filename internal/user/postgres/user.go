package postgres

import (
	"github.com/frahmantamala/chat-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

type userRoleRow struct {
	UserID      int64
	ID          int64
	Name        string
	DisplayName string
	Description string
}

type rolePermissionRow struct {
	RoleID      int64
	ID          int64
	Name        string
	DisplayName string
	Description string
}

// GetAllWithRoles returns every user with compact role rows attached.
func (r *UserRepository) GetAllWithRoles() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Table("users").
		Select("id, email, name, chat_color, is_active, email_verified_at, created_at, updated_at").
		Order("created_at ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []*user.User{}, nil
	}

	ids := make([]int64, len(users))
	byID := make(map[int64]*user.User, len(users))
	for i, u := range users {
		ids[i] = u.ID
		byID[u.ID] = u
	}

	var roleRows []userRoleRow
	err = r.db.Table("roles").
		Select("role_user.user_id AS user_id, roles.id, roles.name, roles.display_name, roles.description").
		Joins("JOIN role_user ON role_user.role_id = roles.id").
		Where("role_user.user_id IN ?", ids).
		Scan(&roleRows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range roleRows {
		if u, ok := byID[row.UserID]; ok {
			u.Roles = append(u.Roles, user.Role{
				ID:          row.ID,
				Name:        row.Name,
				DisplayName: row.DisplayName,
				Description: row.Description,
			})
		}
	}

	return users, nil
}

// GetByIDWithRoles returns one user with roles and each role's permissions.
func (r *UserRepository) GetByIDWithRoles(userID int64) (*user.User, error) {
	var u user.User
	err := r.db.Table("users").
		Select("id, email, name, chat_color, is_active, email_verified_at, created_at, updated_at").
		Where("id = ?", userID).
		Take(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	var roleRows []userRoleRow
	err = r.db.Table("roles").
		Select("role_user.user_id AS user_id, roles.id, roles.name, roles.display_name, roles.description").
		Joins("JOIN role_user ON role_user.role_id = roles.id").
		Where("role_user.user_id = ?", userID).
		Scan(&roleRows).Error
	if err != nil {
		return nil, err
	}

	roleIDs := make([]int64, len(roleRows))
	for i, row := range roleRows {
		roleIDs[i] = row.ID
		u.Roles = append(u.Roles, user.Role{
			ID:          row.ID,
			Name:        row.Name,
			DisplayName: row.DisplayName,
			Description: row.Description,
		})
	}

	if len(roleIDs) > 0 {
		var permRows []rolePermissionRow
		err = r.db.Table("permissions").
			Select("role_permission.role_id AS role_id, permissions.id, permissions.name, permissions.display_name, permissions.description").
			Joins("JOIN role_permission ON role_permission.permission_id = permissions.id").
			Where("role_permission.role_id IN ?", roleIDs).
			Scan(&permRows).Error
		if err != nil {
			return nil, err
		}

		for _, row := range permRows {
			for i := range u.Roles {
				if u.Roles[i].ID == row.RoleID {
					u.Roles[i].Permissions = append(u.Roles[i].Permissions, user.Permission{
						ID:          row.ID,
						Name:        row.Name,
						DisplayName: row.DisplayName,
						Description: row.Description,
					})
				}
			}
		}
	}

	return &u, nil
}
