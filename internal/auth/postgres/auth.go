package postgres

import (
	"database/sql"
	"fmt"

	"github.com/frahmantamala/chat-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForUsername(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("user not found")
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

// GetUserWithAccess loads identity plus the flattened role-name set and the
// union of permissions those roles grant.
func (r *Repository) GetUserWithAccess(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, name, chat_color FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.ChatColor); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	roleQuery := `SELECT r.name
	             FROM roles r
	             JOIN role_user ru ON r.id = ru.role_id
	             WHERE ru.user_id = ?`

	rows, err := r.db.Raw(roleQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var roleName string
		if err := rows.Scan(&roleName); err != nil {
			return nil, err
		}
		roles = append(roles, roleName)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	permQuery := `SELECT DISTINCT p.name
	             FROM permissions p
	             JOIN role_permission rp ON p.id = rp.permission_id
	             JOIN role_user ru ON rp.role_id = ru.role_id
	             WHERE ru.user_id = ?`

	permRows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer permRows.Close()

	var permissions []string
	for permRows.Next() {
		var permName string
		if err := permRows.Scan(&permName); err != nil {
			return nil, err
		}
		permissions = append(permissions, permName)
	}
	if err := permRows.Err(); err != nil {
		return nil, err
	}

	user.Roles = roles
	user.Permissions = permissions
	return &user, nil
}
