package user

import "time"

type User struct {
	ID              int64      `gorm:"primaryKey"`
	Email           string     `gorm:"column:email;uniqueIndex;not null"`
	Name            string     `gorm:"column:name;not null"`
	PasswordHash    string     `gorm:"column:password_hash;not null"`
	ChatColor       string     `gorm:"column:chat_color"`
	IsActive        bool       `gorm:"column:is_active;default:true"`
	EmailVerifiedAt *time.Time `gorm:"column:email_verified_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string    `gorm:"column:display_name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}

type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string    `gorm:"column:display_name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RoleUser is the user<->role join row. Users typically carry exactly one
// role, but the schema allows many.
type RoleUser struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	RoleID    int64     `gorm:"column:role_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (RoleUser) TableName() string {
	return "role_user"
}

// RolePermission is the role<->permission join row.
type RolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	RoleID       int64     `gorm:"column:role_id;not null;index"`
	PermissionID int64     `gorm:"column:permission_id;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (RolePermission) TableName() string {
	return "role_permission"
}
