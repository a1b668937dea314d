package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/chat-management/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// rolePermissions is the canonical grant matrix. Seeding is idempotent, so
// rerunning after adding a permission here backfills the grants.
var rolePermissions = map[string][]string{
	auth.RoleSuperAdmin: {
		auth.PermissionViewChat,
		auth.PermissionSendChatMessage,
		auth.PermissionDeleteChatMessage,
		auth.PermissionEditUser,
		auth.PermissionDeleteUser,
		auth.PermissionEditChatConfig,
		auth.PermissionEditSystemConfig,
	},
	auth.RoleAdmin: {
		auth.PermissionViewChat,
		auth.PermissionSendChatMessage,
		auth.PermissionDeleteChatMessage,
		auth.PermissionEditUser,
		auth.PermissionDeleteUser,
		auth.PermissionEditChatConfig,
	},
	auth.RoleModerator: {
		auth.PermissionViewChat,
		auth.PermissionSendChatMessage,
		auth.PermissionDeleteChatMessage,
		auth.PermissionEditUser,
	},
	auth.RoleUser: {
		auth.PermissionViewChat,
		auth.PermissionSendChatMessage,
	},
}

var permissionDescriptions = map[string]string{
	auth.PermissionViewChat:          "Can view the chat feed",
	auth.PermissionSendChatMessage:   "Can post chat messages",
	auth.PermissionDeleteChatMessage: "Can delete chat messages",
	auth.PermissionEditUser:          "Can edit user accounts",
	auth.PermissionDeleteUser:        "Can delete user accounts",
	auth.PermissionEditChatConfig:    "Can change chat configuration",
	auth.PermissionEditSystemConfig:  "Can change system configuration",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed roles, permissions, and a bootstrap admin user",
	Long:  `Seed the role and permission tables plus an initial super admin account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"role_permission", "role_user", "permissions", "roles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing role and permission data")
		}

		for name, desc := range permissionDescriptions {
			if err := ensurePermission(db, name, desc); err != nil {
				log.Fatalf("failed to seed permission %s: %v", name, err)
			}
		}

		for role, perms := range rolePermissions {
			roleID, err := ensureRole(db, role)
			if err != nil {
				log.Fatalf("failed to seed role %s: %v", role, err)
			}
			for _, perm := range perms {
				if err := grantPermission(db, roleID, perm); err != nil {
					log.Fatalf("failed to grant %s to %s: %v", perm, role, err)
				}
			}
		}
		fmt.Println("Seeded roles and permissions")

		adminEmail := "admin@mail.com"
		adminID, created, err := ensureUser(db, adminEmail, "Admin", "password", cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
		if created {
			fmt.Println("Seeded admin user:", adminEmail)
		} else {
			fmt.Println("Admin user already exists; ensuring role assignment")
		}

		superAdminID, err := ensureRole(db, auth.RoleSuperAdmin)
		if err != nil {
			log.Fatalf("failed to lookup super_admin role: %v", err)
		}
		if err := assignRole(db, adminID, superAdminID); err != nil {
			log.Fatalf("failed to assign super_admin to admin user: %v", err)
		}

		fmt.Println("Seeding complete")
	},
}

func ensurePermission(db *gorm.DB, name, desc string) error {
	var id int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&id); err == nil {
		return nil
	}
	return db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", name, desc).Error
}

func ensureRole(db *gorm.DB, name string) (int64, error) {
	var id int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id, nil
	}
	if err := db.Exec("INSERT INTO roles (name, created_at) VALUES (?, now())", name).Error; err != nil {
		return 0, err
	}
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func grantPermission(db *gorm.DB, roleID int64, permission string) error {
	var permID int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permission).Row().Scan(&permID); err != nil {
		return fmt.Errorf("permission %s not found: %w", permission, err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM role_permission WHERE role_id = ? AND permission_id = ?", roleID, permID).Row().Scan(&exists); err == nil {
		return nil
	}
	return db.Exec("INSERT INTO role_permission (role_id, permission_id, created_at) VALUES (?, ?, now())", roleID, permID).Error
}

func ensureUser(db *gorm.DB, email, name, password string, bcryptCost int) (int64, bool, error) {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		return id, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, false, err
	}

	if err := db.Exec("INSERT INTO users (email, name, password_hash, chat_color, is_active, created_at, updated_at) VALUES (?, ?, ?, '#3b82f6', true, now(), now())", email, name, string(hash)).Error; err != nil {
		return 0, false, err
	}
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func assignRole(db *gorm.DB, userID, roleID int64) error {
	var exists int
	if err := db.Raw("SELECT 1 FROM role_user WHERE user_id = ? AND role_id = ?", userID, roleID).Row().Scan(&exists); err == nil {
		return nil
	}
	return db.Exec("INSERT INTO role_user (user_id, role_id, created_at) VALUES (?, ?, now())", userID, roleID).Error
}
