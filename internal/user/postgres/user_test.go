package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/chat-management/internal/user"
	userPostgres "github.com/frahmantamala/chat-management/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteUser struct {
	ID              int64      `gorm:"primaryKey"`
	Email           string     `gorm:"column:email;uniqueIndex;not null"`
	Name            string     `gorm:"column:name;not null"`
	PasswordHash    string     `gorm:"column:password_hash"`
	ChatColor       string     `gorm:"column:chat_color"`
	IsActive        bool       `gorm:"column:is_active;default:true"`
	EmailVerifiedAt *time.Time `gorm:"column:email_verified_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteRole struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string `gorm:"column:display_name"`
	Description string `gorm:"column:description"`
}

func (SQLiteRole) TableName() string { return "roles" }

type SQLitePermission struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	DisplayName string `gorm:"column:display_name"`
	Description string `gorm:"column:description"`
}

func (SQLitePermission) TableName() string { return "permissions" }

type SQLiteRoleUser struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"column:user_id;not null;index"`
	RoleID int64 `gorm:"column:role_id;not null;index"`
}

func (SQLiteRoleUser) TableName() string { return "role_user" }

type SQLiteRolePermission struct {
	ID           int64 `gorm:"primaryKey"`
	RoleID       int64 `gorm:"column:role_id;not null;index"`
	PermissionID int64 `gorm:"column:permission_id;not null;index"`
}

func (SQLiteRolePermission) TableName() string { return "role_permission" }

var _ = Describe("User Repository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteRole{}, &SQLitePermission{},
			&SQLiteRoleUser{}, &SQLiteRolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)

		users := []SQLiteUser{
			{ID: 1, Email: "alice@example.com", Name: "Alice", IsActive: true, CreatedAt: time.Now().Add(-2 * time.Hour)},
			{ID: 2, Email: "bob@example.com", Name: "Bob", IsActive: true, CreatedAt: time.Now().Add(-time.Hour)},
		}
		Expect(db.Create(&users).Error).NotTo(HaveOccurred())

		roles := []SQLiteRole{
			{ID: 1, Name: "moderator", DisplayName: "Moderator"},
			{ID: 2, Name: "user", DisplayName: "User"},
		}
		Expect(db.Create(&roles).Error).NotTo(HaveOccurred())

		perms := []SQLitePermission{
			{ID: 1, Name: "view_chat"},
			{ID: 2, Name: "send_chat_message"},
			{ID: 3, Name: "delete_chat_message"},
		}
		Expect(db.Create(&perms).Error).NotTo(HaveOccurred())

		Expect(db.Create(&[]SQLiteRoleUser{
			{UserID: 1, RoleID: 1},
			{UserID: 2, RoleID: 2},
		}).Error).NotTo(HaveOccurred())

		Expect(db.Create(&[]SQLiteRolePermission{
			{RoleID: 1, PermissionID: 1},
			{RoleID: 1, PermissionID: 2},
			{RoleID: 1, PermissionID: 3},
			{RoleID: 2, PermissionID: 1},
			{RoleID: 2, PermissionID: 2},
		}).Error).NotTo(HaveOccurred())
	})

	Describe("GetAllWithRoles", func() {
		It("should return every user with roles attached", func() {
			users, err := repo.GetAllWithRoles()

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Email).To(Equal("alice@example.com"))
			Expect(users[0].Roles).To(HaveLen(1))
			Expect(users[0].Roles[0].Name).To(Equal("moderator"))
			Expect(users[1].Roles[0].Name).To(Equal("user"))
		})

		It("should return an empty slice when the table is empty", func() {
			Expect(db.Exec("DELETE FROM role_user").Error).NotTo(HaveOccurred())
			Expect(db.Exec("DELETE FROM users").Error).NotTo(HaveOccurred())

			users, err := repo.GetAllWithRoles()

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("GetByIDWithRoles", func() {
		It("should expand each role's permissions", func() {
			u, err := repo.GetByIDWithRoles(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Name).To(Equal("Alice"))
			Expect(u.Roles).To(HaveLen(1))
			Expect(u.Roles[0].Permissions).To(HaveLen(3))
			Expect(u.HasPermission("delete_chat_message")).To(BeTrue())
		})

		It("should not leak other roles' permissions", func() {
			u, err := repo.GetByIDWithRoles(2)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Roles[0].Permissions).To(HaveLen(2))
			Expect(u.HasPermission("delete_chat_message")).To(BeFalse())
		})

		It("should return not found for a missing user", func() {
			u, err := repo.GetByIDWithRoles(999)

			Expect(err).To(Equal(user.ErrNotFound))
			Expect(u).To(BeNil())
		})
	})
})
