package message

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    int64          `gorm:"column:user_id;not null;index"`
	Body      string         `gorm:"column:body;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;default:now();index"`
	UpdatedAt time.Time      `gorm:"column:updated_at;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Message) TableName() string {
	return "messages"
}
