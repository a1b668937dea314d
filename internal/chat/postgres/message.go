package postgres

import (
	internal "github.com/frahmantamala/chat-management/internal"
	"github.com/frahmantamala/chat-management/internal/chat"
	messageDatamodel "github.com/frahmantamala/chat-management/internal/core/datamodel/message"
	"gorm.io/gorm"
)

// MessageRepository implements the chat.Repository interface using GORM.
// Soft deletes go through gorm.DeletedAt, so deleted rows drop out of every
// query automatically.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) chat.Repository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *chat.Message) error {
	row := chat.ToDataModel(message)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	message.ID = row.ID
	message.CreatedAt = row.CreatedAt
	message.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *MessageRepository) GetByID(id int64) (*chat.Message, error) {
	var row messageDatamodel.Message
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMessageNotFound
		}
		return nil, err
	}
	return chat.FromDataModel(&row), nil
}

type senderRow struct {
	ID        int64
	Name      string
	ChatColor string
}

// GetPage returns messages oldest first with their senders attached, plus the
// total row count for pagination.
func (r *MessageRepository) GetPage(limit, offset int) ([]*chat.Message, int64, error) {
	var total int64
	if err := r.db.Model(&messageDatamodel.Message{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*messageDatamodel.Message
	err := r.db.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	messages := make([]*chat.Message, len(rows))
	senderIDs := make([]int64, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for i, row := range rows {
		messages[i] = chat.FromDataModel(row)
		if _, ok := seen[row.UserID]; !ok {
			seen[row.UserID] = struct{}{}
			senderIDs = append(senderIDs, row.UserID)
		}
	}

	if len(senderIDs) > 0 {
		var senders []senderRow
		err = r.db.Table("users").
			Select("id, name, chat_color").
			Where("id IN ?", senderIDs).
			Scan(&senders).Error
		if err != nil {
			return nil, 0, err
		}

		byID := make(map[int64]senderRow, len(senders))
		for _, s := range senders {
			byID[s.ID] = s
		}
		for _, m := range messages {
			if s, ok := byID[m.UserID]; ok {
				m.User = &chat.Sender{ID: s.ID, Name: s.Name, ChatColor: s.ChatColor}
			}
		}
	}

	return messages, total, nil
}

func (r *MessageRepository) SoftDelete(id int64) error {
	return r.db.Delete(&messageDatamodel.Message{}, id).Error
}
