package chat

import (
	"time"

	messageDatamodel "github.com/frahmantamala/chat-management/internal/core/datamodel/message"
)

// Sender is the compact user shape embedded in message payloads.
type Sender struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ChatColor string `json:"chat_color,omitempty"`
}

type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	User      *Sender   `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const MaxMessageLength = 500

func ToDataModel(m *Message) *messageDatamodel.Message {
	return &messageDatamodel.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModel(m *messageDatamodel.Message) *Message {
	return &Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
