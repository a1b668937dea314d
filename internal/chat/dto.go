package chat

import (
	errors "github.com/frahmantamala/chat-management/internal"
	"github.com/frahmantamala/chat-management/internal/core/common/validation"
)

// CreateMessageDTO is the request payload for posting a chat message.
type CreateMessageDTO struct {
	Body string `json:"body"`
}

// Validate checks the raw body before moderation runs.
func (dto CreateMessageDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("body", dto.Body).
		Required().
		MaxRunes(MaxMessageLength, errors.ErrCodeMessageTooLong)
	return v.Validate()
}

// MessagePageDTO is the paginated list response.
type MessagePageDTO struct {
	Messages []*Message `json:"messages"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
	Total    int64      `json:"total"`
}
