package chat

import (
	"log/slog"

	errors "github.com/frahmantamala/chat-management/internal"
)

// Moderator sanitizes message bodies before storage.
type Moderator interface {
	Sanitize(body string) string
}

// Repository defines the data access methods for messages. Soft-deleted rows
// never surface through these methods.
type Repository interface {
	Create(message *Message) error
	GetByID(id int64) (*Message, error)
	GetPage(limit, offset int) ([]*Message, int64, error)
	SoftDelete(id int64) error
}

type Service struct {
	repo       Repository
	moderation Moderator
	logger     *slog.Logger
}

func NewService(repo Repository, moderation Moderator, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		moderation: moderation,
		logger:     logger,
	}
}

// ListMessages returns one page of the feed, oldest first so clients append
// newest at the bottom.
func (s *Service) ListMessages(page, perPage int) (*MessagePageDTO, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	messages, total, err := s.repo.GetPage(perPage, offset)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		return nil, err
	}

	return &MessagePageDTO{
		Messages: messages,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	}, nil
}

// CreateMessage validates, sanitizes, and stores a new message.
func (s *Service) CreateMessage(userID int64, dto CreateMessageDTO) (*Message, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("message validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	sanitized := s.moderation.Sanitize(dto.Body)
	if sanitized == "" {
		return nil, errors.NewValidationError("message body is empty after sanitization", errors.ErrCodeInvalidMessage)
	}

	message := &Message{
		UserID: userID,
		Body:   sanitized,
	}

	if err := s.repo.Create(message); err != nil {
		s.logger.Error("failed to create message", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("message created", "message_id", message.ID, "user_id", userID)

	return message, nil
}

// DeleteMessage soft-deletes a message. Permission gating happens in the
// router; missing messages map to not found.
func (s *Service) DeleteMessage(messageID int64) error {
	if _, err := s.repo.GetByID(messageID); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(messageID); err != nil {
		s.logger.Error("failed to delete message", "error", err, "message_id", messageID)
		return err
	}

	s.logger.Info("message deleted", "message_id", messageID)
	return nil
}
