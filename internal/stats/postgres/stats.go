package postgres

import (
	"context"
	"time"

	messageDatamodel "github.com/frahmantamala/chat-management/internal/core/datamodel/message"
	userDatamodel "github.com/frahmantamala/chat-management/internal/core/datamodel/user"
	"github.com/frahmantamala/chat-management/internal/stats"
	"gorm.io/gorm"
)

// StatsRepository reads raw timestamped rows for aggregation. It never groups
// or formats dates in SQL; bucketing is the service's job. Soft-deleted
// messages drop out through gorm.DeletedAt.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) stats.Repository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) MessageTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *StatsRepository) UserSignupTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *StatsRepository) MessageSenders(ctx context.Context, since time.Time) ([]stats.SenderEvent, error) {
	var events []stats.SenderEvent
	err := r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Select("user_id, created_at").
		Where("created_at >= ?", since).
		Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) DistinctSendersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&messageDatamodel.Message{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
