package stats

import (
	"context"
	"time"

	errors "github.com/frahmantamala/chat-management/internal"
)

// Resolution is the time-bucket granularity for a statistics query. The set
// is closed; anything else fails validation before a query runs.
type Resolution string

const (
	ResolutionHour Resolution = "hour"
	ResolutionDay  Resolution = "day"
	ResolutionWeek Resolution = "week"
)

// ParseResolution validates a raw query value.
func ParseResolution(s string) (Resolution, *errors.AppError) {
	switch Resolution(s) {
	case ResolutionHour, ResolutionDay, ResolutionWeek:
		return Resolution(s), nil
	default:
		return "", errors.ErrInvalidResolution
	}
}

// WindowSize is the fixed number of periods charted per resolution: the last
// 24 hours, 30 days, or 12 weeks. Not user-configurable.
func (r Resolution) WindowSize() int {
	switch r {
	case ResolutionHour:
		return 24
	case ResolutionDay:
		return 30
	case ResolutionWeek:
		return 12
	default:
		return 0
	}
}

// Metric selects what is being counted per period.
type Metric string

const (
	MetricMessages Metric = "messages"
	MetricUsers    Metric = "users"
	MetricSessions Metric = "sessions"
)

func ParseMetric(s string) (Metric, *errors.AppError) {
	switch Metric(s) {
	case MetricMessages, MetricUsers, MetricSessions:
		return Metric(s), nil
	default:
		return "", errors.ErrInvalidMetric
	}
}

// TimeSeriesPoint is one chart point. Produced fresh per query, never stored.
type TimeSeriesPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DashboardSummary is the aggregate snapshot for the dashboard landing view.
type DashboardSummary struct {
	UserCount      int64 `json:"userCount"`
	MessageCount   int64 `json:"messageCount"`
	ActiveSessions int64 `json:"activeSessions"`
}

// ActiveSessionWindow is the trailing window for the active-session proxy:
// distinct message senders in the last five minutes. Not a real session
// concept.
const ActiveSessionWindow = 5 * time.Minute

// SenderEvent is a message row reduced to who posted and when.
type SenderEvent struct {
	UserID    int64
	CreatedAt time.Time
}

// Repository reads timestamped rows for aggregation. Rows come back raw and
// are bucketed in Go with the same truncation rules the bucketer uses, so
// period keys line up regardless of the store's date dialect. All methods are
// read-only and idempotent.
type Repository interface {
	MessageTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	UserSignupTimes(ctx context.Context, since time.Time) ([]time.Time, error)
	MessageSenders(ctx context.Context, since time.Time) ([]SenderEvent, error)

	CountUsers(ctx context.Context) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	DistinctSendersSince(ctx context.Context, since time.Time) (int64, error)
}
