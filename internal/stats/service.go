package stats

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/chat-management/internal"
)

// Service assembles dashboard summaries and time series from raw repository
// rows. Validation happens before any repository call, so a bad resolution or
// metric never touches the store.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Summary returns the aggregate counters for the dashboard landing view.
func (s *Service) Summary(ctx context.Context) (*DashboardSummary, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, errors.NewUnavailableError("statistics store unavailable", err)
	}

	messages, err := s.repo.CountMessages(ctx)
	if err != nil {
		s.logger.Error("failed to count messages", "error", err)
		return nil, errors.NewUnavailableError("statistics store unavailable", err)
	}

	active, err := s.repo.DistinctSendersSince(ctx, s.now().Add(-ActiveSessionWindow))
	if err != nil {
		s.logger.Error("failed to count active sessions", "error", err)
		return nil, errors.NewUnavailableError("statistics store unavailable", err)
	}

	return &DashboardSummary{
		UserCount:      users,
		MessageCount:   messages,
		ActiveSessions: active,
	}, nil
}

// Series returns one chart point per period in the resolution's fixed window,
// oldest first. Periods with no rows appear with a zero value, so the series
// always has exactly WindowSize points.
func (s *Service) Series(ctx context.Context, metricRaw, resolutionRaw string) ([]TimeSeriesPoint, error) {
	metric, appErr := ParseMetric(metricRaw)
	if appErr != nil {
		return nil, appErr
	}
	resolution, appErr := ParseResolution(resolutionRaw)
	if appErr != nil {
		return nil, appErr
	}

	periods, err := BuildPeriods(resolution, resolution.WindowSize(), s.now())
	if err != nil {
		return nil, err
	}

	counts, err := s.countByPeriod(ctx, metric, resolution, periods[0].Start, periods[0].Start.Location())
	if err != nil {
		s.logger.Error("failed to aggregate statistics",
			"error", err, "metric", metric, "resolution", resolution)
		return nil, errors.NewUnavailableError("statistics store unavailable", err)
	}

	points := make([]TimeSeriesPoint, len(periods))
	for i, p := range periods {
		points[i] = TimeSeriesPoint{Name: p.Label, Value: counts[p.Key]}
	}
	return points, nil
}

// countByPeriod buckets raw rows by period key. Grouping happens here rather
// than in SQL so the keys come from the exact truncation rules BuildPeriods
// uses. Row timestamps are converted into the window's location first, since
// stores commonly hand back UTC.
func (s *Service) countByPeriod(ctx context.Context, metric Metric, res Resolution, since time.Time, loc *time.Location) (map[string]int64, error) {
	counts := make(map[string]int64)

	switch metric {
	case MetricMessages, MetricUsers:
		var (
			times []time.Time
			err   error
		)
		if metric == MetricMessages {
			times, err = s.repo.MessageTimes(ctx, since)
		} else {
			times, err = s.repo.UserSignupTimes(ctx, since)
		}
		if err != nil {
			return nil, err
		}
		for _, t := range times {
			counts[PeriodKey(res, t.In(loc))]++
		}

	case MetricSessions:
		events, err := s.repo.MessageSenders(ctx, since)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]map[int64]struct{})
		for _, e := range events {
			key := PeriodKey(res, e.CreatedAt.In(loc))
			if seen[key] == nil {
				seen[key] = make(map[int64]struct{})
			}
			seen[key][e.UserID] = struct{}{}
		}
		for key, senders := range seen {
			counts[key] = int64(len(senders))
		}
	}

	return counts, nil
}
