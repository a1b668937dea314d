package stats

import (
	"context"
	"errors"
	"log/slog"
	"time"

	internal "github.com/frahmantamala/chat-management/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Mock repository for testing
type mockStatsRepository struct {
	messageTimes []time.Time
	signupTimes  []time.Time
	senderEvents []SenderEvent

	userCount       int64
	messageCount    int64
	distinctSenders int64

	returnError   bool
	errorToReturn error

	queryCalls int
	lastSince  time.Time
}

func (m *mockStatsRepository) MessageTimes(_ context.Context, since time.Time) ([]time.Time, error) {
	m.queryCalls++
	m.lastSince = since
	if m.returnError {
		return nil, m.errorToReturn
	}
	return filterSince(m.messageTimes, since), nil
}

func (m *mockStatsRepository) UserSignupTimes(_ context.Context, since time.Time) ([]time.Time, error) {
	m.queryCalls++
	m.lastSince = since
	if m.returnError {
		return nil, m.errorToReturn
	}
	return filterSince(m.signupTimes, since), nil
}

func (m *mockStatsRepository) MessageSenders(_ context.Context, since time.Time) ([]SenderEvent, error) {
	m.queryCalls++
	m.lastSince = since
	if m.returnError {
		return nil, m.errorToReturn
	}
	var out []SenderEvent
	for _, e := range m.senderEvents {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStatsRepository) CountUsers(_ context.Context) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	return m.userCount, nil
}

func (m *mockStatsRepository) CountMessages(_ context.Context) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	return m.messageCount, nil
}

func (m *mockStatsRepository) DistinctSendersSince(_ context.Context, since time.Time) (int64, error) {
	m.lastSince = since
	if m.returnError {
		return 0, m.errorToReturn
	}
	return m.distinctSenders, nil
}

func filterSince(times []time.Time, since time.Time) []time.Time {
	var out []time.Time
	for _, t := range times {
		if !t.Before(since) {
			out = append(out, t)
		}
	}
	return out
}

var _ = ginkgo.Describe("StatsService", func() {
	var (
		service  *Service
		mockRepo *mockStatsRepository
		now      time.Time
	)

	ginkgo.BeforeEach(func() {
		now = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
		mockRepo = &mockStatsRepository{}
		service = NewService(mockRepo, slog.Default())
		service.now = func() time.Time { return now }
	})

	ginkgo.Describe("Series", func() {
		ginkgo.Context("with the messages metric at day resolution", func() {
			ginkgo.It("should count rows into their calendar day and zero-fill the rest", func() {
				// Given: 3 messages today, none yesterday, 2 five days ago
				mockRepo.messageTimes = []time.Time{
					now.Add(-10 * time.Minute),
					now.Add(-2 * time.Hour),
					now.Add(-5 * time.Hour),
					now.AddDate(0, 0, -5),
					now.AddDate(0, 0, -5).Add(-time.Hour),
				}

				// When
				points, err := service.Series(context.Background(), "messages", "day")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.HaveLen(30))
				gomega.Expect(points[29].Value).To(gomega.Equal(int64(3)))
				gomega.Expect(points[28].Value).To(gomega.Equal(int64(0)))
				gomega.Expect(points[24].Value).To(gomega.Equal(int64(2)))

				var total int64
				for _, p := range points {
					total += p.Value
				}
				gomega.Expect(total).To(gomega.Equal(int64(5)))
			})

			ginkgo.It("should label points with month and day", func() {
				points, err := service.Series(context.Background(), "messages", "day")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(points[29].Name).To(gomega.Equal("Mar 10"))
				gomega.Expect(points[0].Name).To(gomega.Equal("Feb 09"))
			})
		})

		ginkgo.Context("with an empty store", func() {
			ginkgo.It("should return a full window of zero values", func() {
				points, err := service.Series(context.Background(), "messages", "hour")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.HaveLen(24))
				for _, p := range points {
					gomega.Expect(p.Value).To(gomega.BeZero())
				}
			})
		})

		ginkgo.Context("with the sessions metric", func() {
			ginkgo.It("should count distinct senders per period, not messages", func() {
				// Given: three messages this hour from two users
				mockRepo.senderEvents = []SenderEvent{
					{UserID: 1, CreatedAt: now.Add(-time.Minute)},
					{UserID: 1, CreatedAt: now.Add(-5 * time.Minute)},
					{UserID: 2, CreatedAt: now.Add(-10 * time.Minute)},
				}

				// When
				points, err := service.Series(context.Background(), "sessions", "hour")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.HaveLen(24))
				gomega.Expect(points[23].Value).To(gomega.Equal(int64(2)))
			})
		})

		ginkgo.Context("with the users metric at week resolution", func() {
			ginkgo.It("should return the fixed 12-week window", func() {
				mockRepo.signupTimes = []time.Time{
					now,
					now.AddDate(0, 0, -7),
					now.AddDate(0, 0, -8),
				}

				points, err := service.Series(context.Background(), "users", "week")

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.HaveLen(12))
				gomega.Expect(points[11].Value).To(gomega.Equal(int64(1)))
				gomega.Expect(points[10].Value).To(gomega.Equal(int64(2)))
			})
		})

		ginkgo.Context("when inputs are invalid", func() {
			ginkgo.It("should reject a bad metric before touching the store", func() {
				points, err := service.Series(context.Background(), "signups", "day")

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.BeNil())
				gomega.Expect(mockRepo.queryCalls).To(gomega.BeZero())

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidMetric))
			})

			ginkgo.It("should reject a bad resolution before touching the store", func() {
				points, err := service.Series(context.Background(), "messages", "month")

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.BeNil())
				gomega.Expect(mockRepo.queryCalls).To(gomega.BeZero())

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidResolution))
			})
		})

		ginkgo.Context("when the store fails", func() {
			ginkgo.It("should surface an unavailable error", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("connection refused")

				points, err := service.Series(context.Background(), "messages", "day")

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(points).To(gomega.BeNil())

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeUnavailable))
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(503))
			})
		})

		ginkgo.It("should query from the start of the oldest period", func() {
			_, err := service.Series(context.Background(), "messages", "hour")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.lastSince).To(gomega.Equal(time.Date(2026, time.March, 9, 15, 0, 0, 0, time.UTC)))
		})
	})

	ginkgo.Describe("Summary", func() {
		ginkgo.It("should return the aggregate counters", func() {
			mockRepo.userCount = 42
			mockRepo.messageCount = 1337
			mockRepo.distinctSenders = 7

			summary, err := service.Summary(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(summary.UserCount).To(gomega.Equal(int64(42)))
			gomega.Expect(summary.MessageCount).To(gomega.Equal(int64(1337)))
			gomega.Expect(summary.ActiveSessions).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should use a trailing five minute window for active sessions", func() {
			_, err := service.Summary(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.lastSince).To(gomega.Equal(now.Add(-5 * time.Minute)))
		})

		ginkgo.It("should surface an unavailable error when the store fails", func() {
			mockRepo.returnError = true
			mockRepo.errorToReturn = errors.New("connection refused")

			summary, err := service.Summary(context.Background())

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(summary).To(gomega.BeNil())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeUnavailable))
		})
	})
})
