package stats

import (
	"fmt"
	"time"

	errors "github.com/frahmantamala/chat-management/internal"
)

// Period is one bucket of a statistics window. Key identifies the bucket for
// grouping, Label is the human form shown on charts. Start is inclusive, End
// exclusive.
type Period struct {
	Key   string
	Label string
	Start time.Time
	End   time.Time
}

// BuildPeriods returns count consecutive periods at the given resolution,
// oldest first, with the period containing anchor last. A zero anchor means
// now. Keys are strictly increasing and unique within the slice.
//
// Truncation is done with calendar arithmetic in the anchor's location rather
// than date formatting in the store, so bucket boundaries are identical no
// matter which database dialect backs the repository.
func BuildPeriods(res Resolution, count int, anchor time.Time) ([]Period, error) {
	if count < 1 {
		return nil, errors.NewValidationError("period count must be at least 1", errors.ErrCodeInvalidPeriodCount)
	}
	if anchor.IsZero() {
		anchor = time.Now()
	}

	var (
		start func(t time.Time) time.Time
		step  func(t time.Time, n int) time.Time
	)
	switch res {
	case ResolutionHour:
		start = truncateToHour
		step = func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }
	case ResolutionDay:
		start = truncateToDay
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
	case ResolutionWeek:
		start = truncateToWeek
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }
	default:
		return nil, errors.ErrInvalidResolution
	}

	base := start(anchor)
	periods := make([]Period, 0, count)
	for i := count - 1; i >= 0; i-- {
		s := step(base, -i)
		periods = append(periods, Period{
			Key:   PeriodKey(res, s),
			Label: periodLabel(res, s),
			Start: s,
			End:   step(s, 1),
		})
	}
	return periods, nil
}

// PeriodKey maps an instant to its bucket key. The aggregation service keys
// raw rows with this same function, which is what guarantees the grouped
// counts land in the periods BuildPeriods emits.
func PeriodKey(res Resolution, t time.Time) string {
	switch res {
	case ResolutionHour:
		return t.Format("2006-01-02 15") + ":00:00" // minutes and seconds are always zero at a bucket start
	case ResolutionDay:
		return t.Format("2006-01-02")
	case ResolutionWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-%02d", year, week)
	default:
		return ""
	}
}

func periodLabel(res Resolution, t time.Time) string {
	switch res {
	case ResolutionHour:
		return t.Format("15:00")
	case ResolutionDay:
		return t.Format("Jan 02")
	case ResolutionWeek:
		_, week := t.ISOWeek()
		return fmt.Sprintf("Week %02d", week)
	default:
		return ""
	}
}

func truncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// truncateToWeek returns midnight of the ISO week's Monday.
func truncateToWeek(t time.Time) time.Time {
	day := truncateToDay(t)
	offset := int(day.Weekday()-time.Monday+7) % 7
	return day.AddDate(0, 0, -offset)
}
