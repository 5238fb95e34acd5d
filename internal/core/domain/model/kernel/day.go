package kernel

import (
	"time"

	"ordering/internal/pkg/errs"
)

const DayLayout = "2006-01-02"

// Day is a calendar date in UTC with no time-of-day component.
type Day struct {
	start time.Time
}

// ParseDay accepts an ISO date ("2024-03-01") or a full RFC 3339 timestamp,
// in which case the time-of-day is dropped.
func ParseDay(s string) (Day, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return DayOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("createdAt", err)
	}
	return DayOf(t), nil
}

func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{start: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) Start() time.Time {
	return d.start
}

func (d Day) String() string {
	return d.start.Format(DayLayout)
}

func (d Day) Contains(t time.Time) bool {
	return DayOf(t).start.Equal(d.start)
}

func (d Day) IsZero() bool {
	return d.start.IsZero()
}
