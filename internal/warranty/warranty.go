// Package warranty computes warranty windows for serialized units. All
// functions are pure; callers pass the clock in.
package warranty

import "time"

// Bucket is the categorical warranty state shown to operators.
type Bucket string

const (
	BucketExpired      Bucket = "expired"
	BucketExpiringSoon Bucket = "expiring_soon"
	BucketActive       Bucket = "active"
	BucketUnknown      Bucket = "unknown"
)

// Status pairs the bucket with the signed whole-day countdown.
type Status struct {
	Bucket   Bucket `json:"bucket"`
	DaysLeft int    `json:"days_left"`
}

// End returns the warranty end date: start plus the given number of calendar
// months, clamped to the last day of the target month (Jan 31 + 1 month is
// Feb 28, or Feb 29 in a leap year). Returns nil when either input is
// missing or the period is not positive.
func End(start *time.Time, periodMonths *int) *time.Time {
	if start == nil || periodMonths == nil || *periodMonths <= 0 {
		return nil
	}

	y, m, d := start.Date()
	targetMonth := time.Date(y, m+time.Month(*periodMonths), 1, 0, 0, 0, 0, start.Location())
	last := daysInMonth(targetMonth.Year(), targetMonth.Month())
	if d > last {
		d = last
	}

	end := time.Date(targetMonth.Year(), targetMonth.Month(), d,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	return &end
}

// Compute returns the warranty status at the given instant. A nil end date
// maps to the unknown bucket with a zero countdown.
func Compute(end *time.Time, now time.Time) Status {
	if end == nil {
		return Status{Bucket: BucketUnknown}
	}

	days := wholeDays(end.Sub(now))

	switch {
	case days < 0:
		return Status{Bucket: BucketExpired, DaysLeft: days}
	case days <= 30:
		return Status{Bucket: BucketExpiringSoon, DaysLeft: days}
	default:
		return Status{Bucket: BucketActive, DaysLeft: days}
	}
}

// wholeDays floors a duration to whole days, toward negative infinity so
// that an end date one day in the past reports -1, not 0.
func wholeDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
