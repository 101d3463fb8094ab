package interval

import "time"

// =============================================================================
// DATE - Civil calendar date (the grain of schedules and daily metrics)
// =============================================================================

// Date is a calendar date without a time component. All engine timestamps are
// wall-clock values interpreted in UTC, so a Date is unambiguous.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of a timestamp.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight at the start of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// At returns the date combined with a clock time.
func (d Date) At(hour, min int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, min, 0, 0, time.UTC)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

// Comparison
func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) IsZero() bool           { return d == Date{} }

// Key returns the DD/MM/YYYY form used as schedule-grid column keys.
func (d Date) Key() string { return d.Time().Format("02/01/2006") }

// String returns the ISO form.
func (d Date) String() string { return d.Time().Format("2006-01-02") }

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// =============================================================================
// DATE RANGE - Inclusive day span for report queries
// =============================================================================

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange builds a range, swapping reversed bounds.
func NewDateRange(start, end Date) DateRange {
	if start.After(end) {
		start, end = end, start
	}
	return DateRange{Start: start, End: end}
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns every date in the range in order.
func (r DateRange) Days() []Date {
	var days []Date
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// StartTime returns the first instant of the range.
func (r DateRange) StartTime() time.Time { return r.Start.Time() }

// EndTime returns the exclusive upper bound of the range's minute grid,
// 23:59 on the final day.
func (r DateRange) EndTime() time.Time { return r.End.At(23, 59) }

// String returns a printable form of the range.
func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
