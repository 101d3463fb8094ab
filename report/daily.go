package report

import (
	"time"

	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/schedule"
)

// =============================================================================
// DAILY DECOMPOSITION - Per-day totals aggregated across the range
// =============================================================================

// DailyTotals aggregates the per-day decomposition across the range.
type DailyTotals struct {
	DaysWorked int

	// TotalShiftSeconds sums, per worked day, max(end) - min(start) across
	// that day's presence intervals. Breaks inside the day are spanned, so
	// this is elapsed shift time, not net worked time.
	TotalShiftSeconds float64

	// TotalAvailableSeconds sums the durations of available-status intervals.
	TotalAvailableSeconds float64

	// Lunch compliance. Days with no lunch interval join neither count.
	LunchDaysWithData    int
	LunchDaysOutOfWindow int

	// AvailabilityWarning is set when the available total falls short of
	// ExpectedAvailablePerDay per worked day.
	AvailabilityWarning bool
}

// ComputeDaily decomposes the range-filtered presence by start date and
// aggregates the day totals.
func ComputeDaily(byDay map[interval.Date][]interval.PresenceInterval, r interval.DateRange) DailyTotals {
	var totals DailyTotals
	for _, d := range r.Days() {
		ivs := byDay[d]
		if len(ivs) == 0 {
			continue
		}
		totals.DaysWorked++

		first, last := daySpan(ivs)
		totals.TotalShiftSeconds += last.Sub(first).Seconds()

		for _, iv := range ivs {
			if iv.Status.IsAvailable() {
				totals.TotalAvailableSeconds += iv.Duration().Seconds()
			}
		}

		if lunchStart, ok := earliestLunch(ivs); ok {
			totals.LunchDaysWithData++
			delta := lunchStart.Sub(first)
			if delta < LunchWindowMin || delta > LunchWindowMax {
				totals.LunchDaysOutOfWindow++
			}
		}
	}

	expected := float64(totals.DaysWorked) * ExpectedAvailablePerDay.Seconds()
	totals.AvailabilityWarning = totals.DaysWorked > 0 && totals.TotalAvailableSeconds < expected
	return totals
}

// daySpan returns the earliest start and latest end across a day's intervals.
func daySpan(ivs []interval.PresenceInterval) (first, last time.Time) {
	for i, iv := range ivs {
		if i == 0 || iv.Start.Before(first) {
			first = iv.Start
		}
		if i == 0 || iv.End.After(last) {
			last = iv.End
		}
	}
	return first, last
}

// earliestLunch returns the start of the earliest lunch-status interval.
func earliestLunch(ivs []interval.PresenceInterval) (time.Time, bool) {
	var best time.Time
	found := false
	for _, iv := range ivs {
		if !iv.Status.IsLunch() {
			continue
		}
		if !found || iv.Start.Before(best) {
			best = iv.Start
			found = true
		}
	}
	return best, found
}

// =============================================================================
// PER-DAY ADHERENCE - One classified row per date in range
// =============================================================================

// DayStatus is the adherence classification of one date. Every date in range
// maps to exactly one status.
type DayStatus string

const (
	DayAbsentScheduled DayStatus = "Absent (Scheduled)"
	DayOffNotAssigned  DayStatus = "Day Off / Not Assigned"
	DayWorked          DayStatus = "Worked"
	DayLate            DayStatus = "Late"
	DayOnTime          DayStatus = "On Time"
)

// DayRow is one per-day shift and adherence row.
type DayRow struct {
	Date      interval.Date
	Scheduled schedule.Shift

	// HasPresence is false on days with no presence data; ActualStart and
	// ActualEnd are zero in that case.
	HasPresence bool
	ActualStart time.Time
	ActualEnd   time.Time

	// LateMinutes is set only when Status is DayLate: the delay past the
	// scheduled start, floored to whole minutes.
	LateMinutes *int

	Status DayStatus
}

// BuildDayRows classifies every date in the range:
//   - no presence, assigned schedule      -> Absent (Scheduled)
//   - no presence, no schedule            -> Day Off / Not Assigned
//   - presence, no parseable schedule     -> Worked
//   - presence, delay >= threshold        -> Late (threshold inclusive)
//   - presence, delay < threshold         -> On Time
func BuildDayRows(byDay map[interval.Date][]interval.PresenceInterval, grid *schedule.Grid, agent string, r interval.DateRange) []DayRow {
	rows := make([]DayRow, 0, len(r.Days()))
	for _, d := range r.Days() {
		sched := grid.ShiftFor(agent, d)
		ivs := byDay[d]

		if len(ivs) == 0 {
			status := DayOffNotAssigned
			if sched.Assigned {
				status = DayAbsentScheduled
			}
			rows = append(rows, DayRow{Date: d, Scheduled: sched, Status: status})
			continue
		}

		first, last := daySpan(ivs)
		row := DayRow{
			Date:        d,
			Scheduled:   sched,
			HasPresence: true,
			ActualStart: first,
			ActualEnd:   last,
			Status:      DayWorked,
		}

		if sched.Assigned {
			if schedStart, ok := schedule.ParseStart(sched.Raw, d); ok {
				delay := first.Sub(schedStart).Minutes()
				if delay >= LatenessThresholdMinutes {
					late := int(delay)
					row.LateMinutes = &late
					row.Status = DayLate
				} else {
					row.Status = DayOnTime
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
