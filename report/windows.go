package report

import (
	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/schedule"
)

// =============================================================================
// ROLLING WINDOWS - Lateness (30 days) and absence (90 days)
// =============================================================================
// Both windows walk backwards from the anchor date, excluding the anchor
// itself, most recent day first.

// LateIncident is one late day inside the lateness window.
type LateIncident struct {
	Date interval.Date
	// Minutes is the delay past the scheduled start, floored.
	Minutes int
}

// Lateness summarizes the 30-day lateness window.
type Lateness struct {
	// TotalMinutes is the accumulated delay across incidents, truncated to
	// whole minutes after summation.
	TotalMinutes int
	Incidents    []LateIncident
}

// ComputeLateness checks each of the LatenessWindowDays days preceding the
// anchor. A day contributes only when it has both presence data and a
// parseable scheduled start and the delay meets the inclusive threshold;
// every other day is silently skipped: not on-time, not absent.
func ComputeLateness(history map[interval.Date][]interval.PresenceInterval, grid *schedule.Grid, agent string, anchor interval.Date) Lateness {
	var out Lateness
	var total float64
	for i := 1; i <= LatenessWindowDays; i++ {
		d := anchor.AddDays(-i)
		ivs := history[d]
		if len(ivs) == 0 {
			continue
		}
		sched := grid.ShiftFor(agent, d)
		if !sched.Assigned {
			continue
		}
		schedStart, ok := schedule.ParseStart(sched.Raw, d)
		if !ok {
			continue
		}
		first, _ := daySpan(ivs)
		delay := first.Sub(schedStart).Minutes()
		if delay >= LatenessThresholdMinutes {
			total += delay
			out.Incidents = append(out.Incidents, LateIncident{Date: d, Minutes: int(delay)})
		}
	}
	out.TotalMinutes = int(total)
	return out
}

// Absence summarizes the 90-day absence window.
type Absence struct {
	// Dates lists the absent days, most recent first.
	Dates []interval.Date
}

// ComputeAbsence checks each of the AbsenceWindowDays days preceding the
// anchor. A day is absent when an assigned shift exists but no presence
// interval started that day. Days with no schedule are not eligible to be
// absent and are skipped entirely.
func ComputeAbsence(history map[interval.Date][]interval.PresenceInterval, grid *schedule.Grid, agent string, anchor interval.Date) Absence {
	var out Absence
	for i := 1; i <= AbsenceWindowDays; i++ {
		d := anchor.AddDays(-i)
		if !grid.ShiftFor(agent, d).Assigned {
			continue
		}
		if len(history[d]) == 0 {
			out.Dates = append(out.Dates, d)
		}
	}
	return out
}
