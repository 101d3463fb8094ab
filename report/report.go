/*
Package report composes the sampler, schedule, and interval layers into the
named workforce metrics for one agent and date range.

PURPOSE:
  A Report is the full derived-metric record the rendering layer consumes:
  AHT and volume per channel, shift utilization, daily totals with lunch
  compliance, per-day adherence rows, long chat handles with transcript
  enrichment, and the rolling lateness and absence windows.

COMPUTATION MODEL:
  One Build call is one synchronous computation pass over the immutable
  snapshot. Nothing is cached between calls and nothing in the snapshot is
  mutated, so concurrent Build calls may share a snapshot.

VIEW TRIAGE:
  Before the detailed metrics run, the range is classified coarsely:
  - no assigned shift anywhere in range and no presence  -> ViewNoShift
  - an assigned shift exists but zero presence in range  -> ViewFullyAbsent
  - otherwise                                            -> ViewFull
  The rolling lateness and absence windows are computed for every view; the
  remaining metrics only for ViewFull.

SEE ALSO:
  - minutes.go: AHT and the minute-grid utilization loop
  - daily.go: daily decomposition and per-day adherence rows
  - windows.go: rolling lateness and absence windows
*/
package report

import (
	"time"

	"github.com/goatcx/agent-insight/dataset"
	"github.com/goatcx/agent-insight/enrich"
	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/metrics"
)

// =============================================================================
// THRESHOLD CONSTANTS
// =============================================================================

const (
	// LatenessThresholdMinutes is the delay, inclusive, at which a day counts
	// as late.
	LatenessThresholdMinutes = 5

	// LunchWindowMin and LunchWindowMax bound the expected lunch start offset
	// from the first segment of the day. Deltas strictly outside the window
	// are flagged.
	LunchWindowMin = 3 * time.Hour
	LunchWindowMax = 5 * time.Hour

	// ExpectedAvailablePerDay is the available-time target per worked day
	// (7h50m). Fixed for all agents.
	ExpectedAvailablePerDay = 7*time.Hour + 50*time.Minute

	// LatenessWindowDays and AbsenceWindowDays are the rolling look-back
	// windows, anchored to (and excluding) the end of the query range.
	LatenessWindowDays = 30
	AbsenceWindowDays  = 90
)

// =============================================================================
// VIEW SELECTION
// =============================================================================

// View is the coarse triage result for an agent and range.
type View string

const (
	ViewNoShift     View = "no_shift"
	ViewFullyAbsent View = "fully_absent"
	ViewFull        View = "full"
)

// =============================================================================
// REPORT
// =============================================================================

// Report is the derived-metric record for one agent and range. Constructed
// fresh per query, never persisted.
type Report struct {
	Agent string
	Range interval.DateRange
	View  View

	// Populated for ViewFull only.
	ChatAHT     ChannelAHT
	EmailAHT    ChannelAHT
	Utilization Utilization
	Daily       DailyTotals
	Days        []DayRow
	LongChats   []enrich.EnrichedHandle

	// Populated for every view.
	Lateness Lateness
	Absence  Absence
}

// Build runs the full computation pass for one agent and range.
func Build(snap *dataset.Snapshot, agent string, r interval.DateRange) *Report {
	timer := time.Now()

	rangeStart := r.StartTime()
	rangeEnd := r.EndTime()

	presence := interval.FilterPresence(snap.Presence, agent, rangeStart, rangeEnd)
	items := interval.FilterItems(snap.Items, agent, rangeStart, rangeEnd)

	// The rolling windows look back past the query range, so they index the
	// agent's full history rather than the range-filtered set.
	history := interval.GroupByStartDate(interval.AgentPresence(snap.Presence, agent))

	rep := &Report{
		Agent:    agent,
		Range:    r,
		View:     selectView(snap, agent, r, presence),
		Lateness: ComputeLateness(history, snap.Shifts, agent, r.End),
		Absence:  ComputeAbsence(history, snap.Shifts, agent, r.End),
	}

	if rep.View == ViewFull {
		rep.ChatAHT, rep.EmailAHT = ComputeAHT(items, r)
		rep.Utilization = ComputeUtilization(presence, items, rangeStart, rangeEnd)

		byDay := interval.GroupByStartDate(presence)
		rep.Daily = ComputeDaily(byDay, r)
		rep.Days = BuildDayRows(byDay, snap.Shifts, agent, r)

		long := enrich.LongChatHandles(items, enrich.LongHandleThreshold)
		rep.LongChats = enrich.Enrich(long, snap.Transcripts, agent, enrich.DefaultTolerance)
	}

	metrics.ReportDurationSeconds.Observe(time.Since(timer).Seconds())
	metrics.ReportsBuiltTotal.WithLabelValues(string(rep.View)).Inc()
	return rep
}

func selectView(snap *dataset.Snapshot, agent string, r interval.DateRange, presence []interval.PresenceInterval) View {
	hasShift := snap.Shifts.AssignedInRange(agent, r)
	switch {
	case !hasShift && len(presence) == 0:
		return ViewNoShift
	case len(presence) == 0:
		return ViewFullyAbsent
	default:
		return ViewFull
	}
}
