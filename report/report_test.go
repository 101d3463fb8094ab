package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatcx/agent-insight/dataset"
	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/report"
	"github.com/goatcx/agent-insight/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const agent = "Ana Perez"

func date(day int) interval.Date {
	return interval.NewDate(2025, time.June, day)
}

func ts(day, hour, min int) time.Time {
	return time.Date(2025, time.June, day, hour, min, 0, 0, time.UTC)
}

func presence(status string, start, end time.Time) interval.PresenceInterval {
	return interval.PresenceInterval{Agent: agent, Status: interval.DecodeStatus(status), Start: start, End: end}
}

func item(channel string, start, end time.Time) interval.WorkItemInterval {
	return interval.WorkItemInterval{Agent: agent, Channel: interval.DecodeChannel(channel), Start: start, End: end}
}

func byDay(ivs ...interval.PresenceInterval) map[interval.Date][]interval.PresenceInterval {
	return interval.GroupByStartDate(ivs)
}

func oneDay(day int) interval.DateRange {
	return interval.NewDateRange(date(day), date(day))
}

func newSnapshot(t *testing.T, grid *schedule.Grid, pres []interval.PresenceInterval, items []interval.WorkItemInterval) *dataset.Snapshot {
	t.Helper()
	if len(pres) == 0 {
		pres = []interval.PresenceInterval{presence("Available_Chat", ts(1, 9, 0), ts(1, 10, 0))}
	}
	if len(items) == 0 {
		items = []interval.WorkItemInterval{item(interval.ChannelNameChat, ts(1, 9, 0), ts(1, 9, 5))}
	}
	snap, err := dataset.New(pres, items, grid, nil)
	require.NoError(t, err)
	return snap
}

// =============================================================================
// SHIFT UTILIZATION
// =============================================================================

func TestUtilization_TenHandlingMinutesOfThreeHours(t *testing.T) {
	// GIVEN: available 09:00-12:00, one chat handled 09:10-09:20
	pres := []interval.PresenceInterval{presence("Available_Chat", ts(13, 9, 0), ts(13, 12, 0))}
	items := []interval.WorkItemInterval{item(interval.ChannelNameChat, ts(13, 9, 10), ts(13, 9, 20))}

	// WHEN: sampling [09:00, 12:00)
	u := report.ComputeUtilization(pres, items, ts(13, 9, 0), ts(13, 12, 0))

	// THEN: 10 handling minutes over 180 available, ratio ~= 0.0556
	assert.Equal(t, 180, u.AvailableMinutes)
	assert.Equal(t, 10, u.HandlingMinutes)
	assert.True(t, u.Ratio.Round(4).Equal(decimal.NewFromFloat(0.0556)), "got %s", u.Ratio)
}

func TestUtilization_ZeroAvailableMinutes(t *testing.T) {
	// GIVEN: only non-available statuses
	pres := []interval.PresenceInterval{presence("Busy_Lunch", ts(13, 9, 0), ts(13, 12, 0))}

	u := report.ComputeUtilization(pres, nil, ts(13, 9, 0), ts(13, 12, 0))

	// THEN: explicit zero, not an error
	assert.Zero(t, u.AvailableMinutes)
	assert.True(t, u.Ratio.IsZero())
}

func TestUtilization_AlwaysWithinUnitInterval(t *testing.T) {
	// Handling requires availability, so the ratio can never exceed one even
	// when items run around the clock.
	pres := []interval.PresenceInterval{presence("Available_All", ts(13, 9, 0), ts(13, 10, 0))}
	items := []interval.WorkItemInterval{item(interval.ChannelNameChat, ts(13, 0, 0), ts(13, 23, 0))}

	u := report.ComputeUtilization(pres, items, ts(13, 0, 0), ts(13, 23, 59))

	assert.Equal(t, 60, u.AvailableMinutes)
	assert.Equal(t, 60, u.HandlingMinutes)
	assert.True(t, u.Ratio.Equal(decimal.NewFromInt(1)))
}

func TestUtilization_NonChannelItemsDoNotCount(t *testing.T) {
	pres := []interval.PresenceInterval{presence("Available_All", ts(13, 9, 0), ts(13, 10, 0))}
	items := []interval.WorkItemInterval{item("phoneChannel", ts(13, 9, 0), ts(13, 10, 0))}

	u := report.ComputeUtilization(pres, items, ts(13, 9, 0), ts(13, 10, 0))

	assert.Equal(t, 60, u.AvailableMinutes)
	assert.Zero(t, u.HandlingMinutes)
}

// =============================================================================
// AHT
// =============================================================================

func TestAHT_MeanPerChannel(t *testing.T) {
	items := []interval.WorkItemInterval{
		item(interval.ChannelNameChat, ts(13, 9, 0), ts(13, 9, 10)),  // 600s
		item(interval.ChannelNameChat, ts(13, 10, 0), ts(13, 10, 4)), // 240s
		item(interval.ChannelNameEmail, ts(13, 11, 0), ts(13, 11, 5)),
	}

	chat, email := report.ComputeAHT(items, oneDay(13))

	require.NotNil(t, chat.MeanSeconds)
	assert.Equal(t, 2, chat.Count)
	assert.True(t, chat.MeanSeconds.Equal(decimal.NewFromInt(420)), "got %s", chat.MeanSeconds)
	assert.Equal(t, 1, email.Count)
	assert.True(t, email.MeanSeconds.Equal(decimal.NewFromInt(300)))
}

func TestAHT_NoItemsIsNoData(t *testing.T) {
	chat, email := report.ComputeAHT(nil, oneDay(13))
	assert.Nil(t, chat.MeanSeconds, "no data is nil, never zero")
	assert.Nil(t, email.MeanSeconds)
	assert.Zero(t, chat.Count)
	assert.Zero(t, email.Count)
}

func TestAHT_ContainsByStartDateNotOverlap(t *testing.T) {
	// GIVEN: an item that started the day before the range but ran into it
	items := []interval.WorkItemInterval{
		item(interval.ChannelNameChat, ts(12, 23, 50), ts(13, 0, 20)),
		item(interval.ChannelNameChat, ts(13, 9, 0), ts(13, 9, 10)),
	}

	chat, _ := report.ComputeAHT(items, oneDay(13))

	// THEN: only the item that STARTED inside the range contributes
	assert.Equal(t, 1, chat.Count)
	assert.True(t, chat.MeanSeconds.Equal(decimal.NewFromInt(600)))
}

// =============================================================================
// DAILY DECOMPOSITION
// =============================================================================

func TestDaily_ShiftSpanCoversGaps(t *testing.T) {
	// GIVEN: two segments with a break between them
	days := byDay(
		presence("Available_Chat", ts(13, 9, 0), ts(13, 12, 0)),
		presence("Available_Chat", ts(13, 13, 0), ts(13, 17, 0)),
	)

	totals := report.ComputeDaily(days, oneDay(13))

	// THEN: shift span is first start to last end (8h), available is net (7h)
	assert.Equal(t, 1, totals.DaysWorked)
	assert.Equal(t, float64(8*3600), totals.TotalShiftSeconds)
	assert.Equal(t, float64(7*3600), totals.TotalAvailableSeconds)
}

func TestDaily_LunchTooEarlyIsOutOfWindow(t *testing.T) {
	// GIVEN: shift starts 09:00, lunch starts 11:30 (2.5 hours in)
	days := byDay(
		presence("Available_Chat", ts(13, 9, 0), ts(13, 11, 30)),
		presence("Busy_Lunch", ts(13, 11, 30), ts(13, 12, 0)),
	)

	totals := report.ComputeDaily(days, oneDay(13))

	assert.Equal(t, 1, totals.LunchDaysWithData)
	assert.Equal(t, 1, totals.LunchDaysOutOfWindow, "2.5h < 3h window minimum")
}

func TestDaily_LunchInsideWindow(t *testing.T) {
	// Lunch exactly 4 hours after shift start passes.
	days := byDay(
		presence("Available_Chat", ts(13, 9, 0), ts(13, 13, 0)),
		presence("Busy_Lunch", ts(13, 13, 0), ts(13, 13, 30)),
	)

	totals := report.ComputeDaily(days, oneDay(13))

	assert.Equal(t, 1, totals.LunchDaysWithData)
	assert.Zero(t, totals.LunchDaysOutOfWindow)
}

func TestDaily_LunchTooLateIsOutOfWindow(t *testing.T) {
	days := byDay(
		presence("Available_Chat", ts(13, 9, 0), ts(13, 14, 30)),
		presence("Busy_Lunch", ts(13, 14, 30), ts(13, 15, 0)),
	)

	totals := report.ComputeDaily(days, oneDay(13))

	assert.Equal(t, 1, totals.LunchDaysOutOfWindow, "5.5h > 5h window maximum")
}

func TestDaily_NoLunchDayJoinsNeitherCount(t *testing.T) {
	days := byDay(presence("Available_Chat", ts(13, 9, 0), ts(13, 17, 0)))

	totals := report.ComputeDaily(days, oneDay(13))

	assert.Zero(t, totals.LunchDaysWithData)
	assert.Zero(t, totals.LunchDaysOutOfWindow)
}

func TestDaily_AvailabilityWarning(t *testing.T) {
	// GIVEN: one worked day with only 6h available (target is 7h50m/day)
	days := byDay(presence("Available_All", ts(13, 9, 0), ts(13, 15, 0)))

	totals := report.ComputeDaily(days, oneDay(13))

	assert.True(t, totals.AvailabilityWarning)

	// And a day meeting the target raises no warning.
	days = byDay(presence("Available_All", ts(13, 9, 0), ts(13, 16, 50)))
	totals = report.ComputeDaily(days, oneDay(13))
	assert.False(t, totals.AvailabilityWarning)
}

func TestDaily_NoDataNoWarning(t *testing.T) {
	totals := report.ComputeDaily(nil, oneDay(13))
	assert.Zero(t, totals.DaysWorked)
	assert.False(t, totals.AvailabilityWarning)
}

// =============================================================================
// PER-DAY ADHERENCE CLASSIFICATION
// =============================================================================

func adherenceGrid() *schedule.Grid {
	g := schedule.NewGrid()
	g.Add(agent, date(13), "09:00 AM - 05:00 PM")
	g.Add(agent, date(14), "Not Assigned")
	g.Add(agent, date(15), "09:00 AM - 05:00 PM")
	g.Add(agent, date(16), "09:00 AM - 05:00 PM")
	g.Add(agent, date(17), "whenever works") // unparseable
	return g
}

func TestDayRows_LateSevenMinutes(t *testing.T) {
	// GIVEN: schedule 09:00 AM, first presence at 09:07
	days := byDay(presence("Available_Chat", ts(13, 9, 7), ts(13, 17, 0)))

	rows := report.BuildDayRows(days, adherenceGrid(), agent, oneDay(13))

	require.Len(t, rows, 1)
	assert.Equal(t, report.DayLate, rows[0].Status)
	require.NotNil(t, rows[0].LateMinutes)
	assert.Equal(t, 7, *rows[0].LateMinutes)
}

func TestDayRows_ExactlyFiveMinutesIsLate(t *testing.T) {
	// The threshold is inclusive at exactly 5 minutes.
	days := byDay(presence("Available_Chat", ts(13, 9, 5), ts(13, 17, 0)))

	rows := report.BuildDayRows(days, adherenceGrid(), agent, oneDay(13))

	assert.Equal(t, report.DayLate, rows[0].Status)
	assert.Equal(t, 5, *rows[0].LateMinutes)
}

func TestDayRows_UnderFiveMinutesIsOnTime(t *testing.T) {
	days := byDay(presence("Available_Chat", ts(13, 9, 4), ts(13, 17, 0)))

	rows := report.BuildDayRows(days, adherenceGrid(), agent, oneDay(13))

	assert.Equal(t, report.DayOnTime, rows[0].Status)
	assert.Nil(t, rows[0].LateMinutes)
}

func TestDayRows_NoPresenceWithScheduleIsAbsent(t *testing.T) {
	rows := report.BuildDayRows(nil, adherenceGrid(), agent, oneDay(15))
	require.Len(t, rows, 1)
	assert.Equal(t, report.DayAbsentScheduled, rows[0].Status)
	assert.False(t, rows[0].HasPresence)
}

func TestDayRows_NoPresenceNoScheduleIsDayOff(t *testing.T) {
	rows := report.BuildDayRows(nil, adherenceGrid(), agent, oneDay(14))
	assert.Equal(t, report.DayOffNotAssigned, rows[0].Status)

	// A date with no grid column at all classifies the same way.
	rows = report.BuildDayRows(nil, adherenceGrid(), agent, oneDay(25))
	assert.Equal(t, report.DayOffNotAssigned, rows[0].Status)
}

func TestDayRows_UnparseableScheduleStaysWorked(t *testing.T) {
	days := byDay(presence("Available_Chat", ts(17, 9, 30), ts(17, 17, 0)))

	rows := report.BuildDayRows(days, adherenceGrid(), agent, oneDay(17))

	assert.Equal(t, report.DayWorked, rows[0].Status)
	assert.Nil(t, rows[0].LateMinutes)
}

func TestDayRows_ClassificationIsTotal(t *testing.T) {
	// Every date in range maps to exactly one status.
	days := byDay(
		presence("Available_Chat", ts(13, 9, 7), ts(13, 17, 0)),
		presence("Available_Chat", ts(17, 9, 0), ts(17, 17, 0)),
	)
	r := interval.NewDateRange(date(13), date(17))

	rows := report.BuildDayRows(days, adherenceGrid(), agent, r)

	require.Len(t, rows, 5)
	valid := map[report.DayStatus]bool{
		report.DayAbsentScheduled: true,
		report.DayOffNotAssigned:  true,
		report.DayWorked:          true,
		report.DayLate:            true,
		report.DayOnTime:          true,
	}
	for _, row := range rows {
		assert.True(t, valid[row.Status], "date %s has status %q", row.Date, row.Status)
	}
}

// =============================================================================
// LATENESS WINDOW (30 DAYS)
// =============================================================================

func TestLateness_AccumulatesIncidents(t *testing.T) {
	g := schedule.NewGrid()
	g.Add(agent, date(10), "09:00 AM - 05:00 PM")
	g.Add(agent, date(11), "09:00 AM - 05:00 PM")
	g.Add(agent, date(12), "09:00 AM - 05:00 PM")

	history := interval.GroupByStartDate([]interval.PresenceInterval{
		presence("Available_Chat", ts(10, 9, 12), ts(10, 17, 0)), // 12 late
		presence("Available_Chat", ts(11, 9, 2), ts(11, 17, 0)),  // on time, skipped
		presence("Available_Chat", ts(12, 9, 5), ts(12, 17, 0)),  // exactly 5, late
	})

	l := report.ComputeLateness(history, g, agent, date(20))

	require.Len(t, l.Incidents, 2)
	assert.Equal(t, 17, l.TotalMinutes)
	// Most recent day first.
	assert.Equal(t, date(12), l.Incidents[0].Date)
	assert.Equal(t, 5, l.Incidents[0].Minutes)
	assert.Equal(t, date(10), l.Incidents[1].Date)
	assert.Equal(t, 12, l.Incidents[1].Minutes)
}

func TestLateness_SkipsDaysWithoutScheduleOrPresence(t *testing.T) {
	// GIVEN: a late-looking day with no schedule, and a scheduled day with
	// no presence
	g := schedule.NewGrid()
	g.Add(agent, date(11), "09:00 AM - 05:00 PM")

	history := interval.GroupByStartDate([]interval.PresenceInterval{
		presence("Available_Chat", ts(10, 11, 0), ts(10, 17, 0)), // no schedule
	})

	l := report.ComputeLateness(history, g, agent, date(20))

	// THEN: both days are silently skipped, not on-time, not absent
	assert.Empty(t, l.Incidents)
	assert.Zero(t, l.TotalMinutes)
}

func TestLateness_AnchorDayExcluded(t *testing.T) {
	g := schedule.NewGrid()
	g.Add(agent, date(20), "09:00 AM - 05:00 PM")

	history := interval.GroupByStartDate([]interval.PresenceInterval{
		presence("Available_Chat", ts(20, 10, 0), ts(20, 17, 0)),
	})

	l := report.ComputeLateness(history, g, agent, date(20))
	assert.Empty(t, l.Incidents, "window precedes the anchor date")
}

// =============================================================================
// ABSENCE WINDOW (90 DAYS)
// =============================================================================

func TestAbsence_ScheduledDaysWithoutPresence(t *testing.T) {
	g := schedule.NewGrid()
	g.Add(agent, date(10), "09:00 AM - 05:00 PM") // absent
	g.Add(agent, date(11), "09:00 AM - 05:00 PM") // worked
	g.Add(agent, date(12), "Not Assigned")        // not eligible

	history := interval.GroupByStartDate([]interval.PresenceInterval{
		presence("Available_Chat", ts(11, 9, 0), ts(11, 17, 0)),
	})

	a := report.ComputeAbsence(history, g, agent, date(20))

	require.Len(t, a.Dates, 1)
	assert.Equal(t, date(10), a.Dates[0])
}

func TestAbsence_UnscheduledDaysNeverAbsent(t *testing.T) {
	a := report.ComputeAbsence(nil, schedule.NewGrid(), agent, date(20))
	assert.Empty(t, a.Dates)
}

// =============================================================================
// VIEW SELECTION AND FULL BUILD
// =============================================================================

func TestBuild_NoShiftView(t *testing.T) {
	// GIVEN: no schedule in range and no presence in range
	g := schedule.NewGrid()
	g.Add(agent, date(1), "09:00 AM - 05:00 PM") // outside range
	snap := newSnapshot(t, g, nil, nil)

	rep := report.Build(snap, agent, oneDay(13))

	assert.Equal(t, report.ViewNoShift, rep.View)
	assert.Empty(t, rep.Days)
}

func TestBuild_FullyAbsentView(t *testing.T) {
	// GIVEN: a scheduled shift in range but zero presence in range
	g := schedule.NewGrid()
	g.Add(agent, date(1), "09:00 AM - 05:00 PM")
	g.Add(agent, date(13), "09:00 AM - 05:00 PM")
	snap := newSnapshot(t, g, nil, nil)

	rep := report.Build(snap, agent, oneDay(13))

	assert.Equal(t, report.ViewFullyAbsent, rep.View)
}

func TestBuild_FullView(t *testing.T) {
	// GIVEN: schedule 09:00 AM - 05:00 PM, presence from 09:07, a handled
	// chat, and a prior absent day inside the rolling windows
	g := schedule.NewGrid()
	g.Add(agent, date(12), "09:00 AM - 05:00 PM") // scheduled, no presence
	g.Add(agent, date(13), "09:00 AM - 05:00 PM")

	pres := []interval.PresenceInterval{
		presence("Available_Chat", ts(13, 9, 7), ts(13, 12, 0)),
		presence("Busy_Lunch", ts(13, 12, 7), ts(13, 12, 37)),
		presence("Available_Chat", ts(13, 12, 37), ts(13, 17, 0)),
	}
	items := []interval.WorkItemInterval{
		item(interval.ChannelNameChat, ts(13, 9, 10), ts(13, 9, 20)),
	}
	snap := newSnapshot(t, g, pres, items)

	rep := report.Build(snap, agent, oneDay(13))

	assert.Equal(t, report.ViewFull, rep.View)

	// Adherence: 7 minutes late.
	require.Len(t, rep.Days, 1)
	assert.Equal(t, report.DayLate, rep.Days[0].Status)
	assert.Equal(t, 7, *rep.Days[0].LateMinutes)

	// AHT: one 600s chat, no email data.
	assert.Equal(t, 1, rep.ChatAHT.Count)
	require.NotNil(t, rep.ChatAHT.MeanSeconds)
	assert.Nil(t, rep.EmailAHT.MeanSeconds)

	// Daily: lunch 3h into the shift (09:07 -> 12:07) is inside the window.
	assert.Equal(t, 1, rep.Daily.LunchDaysWithData)
	assert.Zero(t, rep.Daily.LunchDaysOutOfWindow)

	// Rolling windows see the missed scheduled day before the range.
	require.Len(t, rep.Absence.Dates, 1)
	assert.Equal(t, date(12), rep.Absence.Dates[0])
}

func TestBuild_DoesNotMutateSnapshot(t *testing.T) {
	g := schedule.NewGrid()
	g.Add(agent, date(13), "09:00 AM - 05:00 PM")
	pres := []interval.PresenceInterval{presence("Available_Chat", ts(13, 9, 0), ts(13, 17, 0))}
	snap := newSnapshot(t, g, pres, nil)

	before := len(snap.Presence)
	_ = report.Build(snap, agent, oneDay(13))
	_ = report.Build(snap, agent, oneDay(13))

	assert.Equal(t, before, len(snap.Presence))
	assert.Equal(t, ts(13, 9, 0), snap.Presence[0].Start)
}
