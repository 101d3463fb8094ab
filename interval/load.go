package interval

import (
	"strings"
	"time"
)

// =============================================================================
// RAW ROWS - Pre-normalization records handed over by the I/O layer
// =============================================================================

// RawPresenceRow is one unvalidated presence log row.
type RawPresenceRow struct {
	Agent  string
	Status string
	Start  string
	End    string
}

// RawItemRow is one unvalidated work-item log row.
type RawItemRow struct {
	Agent   string
	Channel string
	Start   string
	End     string
}

// RawTranscriptRow is one unvalidated chat transcript row.
type RawTranscriptRow struct {
	Agent          string
	Start          string
	End            string
	CaseNumber     string
	VisitorEmail   string
	ButtonName     string
	TranscriptName string
}

// Timestamps in the report exports use day-first dates. Seconds and the time
// component itself are optional.
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"02/01/2006",
	"2/1/2006",
}

// ParseDayFirst parses a day-first timestamp. The second return is false when
// no known layout matches; callers drop such rows rather than failing the run.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// =============================================================================
// NORMALIZATION - Raw rows to validated intervals
// =============================================================================
// Data quality issues are routine in these exports. Rows with unparseable
// timestamps, missing key fields, or a non-positive duration are dropped
// silently; the dropped count is returned so the caller can log and meter it.

// LoadPresence normalizes raw presence rows into validated intervals.
func LoadPresence(rows []RawPresenceRow) ([]PresenceInterval, int) {
	out := make([]PresenceInterval, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		agent := strings.TrimSpace(row.Agent)
		start, okStart := ParseDayFirst(row.Start)
		end, okEnd := ParseDayFirst(row.End)
		if agent == "" || !okStart || !okEnd || !start.Before(end) {
			dropped++
			continue
		}
		out = append(out, PresenceInterval{
			Agent:  agent,
			Status: DecodeStatus(row.Status),
			Start:  start,
			End:    end,
		})
	}
	return out, dropped
}

// LoadItems normalizes raw work-item rows into validated intervals.
func LoadItems(rows []RawItemRow) ([]WorkItemInterval, int) {
	out := make([]WorkItemInterval, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		agent := strings.TrimSpace(row.Agent)
		start, okStart := ParseDayFirst(row.Start)
		end, okEnd := ParseDayFirst(row.End)
		if agent == "" || !okStart || !okEnd || !start.Before(end) {
			dropped++
			continue
		}
		out = append(out, WorkItemInterval{
			Agent:   agent,
			Channel: DecodeChannel(row.Channel),
			Start:   start,
			End:     end,
		})
	}
	return out, dropped
}

// LoadTranscripts normalizes raw transcript rows. Non-positive durations are
// abandoned chats and count as dropped.
func LoadTranscripts(rows []RawTranscriptRow) ([]ChatTranscript, int) {
	out := make([]ChatTranscript, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		agent := strings.TrimSpace(row.Agent)
		start, okStart := ParseDayFirst(row.Start)
		end, okEnd := ParseDayFirst(row.End)
		if agent == "" || !okStart || !okEnd || !start.Before(end) {
			dropped++
			continue
		}
		out = append(out, ChatTranscript{
			Agent:          agent,
			Start:          start,
			End:            end,
			CaseNumber:     strings.TrimSpace(row.CaseNumber),
			VisitorEmail:   strings.TrimSpace(row.VisitorEmail),
			ButtonName:     strings.TrimSpace(row.ButtonName),
			TranscriptName: strings.TrimSpace(row.TranscriptName),
		})
	}
	return out, dropped
}

// =============================================================================
// RANGE FILTER - Inclusive overlap selection
// =============================================================================
// An interval belongs to a query range when end >= rangeStart AND
// start <= rangeEnd. Intervals crossing the boundary (midnight spans
// included) are returned whole, never clipped.

func overlaps(start, end, rangeStart, rangeEnd time.Time) bool {
	return !end.Before(rangeStart) && !start.After(rangeEnd)
}

// FilterPresence returns the agent's presence intervals overlapping the range,
// preserving collection order.
func FilterPresence(in []PresenceInterval, agent string, rangeStart, rangeEnd time.Time) []PresenceInterval {
	out := make([]PresenceInterval, 0)
	for _, iv := range in {
		if iv.Agent == agent && overlaps(iv.Start, iv.End, rangeStart, rangeEnd) {
			out = append(out, iv)
		}
	}
	return out
}

// FilterItems returns the agent's work items overlapping the range, preserving
// collection order.
func FilterItems(in []WorkItemInterval, agent string, rangeStart, rangeEnd time.Time) []WorkItemInterval {
	out := make([]WorkItemInterval, 0)
	for _, iv := range in {
		if iv.Agent == agent && overlaps(iv.Start, iv.End, rangeStart, rangeEnd) {
			out = append(out, iv)
		}
	}
	return out
}

// AgentPresence returns all presence intervals for one agent, preserving
// collection order. The rolling lateness and absence windows look back past
// the query range, so they need the unclipped history.
func AgentPresence(in []PresenceInterval, agent string) []PresenceInterval {
	out := make([]PresenceInterval, 0)
	for _, iv := range in {
		if iv.Agent == agent {
			out = append(out, iv)
		}
	}
	return out
}

// GroupByStartDate partitions presence intervals by the calendar date of each
// interval's start, preserving collection order within a day.
func GroupByStartDate(in []PresenceInterval) map[Date][]PresenceInterval {
	byDay := make(map[Date][]PresenceInterval)
	for _, iv := range in {
		d := DateOf(iv.Start)
		byDay[d] = append(byDay[d], iv)
	}
	return byDay
}
