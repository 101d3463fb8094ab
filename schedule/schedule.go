/*
Package schedule resolves scheduled shifts for agents.

PURPOSE:
  The shift roster arrives as a wide grid: one row per agent, one column per
  calendar date, each cell holding a shift-range string like
  "09:00 AM - 05:00 PM" or the sentinel "Not Assigned". This package turns
  that grid into a sparse (agent, date) lookup and parses shift strings into
  concrete start/end times anchored to a date.

LOOKUP RULES:
  - Agent match is case-insensitive (roster names drift in capitalization)
  - Date keys use the DD/MM/YYYY column format of the source grid
  - Empty cells, missing columns, and the literal "not assigned" (any case)
    all normalize to the same unassigned sentinel; callers must treat
    unassigned as "no schedule", never as an error

PARSING RULES:
  - Shift strings are "<clock> - <clock>" with 12-hour AM/PM clocks
  - Any parse failure yields no result rather than an error
  - Overnight shifts (end clock earlier than start) are not supported; the
    parser anchors both clocks to the same date, which is what the source
    system emits today (see DESIGN.md)
*/
package schedule

import (
	"strings"
	"time"

	"github.com/goatcx/agent-insight/interval"
)

// NotAssigned is the roster sentinel for a cell with no shift.
const NotAssigned = "not assigned"

// =============================================================================
// SHIFT - One roster cell, normalized
// =============================================================================

// Shift is the normalized value of one roster cell.
type Shift struct {
	// Raw is the trimmed cell text, empty when the cell was blank or missing.
	Raw string
	// Assigned is false for blank cells, missing columns, and the
	// "not assigned" sentinel.
	Assigned bool
}

// normalizeCell maps raw cell text onto the Shift sentinel rules.
func normalizeCell(raw string) Shift {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, NotAssigned) {
		return Shift{Raw: raw, Assigned: false}
	}
	return Shift{Raw: raw, Assigned: true}
}

// =============================================================================
// GRID - Sparse (agent, date) -> shift mapping
// =============================================================================

// Grid is the loaded shift roster. It is read-only after construction.
type Grid struct {
	// rows maps lowercased agent name -> DD/MM/YYYY key -> raw cell text.
	rows map[string]map[string]string
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{rows: make(map[string]map[string]string)}
}

// Add records one roster cell. Agent names are trimmed; lookup is
// case-insensitive.
func (g *Grid) Add(agent string, date interval.Date, cell string) {
	key := strings.ToLower(strings.TrimSpace(agent))
	if key == "" {
		return
	}
	row, ok := g.rows[key]
	if !ok {
		row = make(map[string]string)
		g.rows[key] = row
	}
	row[date.Key()] = cell
}

// Len returns the number of agents in the grid.
func (g *Grid) Len() int { return len(g.rows) }

// HasAgent reports whether the roster has a row for the agent.
func (g *Grid) HasAgent(agent string) bool {
	_, ok := g.rows[strings.ToLower(strings.TrimSpace(agent))]
	return ok
}

// ShiftFor resolves the scheduled shift for an agent on a date. A missing
// row, missing column, blank cell, or "not assigned" cell all come back
// unassigned.
func (g *Grid) ShiftFor(agent string, date interval.Date) Shift {
	row, ok := g.rows[strings.ToLower(strings.TrimSpace(agent))]
	if !ok {
		return Shift{}
	}
	cell, ok := row[date.Key()]
	if !ok {
		return Shift{}
	}
	return normalizeCell(cell)
}

// AssignedInRange reports whether the agent has at least one assigned shift
// on any day of the range.
func (g *Grid) AssignedInRange(agent string, r interval.DateRange) bool {
	for _, d := range r.Days() {
		if g.ShiftFor(agent, d).Assigned {
			return true
		}
	}
	return false
}

// =============================================================================
// SHIFT-STRING PARSING
// =============================================================================

const clockLayout = "3:04 PM"

// ParseRange parses a "<clock> - <clock>" shift string anchored to a date.
// The ok return is false on any malformed input.
func ParseRange(shift string, date interval.Date) (start, end time.Time, ok bool) {
	shift = strings.TrimSpace(shift)
	if shift == "" || !strings.Contains(shift, " - ") {
		return time.Time{}, time.Time{}, false
	}
	parts := strings.SplitN(shift, " - ", 2)
	startClock, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(parts[0])))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endClock, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(parts[1])))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start = date.At(startClock.Hour(), startClock.Minute())
	end = date.At(endClock.Hour(), endClock.Minute())
	return start, end, true
}

// ParseStart parses only the scheduled start of a shift string.
func ParseStart(shift string, date interval.Date) (time.Time, bool) {
	start, _, ok := ParseRange(shift, date)
	return start, ok
}
