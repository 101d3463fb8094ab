/*
Package dataset holds the immutable loaded snapshot the engine computes over.

PURPOSE:
  One Snapshot is built per data load and shared read-only by every report
  computation. Nothing in the engine mutates a snapshot after construction;
  concurrent report requests may therefore share a single snapshot freely.

VALIDATION:
  Presence, work items, and the shift grid are required: a snapshot without
  any of them is a fatal, user-visible condition and construction fails.
  Transcripts are optional: a snapshot without them simply produces reports
  with no chat enrichment.
*/
package dataset

import (
	"errors"
	"sort"

	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/schedule"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoPresenceData is returned when the presence dataset is empty or absent.
	ErrNoPresenceData = errors.New("presence dataset is empty or missing")

	// ErrNoItemData is returned when the work-item dataset is empty or absent.
	ErrNoItemData = errors.New("work-item dataset is empty or missing")

	// ErrNoScheduleData is returned when the shift grid is empty or absent.
	ErrNoScheduleData = errors.New("shift schedule is empty or missing")
)

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the loaded data for one computation pass. Treat as read-only.
type Snapshot struct {
	Presence    []interval.PresenceInterval
	Items       []interval.WorkItemInterval
	Shifts      *schedule.Grid
	Transcripts []interval.ChatTranscript
}

// New validates the required datasets and builds a snapshot.
func New(
	presence []interval.PresenceInterval,
	items []interval.WorkItemInterval,
	shifts *schedule.Grid,
	transcripts []interval.ChatTranscript,
) (*Snapshot, error) {
	if len(presence) == 0 {
		return nil, ErrNoPresenceData
	}
	if len(items) == 0 {
		return nil, ErrNoItemData
	}
	if shifts == nil || shifts.Len() == 0 {
		return nil, ErrNoScheduleData
	}
	return &Snapshot{
		Presence:    presence,
		Items:       items,
		Shifts:      shifts,
		Transcripts: transcripts,
	}, nil
}

// HasTranscripts reports whether chat enrichment data is available.
func (s *Snapshot) HasTranscripts() bool { return len(s.Transcripts) > 0 }

// Agents returns the sorted distinct agent names seen in the presence data.
func (s *Snapshot) Agents() []string {
	seen := make(map[string]bool)
	for _, iv := range s.Presence {
		seen[iv.Agent] = true
	}
	agents := make([]string, 0, len(seen))
	for a := range seen {
		agents = append(agents, a)
	}
	sort.Strings(agents)
	return agents
}

// HasAgent reports whether the agent appears in the presence data.
func (s *Snapshot) HasAgent(agent string) bool {
	for _, iv := range s.Presence {
		if iv.Agent == agent {
			return true
		}
	}
	return false
}

// DateBounds returns the first and last calendar dates with presence data.
func (s *Snapshot) DateBounds() (min, max interval.Date, ok bool) {
	for _, iv := range s.Presence {
		d := interval.DateOf(iv.Start)
		if !ok {
			min, max, ok = d, d, true
			continue
		}
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, ok
}
