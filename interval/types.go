/*
Package interval provides the core interval types for the analytics engine.

PURPOSE:
  This package normalizes the three raw time-series inputs (presence status
  logs, work-item logs, and chat transcripts) into validated half-open time
  intervals that the sampler and report packages compute over.

KEY CONCEPTS IN THIS FILE (types.go):
  - Status: a presence status decoded once at load time into a closed enum,
    with the raw string preserved for unrecognized values
  - Channel: a work-item service channel decoded the same way
  - PresenceInterval / WorkItemInterval / ChatTranscript: the three record types

DESIGN PRINCIPLES:
  1. Immutability: intervals are never modified after load; every computation
     pass works on the loaded snapshot as-is
  2. Half-open semantics: an interval is active at t when start <= t < end
  3. Decode once: status and channel strings are classified at load time, not
     compared as strings inside the hot sampling loop

SEE ALSO:
  - load.go: raw-row normalization and the range filter
  - date.go: civil date and date-range helpers
*/
package interval

import (
	"strings"
	"time"
)

// =============================================================================
// PRESENCE STATUS
// =============================================================================

// StatusCode classifies a presence status into the values the engine acts on.
// Anything else is StatusOther: carried through untouched, never treated as
// available or lunch time.
type StatusCode int

const (
	StatusOther StatusCode = iota
	StatusAvailableChat
	StatusAvailableEmailWeb
	StatusAvailableAll
	StatusBusyLunch
)

// Status pairs the decoded code with the raw (trimmed) status string so that
// unrecognized statuses survive round trips to the rendering layer.
type Status struct {
	Code StatusCode
	Raw  string
}

// DecodeStatus classifies a raw status string. Comparison is exact and
// case-sensitive after trimming, matching the upstream report export.
func DecodeStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "Available_Chat":
		return Status{Code: StatusAvailableChat, Raw: raw}
	case "Available_Email_and_Web":
		return Status{Code: StatusAvailableEmailWeb, Raw: raw}
	case "Available_All":
		return Status{Code: StatusAvailableAll, Raw: raw}
	case "Busy_Lunch":
		return Status{Code: StatusBusyLunch, Raw: raw}
	default:
		return Status{Code: StatusOther, Raw: raw}
	}
}

// IsAvailable reports whether the status counts as available working time.
func (s Status) IsAvailable() bool {
	switch s.Code {
	case StatusAvailableChat, StatusAvailableEmailWeb, StatusAvailableAll:
		return true
	default:
		return false
	}
}

// IsLunch reports whether the status is the lunch-break status.
func (s Status) IsLunch() bool { return s.Code == StatusBusyLunch }

// =============================================================================
// WORK-ITEM CHANNEL
// =============================================================================

// ChannelCode classifies a service channel. The concrete strings are
// deployment constants of the source system, not values parsed from data.
type ChannelCode int

const (
	ChannelOther ChannelCode = iota
	ChannelChat
	ChannelEmail
)

// Channel developer names as exported by the source system.
const (
	ChannelNameChat  = "sfdc_liveagent"
	ChannelNameEmail = "casesChannel"
)

// Channel pairs the decoded code with the raw (trimmed) channel string.
type Channel struct {
	Code ChannelCode
	Raw  string
}

// DecodeChannel classifies a raw channel string.
func DecodeChannel(raw string) Channel {
	raw = strings.TrimSpace(raw)
	switch raw {
	case ChannelNameChat:
		return Channel{Code: ChannelChat, Raw: raw}
	case ChannelNameEmail:
		return Channel{Code: ChannelEmail, Raw: raw}
	default:
		return Channel{Code: ChannelOther, Raw: raw}
	}
}

// =============================================================================
// INTERVAL RECORDS
// =============================================================================

// PresenceInterval is one presence-status segment for an agent.
// Invariant (enforced at load): Start < End.
type PresenceInterval struct {
	Agent  string
	Status Status
	Start  time.Time
	End    time.Time
}

// Duration returns the interval length.
func (p PresenceInterval) Duration() time.Duration { return p.End.Sub(p.Start) }

// ActiveAt reports whether the interval covers t (half-open).
func (p PresenceInterval) ActiveAt(t time.Time) bool {
	return !p.Start.After(t) && p.End.After(t)
}

// WorkItemInterval is one handled work item (chat session or email case),
// end-to-end. Invariant (enforced at load): Start < End.
type WorkItemInterval struct {
	Agent   string
	Channel Channel
	Start   time.Time
	End     time.Time
}

// Duration returns the handle time of the item.
func (w WorkItemInterval) Duration() time.Duration { return w.End.Sub(w.Start) }

// ActiveAt reports whether the item is being handled at t (half-open).
func (w WorkItemInterval) ActiveAt(t time.Time) bool {
	return !w.Start.After(t) && w.End.After(t)
}

// ChatTranscript is one chat transcript record with case metadata. Records
// with non-positive duration are abandoned chats and dropped at load.
type ChatTranscript struct {
	Agent          string
	Start          time.Time
	End            time.Time
	CaseNumber     string
	VisitorEmail   string
	ButtonName     string
	TranscriptName string
}

// Duration returns the transcript length.
func (c ChatTranscript) Duration() time.Duration { return c.End.Sub(c.Start) }
