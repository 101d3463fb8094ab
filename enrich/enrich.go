/*
Package enrich joins long-running chat handles against transcript metadata.

PURPOSE:
  Work-item logs and chat transcripts are exported independently and share no
  key, but their start timestamps are recorded within moments of each other.
  For chat handles long enough to warrant review, this package attaches the
  transcript's case metadata by nearest-start-timestamp match within a
  tolerance window.

GUARANTEES:
  Enrichment is additive, never filtering: the output carries exactly one row
  per input long handle. A handle with no transcript within tolerance keeps a
  nil Transcript; multiple candidates never fan out, only the closest wins.
*/
package enrich

import (
	"time"

	"github.com/goatcx/agent-insight/interval"
)

// LongHandleThreshold is the handle time at which a chat is considered long.
const LongHandleThreshold = 15 * time.Minute

// DefaultTolerance is the default matching window around an item's start.
const DefaultTolerance = 10 * time.Minute

// EnrichedHandle is one long chat handle, with transcript metadata when a
// match was found.
type EnrichedHandle struct {
	Item interval.WorkItemInterval

	// Transcript is nil when no transcript started within tolerance.
	Transcript *interval.ChatTranscript

	// MatchOffset is the absolute distance between the item start and the
	// matched transcript start. Zero when Transcript is nil.
	MatchOffset time.Duration
}

// LongChatHandles returns the chat-channel items handled for at least
// threshold, preserving collection order.
func LongChatHandles(items []interval.WorkItemInterval, threshold time.Duration) []interval.WorkItemInterval {
	out := make([]interval.WorkItemInterval, 0)
	for _, iv := range items {
		if iv.Channel.Code == interval.ChannelChat && iv.Duration() >= threshold {
			out = append(out, iv)
		}
	}
	return out
}

// Enrich matches each long handle to the agent's transcript with the nearest
// start timestamp within tolerance. Output length always equals input length.
func Enrich(longHandles []interval.WorkItemInterval, transcripts []interval.ChatTranscript, agent string, tolerance time.Duration) []EnrichedHandle {
	out := make([]EnrichedHandle, 0, len(longHandles))
	for _, item := range longHandles {
		row := EnrichedHandle{Item: item}
		best := -1
		var bestDiff time.Duration
		for i, tr := range transcripts {
			if tr.Agent != agent {
				continue
			}
			diff := tr.Start.Sub(item.Start)
			if diff < 0 {
				diff = -diff
			}
			if diff > tolerance {
				continue
			}
			if best < 0 || diff < bestDiff {
				best, bestDiff = i, diff
			}
		}
		if best >= 0 {
			matched := transcripts[best]
			row.Transcript = &matched
			row.MatchOffset = bestDiff
		}
		out = append(out, row)
	}
	return out
}
