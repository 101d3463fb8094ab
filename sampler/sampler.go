/*
Package sampler answers point-in-time questions over interval collections.

PURPOSE:
  The utilization metric walks a dense minute grid asking two questions per
  minute: "what presence status is active at t" and "is the agent handling a
  work item at t". An interval is active at t under the half-open rule
  start <= t < end.

TIE-BREAK:
  Source data occasionally contains overlapping presence intervals. When more
  than one interval is active at the same instant, the FIRST interval in the
  collection's original order wins. This is a deterministic, documented
  arbitrary policy, not a statement about which record is correct. Callers
  must not assume anything beyond "first encountered".

PERFORMANCE:
  StatusAt and IsHandlingAt scan the whole collection per call, which is
  O(minutes x intervals) across a minute grid, quadratic-ish over multi-day
  ranges. PresenceCursor and ItemCursor are the sweep equivalents: intervals
  are sorted by start once and a pointer advances as t increases
  monotonically, giving O(minutes + intervals log intervals). The cursors are
  functionally transparent; they preserve the first-wins tie-break and return
  exactly what the naive scan returns (the equivalence is exercised in the
  package tests).
*/
package sampler

import (
	"sort"
	"time"

	"github.com/goatcx/agent-insight/interval"
)

// =============================================================================
// NAIVE POINT LOOKUPS - The reference semantics
// =============================================================================

// StatusAt returns the presence status active at t, or ok=false when no
// interval covers t. Under overlap the first interval in collection order
// wins.
func StatusAt(intervals []interval.PresenceInterval, t time.Time) (interval.Status, bool) {
	for _, iv := range intervals {
		if iv.ActiveAt(t) {
			return iv.Status, true
		}
	}
	return interval.Status{}, false
}

// IsHandlingAt reports whether at least one work item of an allowed channel
// is active at t.
func IsHandlingAt(items []interval.WorkItemInterval, t time.Time, channels ...interval.ChannelCode) bool {
	for _, iv := range items {
		if !iv.ActiveAt(t) {
			continue
		}
		for _, c := range channels {
			if iv.Channel.Code == c {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// PRESENCE CURSOR - Monotone sweep over a presence collection
// =============================================================================

type presenceEntry struct {
	iv  interval.PresenceInterval
	pos int // position in the original collection, for the tie-break
}

// PresenceCursor samples presence statuses along a non-decreasing sequence of
// instants. Build a fresh cursor per pass; it is not safe for concurrent use.
type PresenceCursor struct {
	sorted []presenceEntry // ascending by start
	next   int             // first entry not yet admitted to the active set
	active []presenceEntry
}

// NewPresenceCursor indexes the collection for sweeping.
func NewPresenceCursor(intervals []interval.PresenceInterval) *PresenceCursor {
	entries := make([]presenceEntry, len(intervals))
	for i, iv := range intervals {
		entries[i] = presenceEntry{iv: iv, pos: i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].iv.Start.Before(entries[j].iv.Start)
	})
	return &PresenceCursor{sorted: entries}
}

// StatusAt returns the status active at t with the first-wins tie-break.
// Instants must be queried in non-decreasing order.
func (c *PresenceCursor) StatusAt(t time.Time) (interval.Status, bool) {
	for c.next < len(c.sorted) && !c.sorted[c.next].iv.Start.After(t) {
		c.active = append(c.active, c.sorted[c.next])
		c.next++
	}
	// Drop intervals that ended at or before t; starts only move forward, so
	// they can never become active again.
	live := c.active[:0]
	for _, e := range c.active {
		if e.iv.End.After(t) {
			live = append(live, e)
		}
	}
	c.active = live

	best := -1
	for i, e := range c.active {
		if best < 0 || e.pos < c.active[best].pos {
			best = i
		}
	}
	if best < 0 {
		return interval.Status{}, false
	}
	return c.active[best].iv.Status, true
}

// =============================================================================
// ITEM CURSOR - Monotone sweep over a work-item collection
// =============================================================================

// ItemCursor samples "is handling" along a non-decreasing sequence of
// instants. The channel filter is fixed at construction; items of other
// channels are excluded from the index entirely.
type ItemCursor struct {
	sorted []interval.WorkItemInterval // ascending by start
	next   int
	active []interval.WorkItemInterval
}

// NewItemCursor indexes the allowed-channel items for sweeping.
func NewItemCursor(items []interval.WorkItemInterval, channels ...interval.ChannelCode) *ItemCursor {
	allowed := make(map[interval.ChannelCode]bool, len(channels))
	for _, c := range channels {
		allowed[c] = true
	}
	sorted := make([]interval.WorkItemInterval, 0, len(items))
	for _, iv := range items {
		if allowed[iv.Channel.Code] {
			sorted = append(sorted, iv)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return &ItemCursor{sorted: sorted}
}

// HandlingAt reports whether any indexed item is active at t. Instants must
// be queried in non-decreasing order.
func (c *ItemCursor) HandlingAt(t time.Time) bool {
	for c.next < len(c.sorted) && !c.sorted[c.next].Start.After(t) {
		c.active = append(c.active, c.sorted[c.next])
		c.next++
	}
	live := c.active[:0]
	for _, iv := range c.active {
		if iv.End.After(t) {
			live = append(live, iv)
		}
	}
	c.active = live
	return len(c.active) > 0
}
