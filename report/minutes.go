package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/sampler"
)

// =============================================================================
// AHT - Average handling time and volume per channel
// =============================================================================

// ChannelAHT is the handling-time aggregate for one channel.
type ChannelAHT struct {
	Count int
	// MeanSeconds is the mean handle time. Nil when the channel had no items
	// in range ("no data", deliberately distinct from zero).
	MeanSeconds *decimal.Decimal
}

// ComputeAHT aggregates handle durations per channel over the items whose
// START falls on a calendar date inside the range. This is containment by
// start date, stricter than the overlap rule used for range filtering: an
// item that began before the range does not contribute to AHT even though it
// overlaps the range.
func ComputeAHT(items []interval.WorkItemInterval, r interval.DateRange) (chat, email ChannelAHT) {
	var chatSum, emailSum decimal.Decimal
	for _, iv := range items {
		if !r.Contains(interval.DateOf(iv.Start)) {
			continue
		}
		d := decimal.NewFromFloat(iv.Duration().Seconds())
		switch iv.Channel.Code {
		case interval.ChannelChat:
			chat.Count++
			chatSum = chatSum.Add(d)
		case interval.ChannelEmail:
			email.Count++
			emailSum = emailSum.Add(d)
		}
	}
	if chat.Count > 0 {
		mean := chatSum.Div(decimal.NewFromInt(int64(chat.Count)))
		chat.MeanSeconds = &mean
	}
	if email.Count > 0 {
		mean := emailSum.Div(decimal.NewFromInt(int64(email.Count)))
		email.MeanSeconds = &mean
	}
	return chat, email
}

// =============================================================================
// SHIFT UTILIZATION - Minute-grid sampling
// =============================================================================

// Utilization is the handling/available minute ratio over a range.
type Utilization struct {
	AvailableMinutes int
	HandlingMinutes  int
	// Ratio is HandlingMinutes / AvailableMinutes, exactly zero when no
	// minute was available. Always within [0, 1].
	Ratio decimal.Decimal
}

// ComputeUtilization walks every minute t in [start, end). A minute counts as
// available when the presence status at t is one of the available statuses;
// an available minute additionally counts as handling when a chat or email
// item is active at t. This loop is the engine's dominant cost, so it runs on
// the sweep cursors rather than the naive per-minute scans.
func ComputeUtilization(presence []interval.PresenceInterval, items []interval.WorkItemInterval, start, end time.Time) Utilization {
	pc := sampler.NewPresenceCursor(presence)
	ic := sampler.NewItemCursor(items, interval.ChannelChat, interval.ChannelEmail)

	var u Utilization
	for t := start; t.Before(end); t = t.Add(time.Minute) {
		status, ok := pc.StatusAt(t)
		if !ok || !status.IsAvailable() {
			continue
		}
		u.AvailableMinutes++
		if ic.HandlingAt(t) {
			u.HandlingMinutes++
		}
	}
	if u.AvailableMinutes > 0 {
		u.Ratio = decimal.NewFromInt(int64(u.HandlingMinutes)).
			Div(decimal.NewFromInt(int64(u.AvailableMinutes)))
	}
	return u
}
