/*
dto.go - Response structures for API consumers

PURPOSE:
  Defines the JSON shapes for API responses. These types decouple the
  internal report model from the external API contract and carry the display
  formatting the dashboard shows verbatim: mm:ss handle times, HH:MM day
  totals, percentage utilization, "No Lunch Data" style placeholders.

NAMING CONVENTION:
  - *DTO: Response types returned to clients

VALIDATION:
  DTOs are pure data carriers; request validation lives in handlers.

SEE ALSO:
  - handlers.go: Uses these types
  - report: The computed metrics these render
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goatcx/agent-insight/enrich"
	"github.com/goatcx/agent-insight/report"
)

// Display date format used across the dashboard.
const displayDate = "02 Jan 2006"

// AgentsDTO is the agent directory response.
type AgentsDTO struct {
	Agents  []string `json:"agents"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
}

// ChannelAHTDTO is the handling-time aggregate for one channel.
type ChannelAHTDTO struct {
	// AHT is the mean handle time as mm:ss, or the no-data dash.
	AHT   string `json:"aht"`
	Count int    `json:"count"`
}

// UtilizationDTO is the shift-utilization block.
type UtilizationDTO struct {
	AvailableMinutes int     `json:"available_minutes"`
	HandlingMinutes  int     `json:"handling_minutes"`
	Ratio            float64 `json:"ratio"`
	Display          string  `json:"display"` // e.g. "5.6%"
}

// DailyDTO is the aggregated daily-overview block.
type DailyDTO struct {
	DaysWorked          int    `json:"days_worked"`
	TotalShift          string `json:"total_shift"`     // HH:MM
	TotalAvailable      string `json:"total_available"` // HH:MM
	LunchCompliance     string `json:"lunch_compliance"`
	LunchWarning        bool   `json:"lunch_warning"`
	AvailabilityWarning bool   `json:"availability_warning"`
}

// DayRowDTO is one per-day shift and adherence row.
type DayRowDTO struct {
	Date           string `json:"date"`
	ScheduledShift string `json:"scheduled_shift"`
	ActualShift    string `json:"actual_shift"`
	LateMinutes    *int   `json:"late_minutes,omitempty"`
	Status         string `json:"status"`
}

// LongChatDTO is one long chat handle, with transcript metadata when matched.
type LongChatDTO struct {
	HandleTime     string `json:"handle_time"` // mm:ss
	Start          string `json:"start"`
	End            string `json:"end"`
	CaseNumber     string `json:"case_number,omitempty"`
	VisitorEmail   string `json:"visitor_email,omitempty"`
	ButtonName     string `json:"button_name,omitempty"`
	TranscriptName string `json:"transcript_name,omitempty"`
	Matched        bool   `json:"matched"`
}

// IncidentDTO is one lateness incident.
type IncidentDTO struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// LatenessDTO is the 30-day lateness block.
type LatenessDTO struct {
	TotalMinutes int           `json:"total_minutes"`
	Incidents    []IncidentDTO `json:"incidents"`
}

// AbsenceDTO is the 90-day absence block.
type AbsenceDTO struct {
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// ReportDTO is the full report response.
type ReportDTO struct {
	Agent string `json:"agent"`
	Start string `json:"start"`
	End   string `json:"end"`
	View  string `json:"view"`

	Chat        *ChannelAHTDTO  `json:"chat,omitempty"`
	Email       *ChannelAHTDTO  `json:"email,omitempty"`
	Utilization *UtilizationDTO `json:"utilization,omitempty"`
	Daily       *DailyDTO       `json:"daily,omitempty"`
	Days        []DayRowDTO     `json:"days,omitempty"`
	LongChats   []LongChatDTO   `json:"long_chats,omitempty"`

	Lateness LatenessDTO `json:"lateness"`
	Absence  AbsenceDTO  `json:"absence"`
}

// =============================================================================
// CONVERSION
// =============================================================================

func toReportDTO(rep *report.Report) ReportDTO {
	dto := ReportDTO{
		Agent:    rep.Agent,
		Start:    rep.Range.Start.String(),
		End:      rep.Range.End.String(),
		View:     string(rep.View),
		Lateness: toLatenessDTO(rep.Lateness),
		Absence:  toAbsenceDTO(rep.Absence),
	}
	if rep.View != report.ViewFull {
		return dto
	}

	dto.Chat = toChannelAHTDTO(rep.ChatAHT)
	dto.Email = toChannelAHTDTO(rep.EmailAHT)
	dto.Utilization = &UtilizationDTO{
		AvailableMinutes: rep.Utilization.AvailableMinutes,
		HandlingMinutes:  rep.Utilization.HandlingMinutes,
		Ratio:            rep.Utilization.Ratio.InexactFloat64(),
		Display:          rep.Utilization.Ratio.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%",
	}
	dto.Daily = toDailyDTO(rep.Daily)

	dto.Days = make([]DayRowDTO, 0, len(rep.Days))
	for _, day := range rep.Days {
		dto.Days = append(dto.Days, toDayRowDTO(day))
	}

	dto.LongChats = make([]LongChatDTO, 0, len(rep.LongChats))
	for _, lc := range rep.LongChats {
		dto.LongChats = append(dto.LongChats, toLongChatDTO(lc))
	}
	return dto
}

func toChannelAHTDTO(a report.ChannelAHT) *ChannelAHTDTO {
	dto := &ChannelAHTDTO{AHT: noData, Count: a.Count}
	if a.MeanSeconds != nil {
		dto.AHT = formatMMSS(a.MeanSeconds.InexactFloat64())
	}
	return dto
}

func toDailyDTO(d report.DailyTotals) *DailyDTO {
	dto := &DailyDTO{
		DaysWorked:          d.DaysWorked,
		TotalShift:          formatHHMM(d.TotalShiftSeconds),
		TotalAvailable:      formatHHMM(d.TotalAvailableSeconds),
		AvailabilityWarning: d.AvailabilityWarning,
	}
	if d.LunchDaysWithData > 0 {
		ok := d.LunchDaysWithData - d.LunchDaysOutOfWindow
		dto.LunchCompliance = fmt.Sprintf("%d/%d days OK", ok, d.LunchDaysWithData)
		dto.LunchWarning = d.LunchDaysOutOfWindow > 0
	} else {
		dto.LunchCompliance = "No Lunch Data"
	}
	return dto
}

func toDayRowDTO(day report.DayRow) DayRowDTO {
	dto := DayRowDTO{
		Date:           day.Date.Time().Format(displayDate),
		ScheduledShift: day.Scheduled.Raw,
		ActualShift:    "—",
		LateMinutes:    day.LateMinutes,
		Status:         string(day.Status),
	}
	if dto.ScheduledShift == "" {
		dto.ScheduledShift = "Not Assigned"
	}
	if day.HasPresence {
		dto.ActualShift = day.ActualStart.Format("15:04") + "–" + day.ActualEnd.Format("15:04")
	}
	return dto
}

func toLongChatDTO(lc enrich.EnrichedHandle) LongChatDTO {
	dto := LongChatDTO{
		HandleTime: formatMMSS(lc.Item.Duration().Seconds()),
		Start:      lc.Item.Start.Format("2006-01-02 15:04:05"),
		End:        lc.Item.End.Format("2006-01-02 15:04:05"),
	}
	if lc.Transcript != nil {
		dto.Matched = true
		dto.CaseNumber = lc.Transcript.CaseNumber
		dto.VisitorEmail = lc.Transcript.VisitorEmail
		dto.ButtonName = lc.Transcript.ButtonName
		dto.TranscriptName = lc.Transcript.TranscriptName
	}
	return dto
}

func toLatenessDTO(l report.Lateness) LatenessDTO {
	dto := LatenessDTO{TotalMinutes: l.TotalMinutes, Incidents: make([]IncidentDTO, 0, len(l.Incidents))}
	for _, inc := range l.Incidents {
		dto.Incidents = append(dto.Incidents, IncidentDTO{
			Date:    inc.Date.Time().Format(displayDate),
			Minutes: inc.Minutes,
		})
	}
	return dto
}

func toAbsenceDTO(a report.Absence) AbsenceDTO {
	dto := AbsenceDTO{Count: len(a.Dates), Dates: make([]string, 0, len(a.Dates))}
	for _, d := range a.Dates {
		dto.Dates = append(dto.Dates, d.Time().Format(displayDate))
	}
	return dto
}

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// noData is the dashboard's placeholder for undefined aggregates.
const noData = "–"

// formatMMSS renders seconds as minutes:seconds, e.g. 754.2 -> "12:34".
func formatMMSS(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// formatHHMM renders seconds as hours:minutes, e.g. 28200 -> "07:50".
func formatHHMM(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/3600, (total%3600)/60)
}
