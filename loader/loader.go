/*
Package loader reads the report CSV exports into typed records.

PURPOSE:
  The engine core consumes already-parsed records; this package is the I/O
  collaborator that produces them. It reads the four exports (presence log,
  work-item log, shift roster grid, and the optional chat transcripts) and
  hands the rows to the interval and schedule packages for normalization.

FILE SHAPES:
  Presence and items are long-format logs with named columns. The shift
  roster is wide-format: an agent-name column (exported as either
  "Agent Name" or "Column1") followed by one column per DD/MM/YYYY date.

ERROR POLICY:
  A file that cannot be read or is missing a required column is a hard error:
  the datasets are required inputs and the computation must not proceed
  without them. Individual rows with unparseable timestamps degrade to
  dropped rows (counted and logged), never to a failed load.
*/
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goatcx/agent-insight/interval"
	"github.com/goatcx/agent-insight/metrics"
	"github.com/goatcx/agent-insight/schedule"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Column names of the source exports.
const (
	colPresenceAgent  = "Created By: Full Name"
	colPresenceStatus = "Service Presence Status: Developer Name"
	colItemAgent      = "User: Full Name"
	colItemChannel    = "Service Channel: Developer Name"
	colStart          = "Start DT"
	colEnd            = "End DT"

	colShiftAgent    = "Agent Name"
	colShiftAgentAlt = "Column1"

	colTranscriptAgent = "Owner: Full Name"
	colCaseNumber      = "Case Number"
	colVisitorEmail    = "Visitor Email"
	colButtonName      = "Button Name"
	colTranscriptName  = "Transcript Name"
)

// header maps trimmed column names to their positions.
type header map[string]int

func readHeader(rec []string) header {
	h := make(header, len(rec))
	for i, name := range rec {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

func (h header) require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return nil
}

func (h header) get(rec []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// =============================================================================
// PRESENCE
// =============================================================================

// ReadPresence reads and normalizes the presence log.
func ReadPresence(r io.Reader, log zerolog.Logger) ([]interval.PresenceInterval, error) {
	cr := newReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading presence header: %w", err)
	}
	h := readHeader(head)
	if err := h.require(colPresenceAgent, colPresenceStatus, colStart, colEnd); err != nil {
		return nil, fmt.Errorf("presence: %w", err)
	}

	var rows []interval.RawPresenceRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading presence row: %w", err)
		}
		rows = append(rows, interval.RawPresenceRow{
			Agent:  h.get(rec, colPresenceAgent),
			Status: h.get(rec, colPresenceStatus),
			Start:  h.get(rec, colStart),
			End:    h.get(rec, colEnd),
		})
	}

	out, dropped := interval.LoadPresence(rows)
	meter("presence", len(rows), dropped, log)
	return out, nil
}

// =============================================================================
// WORK ITEMS
// =============================================================================

// ReadItems reads and normalizes the work-item log.
func ReadItems(r io.Reader, log zerolog.Logger) ([]interval.WorkItemInterval, error) {
	cr := newReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading items header: %w", err)
	}
	h := readHeader(head)
	if err := h.require(colItemAgent, colItemChannel, colStart, colEnd); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	var rows []interval.RawItemRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading item row: %w", err)
		}
		rows = append(rows, interval.RawItemRow{
			Agent:   h.get(rec, colItemAgent),
			Channel: h.get(rec, colItemChannel),
			Start:   h.get(rec, colStart),
			End:     h.get(rec, colEnd),
		})
	}

	out, dropped := interval.LoadItems(rows)
	meter("items", len(rows), dropped, log)
	return out, nil
}

// =============================================================================
// SHIFT ROSTER
// =============================================================================

// ReadShifts reads the wide-format roster into a schedule grid. Header
// columns that do not parse as DD/MM/YYYY dates are ignored.
func ReadShifts(r io.Reader, log zerolog.Logger) (*schedule.Grid, error) {
	cr := newReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading shifts header: %w", err)
	}

	agentIdx := -1
	type dateCol struct {
		idx  int
		date interval.Date
	}
	var dateCols []dateCol
	for i, name := range head {
		name = strings.TrimSpace(name)
		if name == colShiftAgent || name == colShiftAgentAlt {
			agentIdx = i
			continue
		}
		if t, ok := interval.ParseDayFirst(name); ok {
			dateCols = append(dateCols, dateCol{idx: i, date: interval.DateOf(t)})
		}
	}
	if agentIdx < 0 {
		// Some exports omit the agent header entirely; the first column is
		// the agent name by convention.
		agentIdx = 0
	}
	if len(dateCols) == 0 {
		return nil, fmt.Errorf("shifts: %w: no date columns", ErrMissingColumn)
	}

	grid := schedule.NewGrid()
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading shift row: %w", err)
		}
		rows++
		if agentIdx >= len(rec) {
			continue
		}
		agent := rec[agentIdx]
		for _, dc := range dateCols {
			if dc.idx < len(rec) {
				grid.Add(agent, dc.date, rec[dc.idx])
			}
		}
	}

	meter("shifts", rows, 0, log)
	return grid, nil
}

// =============================================================================
// CHAT TRANSCRIPTS
// =============================================================================

// ReadTranscripts reads and normalizes the optional transcript export.
func ReadTranscripts(r io.Reader, log zerolog.Logger) ([]interval.ChatTranscript, error) {
	cr := newReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading transcripts header: %w", err)
	}
	h := readHeader(head)
	if err := h.require(colTranscriptAgent, colStart, colEnd); err != nil {
		return nil, fmt.Errorf("transcripts: %w", err)
	}

	var rows []interval.RawTranscriptRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transcript row: %w", err)
		}
		rows = append(rows, interval.RawTranscriptRow{
			Agent:          h.get(rec, colTranscriptAgent),
			Start:          h.get(rec, colStart),
			End:            h.get(rec, colEnd),
			CaseNumber:     h.get(rec, colCaseNumber),
			VisitorEmail:   h.get(rec, colVisitorEmail),
			ButtonName:     h.get(rec, colButtonName),
			TranscriptName: h.get(rec, colTranscriptName),
		})
	}

	out, dropped := interval.LoadTranscripts(rows)
	meter("transcripts", len(rows), dropped, log)
	return out, nil
}

func meter(dataset string, rows, dropped int, log zerolog.Logger) {
	metrics.LoaderRowsTotal.WithLabelValues(dataset).Add(float64(rows))
	metrics.LoaderDroppedTotal.WithLabelValues(dataset).Add(float64(dropped))
	evt := log.Info()
	if dropped > 0 {
		evt = log.Warn()
	}
	evt.Str("dataset", dataset).Int("rows", rows).Int("dropped", dropped).Msg("dataset loaded")
}
