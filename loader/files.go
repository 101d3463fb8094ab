package loader

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/goatcx/agent-insight/dataset"
	"github.com/goatcx/agent-insight/interval"
)

// Paths names the CSV exports on disk. Transcripts may be empty.
type Paths struct {
	Presence    string
	Items       string
	Shifts      string
	Transcripts string
}

// LoadSnapshot reads all exports and assembles the validated snapshot.
// Presence, items, and shifts are required; the transcripts path may be
// empty or point at a missing file, in which case reports carry no chat
// enrichment.
func LoadSnapshot(paths Paths, log zerolog.Logger) (*dataset.Snapshot, error) {
	presenceFile, err := os.Open(paths.Presence)
	if err != nil {
		return nil, fmt.Errorf("opening presence file: %w", err)
	}
	defer presenceFile.Close()
	presence, err := ReadPresence(presenceFile, log)
	if err != nil {
		return nil, err
	}

	itemsFile, err := os.Open(paths.Items)
	if err != nil {
		return nil, fmt.Errorf("opening items file: %w", err)
	}
	defer itemsFile.Close()
	items, err := ReadItems(itemsFile, log)
	if err != nil {
		return nil, err
	}

	shiftsFile, err := os.Open(paths.Shifts)
	if err != nil {
		return nil, fmt.Errorf("opening shifts file: %w", err)
	}
	defer shiftsFile.Close()
	shifts, err := ReadShifts(shiftsFile, log)
	if err != nil {
		return nil, err
	}

	transcripts := loadOptionalTranscripts(paths.Transcripts, log)

	return dataset.New(presence, items, shifts, transcripts)
}

func loadOptionalTranscripts(path string, log zerolog.Logger) []interval.ChatTranscript {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("transcripts unavailable, reports will carry no chat enrichment")
		return nil
	}
	defer f.Close()
	out, err := ReadTranscripts(f, log)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("transcripts unreadable, reports will carry no chat enrichment")
		return nil
	}
	return out
}
