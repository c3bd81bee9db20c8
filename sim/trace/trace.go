// Package trace provides per-day step recording for episode analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// EpisodeTrace collects day records during one episode.
type EpisodeTrace struct {
	Seed int64
	Days []DayRecord
}

// NewEpisodeTrace creates an EpisodeTrace ready for recording.
func NewEpisodeTrace(seed int64) *EpisodeTrace {
	return &EpisodeTrace{
		Seed: seed,
		Days: make([]DayRecord, 0),
	}
}

// RecordDay appends a day record.
func (et *EpisodeTrace) RecordDay(record DayRecord) {
	et.Days = append(et.Days, record)
}

var csvHeader = []string{
	"day", "order", "demand", "received", "sold", "stockout", "wasted", "on_hand_end", "cost", "warmup",
}

// WriteCSV writes the trace as CSV with a header row.
func (et *EpisodeTrace) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing trace header: %w", err)
	}
	for _, d := range et.Days {
		row := []string{
			strconv.Itoa(d.Day),
			strconv.Itoa(d.Order),
			strconv.Itoa(d.Demand),
			strconv.Itoa(d.Received),
			strconv.Itoa(d.Sold),
			strconv.Itoa(d.Stockout),
			strconv.Itoa(d.Wasted),
			strconv.Itoa(d.OnHandEnd),
			strconv.FormatFloat(d.Cost, 'g', -1, 64),
			strconv.FormatBool(d.Warmup),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing trace day %d: %w", d.Day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
