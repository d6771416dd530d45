// Package swim holds the swim-session domain types: the performance record a
// coach submits, and the four-period analysis produced for it.
package swim

import (
	"strconv"
	"strings"
)

// SessionType is echoed in every successful response.
const SessionType = "freestyle_and_recovery"

// Field names of a performance record, in validation order.
const (
	FieldName         = "name"
	FieldLapTimes     = "lap_times"
	FieldStrokeCounts = "stroke_counts"
	FieldBreathCounts = "breath_counts"
	FieldSplits       = "splits"
	FieldDPS          = "dps"
)

// Optional pass-through metadata keys.
const (
	FieldGroupNumber = "group_number"
	FieldClubName    = "club_name"
	FieldEventDate   = "event_date"
)

// RequiredFields lists the keys every record must carry, in the order they are checked.
var RequiredFields = []string{FieldName, FieldLapTimes, FieldStrokeCounts, FieldBreathCounts, FieldSplits, FieldDPS}

// SeriesFields lists the numeric sequence fields, in the order they are checked.
var SeriesFields = []string{FieldLapTimes, FieldStrokeCounts, FieldBreathCounts, FieldSplits, FieldDPS}

// Series is an ordered run of per-lap measurements.
type Series []float64

// String renders the series as a bracketed list, e.g. [32.1, 33, 34.5].
func (s Series) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Record is a validated performance record. Build one with Validate.
type Record struct {
	Name         string
	LapTimes     Series
	StrokeCounts Series
	BreathCounts Series
	Splits       Series
	DPS          Series
	Session      SessionInfo
}

// SessionInfo is the caller-supplied session metadata. Values are passed
// through untouched, so any JSON value (including null) is allowed.
type SessionInfo struct {
	GroupNumber any    `json:"group_number"`
	ClubName    any    `json:"club_name"`
	EventDate   any    `json:"event_date"`
	SessionType string `json:"session_type"`
}

// series returns the record's sequence for a numeric field name.
func (r *Record) series(field string) *Series {
	switch field {
	case FieldLapTimes:
		return &r.LapTimes
	case FieldStrokeCounts:
		return &r.StrokeCounts
	case FieldBreathCounts:
		return &r.BreathCounts
	case FieldSplits:
		return &r.Splits
	case FieldDPS:
		return &r.DPS
	}
	return nil
}
