package network

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRecord is returned by NewDataset for records missing a track id, genre or metric.
var ErrInvalidRecord = errors.New("invalid collaboration record")

// ErrUnknownMetric is returned for a metric selector outside Count / ExternalMetric.
var ErrUnknownMetric = errors.New("unknown metric")

// Record is one (track, contributing artist) row of the collaboration dataset
type Record struct {
	TrackID string  `json:"track_id"`
	Artist  string  `json:"artist"`
	Genre   string  `json:"genre"`  // may be a sentinel: "unknown", "other"
	Metric  float64 `json:"metric"` // plays attributed to the track on this row
	Year    int     `json:"year"`
}

// Metric selects how edge values are aggregated
type Metric int

const (
	// Count counts pair observations per edge
	Count Metric = iota
	// ExternalMetric sums each observation's track metric (cumulative plays) per edge
	ExternalMetric
)

func (m Metric) String() string {
	switch m {
	case Count:
		return "count"
	case ExternalMetric:
		return "external"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// MarshalText encodes the metric by name so snapshots serialize readably
func (m Metric) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts anything ParseMetric does
func (m *Metric) UnmarshalText(b []byte) error {
	parsed, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Metric) valid() bool {
	return m == Count || m == ExternalMetric
}

// ParseMetric maps a selector name to a Metric. "streams" and "plays" are the
// dashboard's names for the external metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "count", "counts":
		return Count, nil
	case "external", "streams", "plays", "metric":
		return ExternalMetric, nil
	}
	return Count, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Dataset is a validated, immutable collection of records. It is safe to share
// across goroutines; Build never mutates it.
type Dataset struct {
	records []Record
	// track id -> summed metric over every record of the track
	trackValues map[string]float64
	genres      []string
	years       []int
}

// NewDataset validates records and precomputes per-track metric totals.
// Record order is preserved: it decides each track's primary genre.
func NewDataset(records []Record) (*Dataset, error) {
	recs := make([]Record, len(records))
	copy(recs, records)

	trackValues := make(map[string]float64)
	seenGenre := make(map[string]bool)
	seenYear := make(map[int]bool)
	var genres []string
	var years []int

	for i, r := range recs {
		if strings.TrimSpace(r.TrackID) == "" {
			return nil, fmt.Errorf("%w: record %d has no track id", ErrInvalidRecord, i)
		}
		if strings.TrimSpace(r.Genre) == "" {
			return nil, fmt.Errorf("%w: track %q: record %d has no genre", ErrInvalidRecord, r.TrackID, i)
		}
		if math.IsNaN(r.Metric) || math.IsInf(r.Metric, 0) || r.Metric < 0 {
			return nil, fmt.Errorf("%w: track %q: record %d has metric %v", ErrInvalidRecord, r.TrackID, i, r.Metric)
		}
		trackValues[r.TrackID] += r.Metric
		if !seenGenre[r.Genre] {
			seenGenre[r.Genre] = true
			genres = append(genres, r.Genre)
		}
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			years = append(years, r.Year)
		}
	}

	return &Dataset{
		records:     recs,
		trackValues: trackValues,
		genres:      genres,
		years:       years,
	}, nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the records in input order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// TrackValue returns the summed metric of a track across the whole dataset
func (d *Dataset) TrackValue(trackID string) float64 {
	return d.trackValues[trackID]
}

// Genres lists distinct genres (sentinels included) in first-appearance order,
// for populating a genre filter control.
func (d *Dataset) Genres() []string {
	return append([]string(nil), d.genres...)
}

// Years lists distinct years in first-appearance order
func (d *Dataset) Years() []int {
	return append([]int(nil), d.years...)
}
