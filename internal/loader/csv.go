package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"collabviz/genrenet/internal/db"
)

// Column aliases, matched case-insensitively. The first name of each list is
// the Genre_Network_Data.csv header.
var (
	trackColumns  = []string{"Track URI2", "Track URI", "track_id", "track"}
	artistColumns = []string{"Artist Name", "artist_name", "artist"}
	genreColumns  = []string{"Genre", "genre"}
	metricColumns = []string{"Streams", "streams", "plays", "metric"}
	yearColumns   = []string{"Year", "year"}
)

// ErrMissingColumn is returned when a required header is absent
var ErrMissingColumn = errors.New("missing column")

type columns struct {
	track, artist, genre, metric, year int
}

// ReadCSV parses collaboration rows from r in file order. Empty genre or metric
// cells become nil so the dataset builder can reject them by track.
func ReadCSV(r io.Reader) ([]db.Collaboration, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols, err := locate(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	var out []db.Collaboration
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		c, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func locate(header []string) (columns, error) {
	find := func(names []string) (int, error) {
		for _, n := range names {
			for i, h := range header {
				h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
				if strings.EqualFold(h, n) {
					return i, nil
				}
			}
		}
		return -1, fmt.Errorf("%w: %s", ErrMissingColumn, names[0])
	}

	var c columns
	var err error
	if c.track, err = find(trackColumns); err != nil {
		return c, err
	}
	if c.artist, err = find(artistColumns); err != nil {
		return c, err
	}
	if c.genre, err = find(genreColumns); err != nil {
		return c, err
	}
	if c.metric, err = find(metricColumns); err != nil {
		return c, err
	}
	if c.year, err = find(yearColumns); err != nil {
		return c, err
	}
	return c, nil
}

func parseRow(rec []string, cols columns) (db.Collaboration, error) {
	c := db.Collaboration{
		TrackID: strings.TrimSpace(rec[cols.track]),
		Artist:  strings.TrimSpace(rec[cols.artist]),
	}
	if c.TrackID == "" {
		return c, fmt.Errorf("empty track id")
	}

	if g := strings.TrimSpace(rec[cols.genre]); g != "" {
		c.Genre = &g
	}

	if m := strings.TrimSpace(rec[cols.metric]); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return c, fmt.Errorf("track %s: metric %q is not numeric", c.TrackID, m)
		}
		c.Metric = &v
	}

	year, err := parseYear(strings.TrimSpace(rec[cols.year]))
	if err != nil {
		return c, fmt.Errorf("track %s: %w", c.TrackID, err)
	}
	c.Year = year
	return c, nil
}

// parseYear accepts "2020" and the "2020.0" pandas writes for float columns
func parseYear(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("year %q is not an integer", s)
	}
	return int(f), nil
}
