package network

import (
	"fmt"

	"collabviz/genrenet/internal/db"
)

// DatasetFromDB loads every collaboration row, in insertion order, into a Dataset.
// Rows without a genre or metric fail the load, naming the track.
func DatasetFromDB(d *db.DB) (*Dataset, error) {
	rows, err := d.AllCollaborations()
	if err != nil {
		return nil, fmt.Errorf("loading collaborations: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		if r.Genre == nil {
			return nil, fmt.Errorf("%w: track %q (row %d) has no genre", ErrInvalidRecord, r.TrackID, r.ID)
		}
		if r.Metric == nil {
			return nil, fmt.Errorf("%w: track %q (row %d) has no metric", ErrInvalidRecord, r.TrackID, r.ID)
		}
		records = append(records, Record{
			TrackID: r.TrackID,
			Artist:  r.Artist,
			Genre:   *r.Genre,
			Metric:  *r.Metric,
			Year:    r.Year,
		})
	}
	return NewDataset(records)
}
