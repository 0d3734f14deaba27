package db

// Collaboration represents a row in the collaborations table: one artist credited on one track.
// Genre and Metric are nullable so malformed imports surface at dataset build time.
type Collaboration struct {
	ID      int64    `json:"id"`
	TrackID string   `json:"track_id"` // e.g. Spotify track URI
	Artist  string   `json:"artist"`
	Genre   *string  `json:"genre"`
	Metric  *float64 `json:"metric"` // streams
	Year    int      `json:"year"`
}
