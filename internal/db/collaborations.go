package db

import "fmt"

// scanCollaboration scans a row into a Collaboration. The row must have all 6 columns in standard order.
func scanCollaboration(scanner interface{ Scan(dest ...any) error }) (Collaboration, error) {
	var c Collaboration
	err := scanner.Scan(&c.ID, &c.TrackID, &c.Artist, &c.Genre, &c.Metric, &c.Year)
	return c, err
}

// AllCollaborations returns every row in insertion order, which fixes each track's primary genre
func (d *DB) AllCollaborations() ([]Collaboration, error) {
	rows, err := d.conn.Query(`
		SELECT id, track_id, artist, genre, metric, year
		FROM collaborations ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Collaboration
	for rows.Next() {
		c, err := scanCollaboration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InsertCollaborations appends rows in one transaction and returns how many were written.
// IDs on the input are ignored.
func (d *DB) InsertCollaborations(rows []Collaboration) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO collaborations (track_id, artist, genre, metric, year)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range rows {
		if _, err := stmt.Exec(c.TrackID, c.Artist, c.Genre, c.Metric, c.Year); err != nil {
			return 0, fmt.Errorf("inserting row %d (track %s): %w", i, c.TrackID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(rows), nil
}

// DeleteAll empties the collaborations table
func (d *DB) DeleteAll() error {
	_, err := d.conn.Exec(`DELETE FROM collaborations`)
	return err
}

// CountCollaborations returns the number of stored rows
func (d *DB) CountCollaborations() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM collaborations`).Scan(&n)
	return n, err
}

// DistinctGenres lists non-null genres in first-appearance order
func (d *DB) DistinctGenres() ([]string, error) {
	rows, err := d.conn.Query(`
		SELECT genre FROM collaborations
		WHERE genre IS NOT NULL
		GROUP BY genre ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// DistinctYears lists years in first-appearance order
func (d *DB) DistinctYears() ([]int, error) {
	rows, err := d.conn.Query(`
		SELECT year FROM collaborations
		GROUP BY year ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
