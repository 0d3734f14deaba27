package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV_NetworkDataLayout(t *testing.T) {
	input := "Track URI2,Artist Name,Genre,Streams,Year\n" +
		"spotify:track:1,Drake,rap,1000,2020\n" +
		"spotify:track:1,Rihanna,pop,1000,2020\n" +
		"spotify:track:2,Adele,pop,250.5,2019.0\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].TrackID != "spotify:track:1" || rows[0].Artist != "Drake" || *rows[0].Genre != "rap" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if *rows[2].Metric != 250.5 || rows[2].Year != 2019 {
		t.Errorf("expected metric 250.5 year 2019, got %v %d", *rows[2].Metric, rows[2].Year)
	}
}

func TestReadCSV_AliasesAndExtraColumns(t *testing.T) {
	input := "year,extra,track_id,artist,genre,plays\n" +
		"2021,x,T1,a,Pop,3\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].TrackID != "T1" || rows[0].Year != 2021 || *rows[0].Metric != 3 {
		t.Errorf("unexpected row %+v", rows[0])
	}
}

func TestReadCSV_PrefersExactTrackColumn(t *testing.T) {
	input := "Track URI,Track URI2,Artist Name,Genre,Streams,Year\n" +
		"raw-uri,dedup-uri,a,Pop,1,2020\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].TrackID != "dedup-uri" {
		t.Errorf("expected Track URI2 to win, got %s", rows[0].TrackID)
	}
}

func TestReadCSV_EmptyCellsBecomeNil(t *testing.T) {
	input := "Track URI2,Artist Name,Genre,Streams,Year\n" +
		"T1,a,,,2020\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Genre != nil || rows[0].Metric != nil {
		t.Errorf("expected nil genre and metric, got %v %v", rows[0].Genre, rows[0].Metric)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing column",
			input: "Track URI2,Artist Name,Streams,Year\nT1,a,1,2020\n",
			want:  "Genre",
		},
		{
			name:  "non-numeric metric",
			input: "Track URI2,Artist Name,Genre,Streams,Year\nT7,a,Pop,lots,2020\n",
			want:  "T7",
		},
		{
			name:  "bad year",
			input: "Track URI2,Artist Name,Genre,Streams,Year\nT8,a,Pop,1,20.5\n",
			want:  "T8",
		},
		{
			name:  "empty track",
			input: "Track URI2,Artist Name,Genre,Streams,Year\n,a,Pop,1,2020\n",
			want:  "line 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestReadCSV_MissingColumnSentinel(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Genre,Year\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	if err != nil || rows != nil {
		t.Errorf("expected no rows and no error, got %v %v", rows, err)
	}
}
