package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"collabviz/genrenet/internal/network"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{1500, "1.50k"},
		{2_500_000, "2.50M"},
		{3e9, "3.00G"},
		{1e-9, "1e-09"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTruncTitle(t *testing.T) {
	if got := truncTitle("Pop", 10); got != "Pop" {
		t.Errorf("short strings should pass through, got %q", got)
	}
	if got := truncTitle("Contemporary R&B", 6); got != "Contem..." {
		t.Errorf("expected Contem..., got %q", got)
	}
	// "música" has a two-byte rune at index 1; cutting at 2 must not split it
	if got := truncTitle("música latina", 2); got != "m..." {
		t.Errorf("expected m..., got %q", got)
	}
}

func TestTextRenderer(t *testing.T) {
	ds, err := network.NewDataset([]network.Record{
		{TrackID: "T1", Artist: "a", Genre: "Pop", Metric: 1, Year: 2020},
		{TrackID: "T1", Artist: "b", Genre: "Rap", Metric: 1, Year: 2020},
	})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := network.Build(ds, network.Query{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := network.Render(snap, &textRenderer{w: &buf}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"EDGES", "Pop", "Rap", "#ffff66", "NODES", "1 artists", "Genre Network Based on Counts", "0 | 2 | 4 | 6 | 8 | 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextRenderer_Empty(t *testing.T) {
	snap, err := network.Build(nil, network.Query{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := network.Render(snap, &textRenderer{w: &buf}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(none)") || !strings.Contains(buf.String(), "single band") {
		t.Errorf("expected empty markers and single-band legend:\n%s", buf.String())
	}
}

func TestDiscoverDB_EnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENRENET_DB", path)
	got, err := DiscoverDB()
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}

func TestDiscoverDB_MissingFlagPath(t *testing.T) {
	t.Setenv("GENRENET_DB", "")
	prev := dbPath
	dbPath = filepath.Join(t.TempDir(), "missing.db")
	t.Cleanup(func() { dbPath = prev })

	_, err := DiscoverDB()
	if err == nil || !strings.Contains(err.Error(), "--db") {
		t.Errorf("expected --db error, got %v", err)
	}
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestRun_ClosesLogOnFailure(t *testing.T) {
	t.Setenv("GENRENET_DB", "")
	t.Setenv("GENRENET_LOG_FILE", filepath.Join(t.TempDir(), "genrenet.log"))
	prevDB, prevCfg := dbPath, cfg
	t.Cleanup(func() { dbPath, cfg = prevDB, prevCfg })

	err := run([]string{"network", "--db", filepath.Join(t.TempDir(), "missing.db")})
	if err == nil || !strings.Contains(err.Error(), "--db") {
		t.Fatalf("expected --db error, got %v", err)
	}
	if logCloser != nil {
		t.Error("expected log file to be closed after a failed command")
	}
}

func TestCloseLog(t *testing.T) {
	c := &countingCloser{}
	logCloser = c
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if c.closed != 1 {
		t.Errorf("expected exactly one close, got %d", c.closed)
	}
}
