package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"collabviz/genrenet/internal/network"
	"github.com/spf13/cobra"
)

var (
	networkJSON       bool
	networkMetric     string
	networkYears      []int
	networkGenres     []string
	networkAllMetrics bool
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Build the genre collaboration network for a filter selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := LoadDataset()
		if err != nil {
			return err
		}

		metric, err := network.ParseMetric(networkMetric)
		if err != nil {
			return err
		}

		queries := []network.Query{{Metric: metric, Years: networkYears, Genres: networkGenres}}
		if networkAllMetrics {
			queries = []network.Query{
				{Metric: network.Count, Years: networkYears, Genres: networkGenres},
				{Metric: network.ExternalMetric, Years: networkYears, Genres: networkGenres},
			}
		}

		snaps, err := network.BuildAll(context.Background(), ds, queries, engineConfig())
		if err != nil {
			return fmt.Errorf("building network: %w", err)
		}

		if networkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if len(snaps) == 1 {
				return enc.Encode(snaps[0])
			}
			return enc.Encode(snaps)
		}

		for _, snap := range snaps {
			if err := network.Render(snap, &textRenderer{w: os.Stdout}); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	networkCmd.Flags().BoolVar(&networkJSON, "json", false, "Output as JSON")
	networkCmd.Flags().StringVar(&networkMetric, "metric", "count", "Edge metric: count or streams")
	networkCmd.Flags().IntSliceVar(&networkYears, "years", nil, "Only use records from these years (comma-separated)")
	networkCmd.Flags().StringSliceVar(&networkGenres, "genres", nil, "Keep edges touching any of these genres")
	networkCmd.Flags().BoolVar(&networkAllMetrics, "all-metrics", false, "Build count and streams networks side by side")
	rootCmd.AddCommand(networkCmd)
}

// textRenderer draws a snapshot as terminal text
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) DrawEdges(edges []network.Edge, style network.Style) error {
	fmt.Fprintln(r.w, "\n  EDGES")
	fmt.Fprintln(r.w, "  ────────────────────────────────────────")
	if len(edges) == 0 {
		fmt.Fprintln(r.w, "  (none)")
		return nil
	}
	for _, e := range edges {
		barLen := int(e.Weight * 20)
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
		fmt.Fprintf(r.w, "  %-18s -> %-18s %10s  [%s] %.2f %s\n",
			truncTitle(e.Source, 18), truncTitle(e.Target, 18), formatValue(e.Value), bar, e.Weight, e.Color.Hex())
	}
	return nil
}

func (r *textRenderer) DrawNodes(nodes []network.Node, style network.Style) error {
	fmt.Fprintln(r.w, "\n  NODES")
	fmt.Fprintln(r.w, "  ────────────────────────────────────────")
	if len(nodes) == 0 {
		fmt.Fprintln(r.w, "  (none)")
		return nil
	}
	for _, n := range nodes {
		fmt.Fprintf(r.w, "  %-24s %-12s size=%6.2f pos=(%+.3f, %+.3f) in=%d out=%d\n",
			truncTitle(n.Genre, 24), n.Hover, n.Size, n.Position.X, n.Position.Y, n.InDegree, n.OutDegree)
	}
	return nil
}

func (r *textRenderer) DrawLegend(legend network.Legend, title string) error {
	fmt.Fprintf(r.w, "\n  %s\n", title)
	fmt.Fprintln(r.w, "  ────────────────────────────────────────")
	ticks := make([]string, len(legend.Ticks))
	for i, t := range legend.Ticks {
		ticks[i] = formatValue(t)
	}
	fmt.Fprintf(r.w, "  legend ticks: %s\n", strings.Join(ticks, " | "))
	if legend.Degenerate {
		fmt.Fprintf(r.w, "  single band: %s\n", legend.Swatches[0].Hex())
	} else {
		swatches := make([]string, len(legend.Swatches))
		for i, s := range legend.Swatches {
			swatches[i] = s.Hex()
		}
		fmt.Fprintf(r.w, "  swatches: %s\n", strings.Join(swatches, " "))
	}
	fmt.Fprintln(r.w)
	return nil
}

// formatValue prints SI-abbreviated values the way the legend labels them
func formatValue(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fk", v/1e3)
	case v == float64(int64(v)):
		return fmt.Sprintf("%d", int64(v))
	default:
		return fmt.Sprintf("%.2g", v)
	}
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
