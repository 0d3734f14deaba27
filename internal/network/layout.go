package network

import (
	"fmt"
	"math"
	"sort"
)

// NodeOrder fixes the sequence nodes are placed around the circle
type NodeOrder string

const (
	// OrderDiscovery places genres in the order they first appear in the
	// filtered records. Reproducible for a given input, but tied to record order.
	OrderDiscovery NodeOrder = "discovery"
	// OrderAlphabetical sorts genre names
	OrderAlphabetical NodeOrder = "alphabetical"
	// OrderCount sorts by descending count, ties by name
	OrderCount NodeOrder = "count"
)

// ParseNodeOrder validates a node order name; "" means discovery
func ParseNodeOrder(s string) (NodeOrder, error) {
	switch NodeOrder(s) {
	case "", OrderDiscovery:
		return OrderDiscovery, nil
	case OrderAlphabetical, OrderCount:
		return NodeOrder(s), nil
	}
	return "", fmt.Errorf("unknown node order %q (want discovery, alphabetical or count)", s)
}

// GenreCount is the number of distinct artist-genre rows carrying a genre
type GenreCount struct {
	Genre string
	Count int
}

// CountGenres counts rows per genre, skipping sentinels, in discovery order
func CountGenres(rows []Record, sentinels []string) []GenreCount {
	skip := sentinelSet(sentinels)
	index := make(map[string]int)
	var counts []GenreCount
	for _, r := range rows {
		if skip[r.Genre] {
			continue
		}
		i, ok := index[r.Genre]
		if !ok {
			i = len(counts)
			index[r.Genre] = i
			counts = append(counts, GenreCount{Genre: r.Genre})
		}
		counts[i].Count++
	}
	return counts
}

// NodeSize is scale * count^(1/3). The cube root keeps frequent genres from dominating.
func NodeSize(count int, scale float64) float64 {
	if count <= 0 {
		return 0
	}
	return scale * math.Cbrt(float64(count))
}

// CircularLayout returns n points evenly spaced on a circle of the given radius,
// point i at angle 2πi/n. A single point sits at the centre.
func CircularLayout(n int, radius float64) []Point {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Point{{X: 0, Y: 0}}
	}
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		points[i] = Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return points
}

// orderCounts returns a reordered copy of counts
func orderCounts(counts []GenreCount, order NodeOrder) []GenreCount {
	out := make([]GenreCount, len(counts))
	copy(out, counts)
	switch order {
	case OrderAlphabetical:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Genre < out[j].Genre })
	case OrderCount:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Genre < out[j].Genre
		})
	}
	return out
}

// LayoutNodes sizes and positions one node per genre count. Degrees are left at zero.
func LayoutNodes(counts []GenreCount, cfg *Config) []Node {
	ordered := orderCounts(counts, cfg.NodeOrder)
	points := CircularLayout(len(ordered), cfg.Radius)
	nodes := make([]Node, 0, len(ordered))
	for i, gc := range ordered {
		if gc.Count <= 0 {
			continue
		}
		nodes = append(nodes, Node{
			Genre:    gc.Genre,
			Count:    gc.Count,
			Size:     NodeSize(gc.Count, cfg.SizeScale),
			Position: points[i],
			Hover:    fmt.Sprintf("%d artists", gc.Count),
		})
	}
	return nodes
}
