package network

import "fmt"

// Point is a position in layout coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one genre in the network
type Node struct {
	Genre     string  `json:"genre"`
	Count     int     `json:"count"`
	Size      float64 `json:"size"`
	Position  Point   `json:"position"`
	InDegree  int     `json:"in_degree"`
	OutDegree int     `json:"out_degree"`
	Hover     string  `json:"hover"`
}

// Arrow runs from the middle of an edge to three quarters of the way to its target
type Arrow struct {
	Tail Point `json:"tail"`
	Head Point `json:"head"`
}

// Edge is a directed primary -> collaborator genre link
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`  // count or summed metric
	Weight float64 `json:"weight"` // Value / max Value, in [0,1]
	Color  Color   `json:"color"`
	Arrow  Arrow   `json:"arrow"`
}

// Query is one filter selection
type Query struct {
	Metric Metric   `json:"metric"`
	Years  []int    `json:"years,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// Snapshot is the freshly computed network for one query
type Snapshot struct {
	Title  string `json:"title"`
	Metric Metric `json:"metric"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
	Legend Legend `json:"legend"`
	Style  Style  `json:"style"`
}

// Build runs the whole pipeline for q over ds. Nothing in ds or cfg is mutated,
// so concurrent Builds over the same dataset are safe. A nil cfg uses DefaultConfig.
func Build(ds *Dataset, q Query, cfg *Config) (*Snapshot, error) {
	if !q.Metric.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(q.Metric))
	}
	cfg = cfg.withDefaults()
	if ds == nil {
		ds = &Dataset{}
	}

	rows := Dedupe(FilterYears(ds.records, q.Years))

	// Node prevalence ignores the genre filter
	nodes := LayoutNodes(CountGenres(rows, cfg.Sentinels), cfg)

	obs := ExtractPairs(TrackGenreLists(rows))
	edges, err := Aggregate(obs, q.Metric, ds.TrackValue, cfg.Sentinels)
	if err != nil {
		return nil, fmt.Errorf("building network: %w", err)
	}
	edges = FilterEdgesByGenre(edges, q.Genres)
	maxValue := Normalize(edges)

	pos := make(map[string]Point, len(nodes))
	for _, n := range nodes {
		pos[n.Genre] = n.Position
	}
	for i := range edges {
		e := &edges[i]
		e.Color = cfg.Scale.At(e.Weight)
		e.Arrow = arrowFor(pos[e.Source], pos[e.Target])
	}

	in, out := degrees(edges)
	for i := range nodes {
		nodes[i].InDegree = in[nodes[i].Genre]
		nodes[i].OutDegree = out[nodes[i].Genre]
	}

	if nodes == nil {
		nodes = []Node{}
	}
	if edges == nil {
		edges = []Edge{}
	}

	return &Snapshot{
		Title:  title(q.Metric, cfg.MetricLabel),
		Metric: q.Metric,
		Nodes:  nodes,
		Edges:  edges,
		Legend: ComputeLegend(maxValue, len(edges) > 0, cfg.LegendBands, cfg.Scale),
		Style:  cfg.Style,
	}, nil
}

func arrowFor(src, dst Point) Arrow {
	return Arrow{
		Tail: Point{X: (src.X + dst.X) / 2, Y: (src.Y + dst.Y) / 2},
		Head: Point{X: (dst.X*3 + src.X) / 4, Y: (dst.Y*3 + src.Y) / 4},
	}
}

// degrees counts in/out edges per genre over the retained edges
func degrees(edges []Edge) (in, out map[string]int) {
	in = make(map[string]int)
	out = make(map[string]int)
	for _, e := range edges {
		out[e.Source]++
		in[e.Target]++
	}
	return in, out
}

func title(m Metric, label string) string {
	if m == ExternalMetric {
		return "Genre Network Based on Cumulative " + label
	}
	return "Genre Network Based on Counts"
}

// NodeByGenre returns the node for genre, or nil
func (s *Snapshot) NodeByGenre(genre string) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].Genre == genre {
			return &s.Nodes[i]
		}
	}
	return nil
}

// EdgeBetween returns the source -> target edge, or nil
func (s *Snapshot) EdgeBetween(source, target string) *Edge {
	for i := range s.Edges {
		if s.Edges[i].Source == source && s.Edges[i].Target == target {
			return &s.Edges[i]
		}
	}
	return nil
}
