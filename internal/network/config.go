package network

// Style carries presentation constants through to the renderer
type Style struct {
	NodeColor  string `json:"node_color"`
	Background string `json:"background"`
	Font       string `json:"font"`
}

// Config holds engine parameters. It is read-only during Build and may be shared.
type Config struct {
	SizeScale   float64    // k in size = k * count^(1/3)
	Radius      float64    // layout circle radius
	NodeOrder   NodeOrder  // placement order around the circle
	Sentinels   []string   // placeholder genres to drop
	MetricLabel string     // name of the external metric in titles, e.g. "Streams"
	LegendBands int        // colored bands in the legend; ticks = bands+1
	Scale       ColorScale // edge and swatch colors
	Style       Style
}

// DefaultConfig returns the dashboard's presentation defaults
func DefaultConfig() *Config {
	return &Config{
		SizeScale:   5,
		Radius:      1,
		NodeOrder:   OrderDiscovery,
		Sentinels:   append([]string(nil), DefaultSentinels...),
		MetricLabel: "Streams",
		LegendBands: DefaultLegendBands,
		Scale:       SummerScale{Levels: 256},
		Style: Style{
			NodeColor:  "#1DB954",
			Background: "#000000",
			Font:       "#FFFFFF",
		},
	}
}

// withDefaults fills zero fields from DefaultConfig without touching c
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.SizeScale <= 0 {
		out.SizeScale = d.SizeScale
	}
	if out.Radius <= 0 {
		out.Radius = d.Radius
	}
	if out.NodeOrder == "" {
		out.NodeOrder = d.NodeOrder
	}
	if len(out.Sentinels) == 0 {
		out.Sentinels = d.Sentinels
	}
	if out.MetricLabel == "" {
		out.MetricLabel = d.MetricLabel
	}
	if out.LegendBands < 1 {
		out.LegendBands = d.LegendBands
	}
	if out.Scale == nil {
		out.Scale = d.Scale
	}
	if out.Style == (Style{}) {
		out.Style = d.Style
	}
	return &out
}
