package network

import (
	"fmt"
	"math"
)

// Color is an RGB triple with channels in [0,1]
type Color struct {
	R, G, B float64
}

// Hex renders the color as #rrggbb, rounding half to even per channel
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// MarshalText encodes the color as its hex string
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func channel(v float64) int {
	n := int(math.RoundToEven(v * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// ColorScale maps a normalized weight to a color. Implementations must be
// deterministic and monotonic so edges and legend swatches agree.
type ColorScale interface {
	At(weight float64) Color
}

// SummerScale is the sequential dark green-teal to pale yellow "summer" map,
// quantized into Levels lookup entries.
type SummerScale struct {
	Levels int
}

// At returns the quantized summer color; weights outside [0,1] clamp to the ends
func (s SummerScale) At(weight float64) Color {
	n := s.Levels
	if n < 2 {
		n = 256
	}
	var idx int
	switch {
	case math.IsNaN(weight) || weight <= 0:
		idx = 0
	case weight >= 1:
		idx = n - 1
	default:
		idx = int(weight * float64(n))
		if idx > n-1 {
			idx = n - 1
		}
	}
	v := float64(idx) / float64(n-1)
	return Color{R: v, G: 0.5 + 0.5*v, B: 0.4}
}

// DefaultLegendBands is the number of colored bands in the legend
const DefaultLegendBands = 5

// emptyLegendMax stands in for the maximum when no edge survives
const emptyLegendMax = 1e-9

// Legend is the color bar: tick boundaries plus swatches sampled from the scale
type Legend struct {
	Max        float64   `json:"max"`
	Interval   float64   `json:"interval"`
	Ticks      []float64 `json:"ticks"`
	Swatches   []Color   `json:"swatches"`
	Degenerate bool      `json:"degenerate"` // render as a single band
}

// ColorbarMax truncates maxValue to an integer and rounds it up to the next
// multiple of 10; multiples of 10 are kept.
func ColorbarMax(maxValue float64) float64 {
	return roundUpTen(math.Trunc(maxValue))
}

func roundUpTen(mx float64) float64 {
	if math.Mod(mx, 10) == 0 {
		return mx
	}
	return mx + (10 - math.Mod(mx, 10))
}

// ComputeLegend derives ticks 0, i, 2i, ..., (bands-1)i, colorbar_max from the
// largest raw edge value. With hasEdges false the near-zero placeholder is
// rounded up untruncated, giving ticks 0..10, and the legend is Degenerate.
func ComputeLegend(maxValue float64, hasEdges bool, bands int, scale ColorScale) Legend {
	if bands < 1 {
		bands = DefaultLegendBands
	}

	cbMax := roundUpTen(emptyLegendMax)
	if hasEdges {
		cbMax = ColorbarMax(maxValue)
	}
	interval := math.Floor(cbMax / float64(bands))

	ticks := make([]float64, 0, bands+1)
	for i := 0; i < bands; i++ {
		ticks = append(ticks, float64(i)*interval)
	}
	ticks = append(ticks, cbMax)

	swatches := make([]Color, 0, bands+1)
	for i := 0; i <= bands; i++ {
		swatches = append(swatches, scale.At(float64(i)/float64(bands)))
	}

	return Legend{
		Max:        cbMax,
		Interval:   interval,
		Ticks:      ticks,
		Swatches:   swatches,
		Degenerate: !hasEdges || interval == 0,
	}
}
