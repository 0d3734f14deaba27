package network

import (
	"fmt"
	"sort"
)

// DefaultSentinels are placeholder genres excluded from nodes and edges
var DefaultSentinels = []string{"unknown", "other"}

type pairKey struct {
	source, target string
}

// Aggregate collapses observations into one edge per ordered (source, target) pair.
// Self-pairs and pairs touching a sentinel genre are dropped first. For
// ExternalMetric each observation contributes trackValue(observation.TrackID).
// Edges come back sorted by source then target with Weight unset.
func Aggregate(obs []PairObservation, metric Metric, trackValue func(string) float64, sentinels []string) ([]Edge, error) {
	if !metric.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(metric))
	}
	if metric == ExternalMetric && trackValue == nil {
		return nil, fmt.Errorf("aggregating %s: no track values supplied", metric)
	}
	skip := sentinelSet(sentinels)

	values := make(map[pairKey]float64)
	for _, o := range obs {
		if o.Source == o.Target {
			continue
		}
		if skip[o.Source] || skip[o.Target] {
			continue
		}
		k := pairKey{o.Source, o.Target}
		switch metric {
		case Count:
			values[k]++
		case ExternalMetric:
			values[k] += trackValue(o.TrackID)
		}
	}

	edges := make([]Edge, 0, len(values))
	for k, v := range values {
		edges = append(edges, Edge{Source: k.source, Target: k.target, Value: v})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges, nil
}

// Normalize sets each edge's Weight to Value / max(Value) in place and returns
// the maximum. No edges, or a zero maximum, leaves every weight at 0.
func Normalize(edges []Edge) float64 {
	if len(edges) == 0 {
		return 0
	}
	max := edges[0].Value
	for _, e := range edges[1:] {
		if e.Value > max {
			max = e.Value
		}
	}
	for i := range edges {
		if max > 0 {
			edges[i].Weight = edges[i].Value / max
		} else {
			edges[i].Weight = 0
		}
	}
	return max
}
