package network

// FilterYears keeps records whose year is in years. An empty year set keeps everything.
func FilterYears(records []Record, years []int) []Record {
	if len(years) == 0 {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	keep := make(map[int]bool, len(years))
	for _, y := range years {
		keep[y] = true
	}
	var out []Record
	for _, r := range records {
		if keep[r.Year] {
			out = append(out, r)
		}
	}
	return out
}

type rowKey struct {
	track, artist, genre string
}

// Dedupe collapses records to distinct (track, artist, genre) rows, keeping the
// first occurrence so input order survives.
func Dedupe(records []Record) []Record {
	seen := make(map[rowKey]bool, len(records))
	var out []Record
	for _, r := range records {
		k := rowKey{r.TrackID, r.Artist, r.Genre}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// FilterEdgesByGenre keeps edges with either endpoint in genres. An empty genre
// set keeps every edge. Each edge is kept at most once.
func FilterEdgesByGenre(edges []Edge, genres []string) []Edge {
	if len(genres) == 0 {
		return edges
	}
	want := make(map[string]bool, len(genres))
	for _, g := range genres {
		want[g] = true
	}
	var out []Edge
	for _, e := range edges {
		if want[e.Source] || want[e.Target] {
			out = append(out, e)
		}
	}
	return out
}

// sentinelSet builds a lookup set; nil or empty input yields DefaultSentinels.
func sentinelSet(sentinels []string) map[string]bool {
	if len(sentinels) == 0 {
		sentinels = DefaultSentinels
	}
	set := make(map[string]bool, len(sentinels))
	for _, s := range sentinels {
		set[s] = true
	}
	return set
}
