package network

// TrackGenres is the ordered genre list of one track's contributing artists.
// Genres[0] is the primary genre; duplicates are kept.
type TrackGenres struct {
	TrackID string
	Genres  []string
}

// PairObservation is one directed (primary -> collaborator) genre pair seen on a track
type PairObservation struct {
	TrackID string
	Source  string
	Target  string
}

// TrackGenreLists groups record genres by track in first-seen order, both for
// tracks and for the genres within a track.
func TrackGenreLists(records []Record) []TrackGenres {
	index := make(map[string]int)
	var lists []TrackGenres
	for _, r := range records {
		i, ok := index[r.TrackID]
		if !ok {
			i = len(lists)
			index[r.TrackID] = i
			lists = append(lists, TrackGenres{TrackID: r.TrackID})
		}
		lists[i].Genres = append(lists[i].Genres, r.Genre)
	}
	return lists
}

// ExtractPairs pairs each track's primary genre with every other entry of its list.
// A track with N >= 2 entries yields N-1 observations; single-entry tracks yield none.
func ExtractPairs(lists []TrackGenres) []PairObservation {
	var obs []PairObservation
	for _, tg := range lists {
		if len(tg.Genres) < 2 {
			continue
		}
		primary := tg.Genres[0]
		for _, collab := range tg.Genres[1:] {
			obs = append(obs, PairObservation{
				TrackID: tg.TrackID,
				Source:  primary,
				Target:  collab,
			})
		}
	}
	return obs
}
