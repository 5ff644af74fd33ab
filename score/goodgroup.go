package score

// A Track is one of the Good Group recordings: the voice that plays it, the
// key that starts it and how long it is held.
type Track struct {
	Voice    string
	File     string
	Key      rune
	Duration float64

	// X is where the spectrogram starts.
	X float32
}

var GoodGroup = []Track{
	{"Voice1", "good_group.wav", 'a', 39, -4},
	{"Voice2", "shield.wav", 's', 29, -3},
	{"Voice3", "ideal.wav", 'd', 21, -3},
	{"Voice4", "talk.wav", 'f', 26, -3},
	{"Voice5", "tate.wav", 'g', 56, -3},
}

// TrackForKey returns the track started by key.
func TrackForKey(key rune) (Track, bool) {
	for _, t := range GoodGroup {
		if t.Key == key {
			return t, true
		}
	}
	return Track{}, false
}
