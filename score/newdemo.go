package score

// Defaults of the New Demo's notes.
const (
	kickAmp, kickAttack, kickDecay = .2, .01, .1
	leadAmp, leadAttack, leadDecay = .2, .1, .1
	padAmp, padAttack, padDecay    = .1, .25, .1
)

// PlayRhythm plays measures of kick, open hi-hat and snare from start.
func (s *Score) PlayRhythm(start float64, measures int) {
	for i := range measures {
		m := start + float64(i)*Measure
		s.PlayKick(600, m, Beat, kickAmp, kickAttack, kickDecay)
		s.PlayKick(600, m+Beat*1.75, Sixteenth, kickAmp, kickAttack, kickDecay)
		s.PlayKick(600, m+Beat*2, Beat, kickAmp, kickAttack, kickDecay)

		for _, b := range []float64{.5, 1.5, 2.5, 3.5} {
			s.PlayOpenHihat(m+Beat*b, Eighth)
		}

		s.PlaySnare(m+Beat, Beat)
		s.PlaySnare(m+Beat*3, Beat)
	}
}

// PlayIntroMelody plays the three pickup phrases of the intro, transposed
// by offset.
func (s *Score) PlayIntroMelody(start, offset float64) {
	lead := func(freq, t, dur float64) {
		s.PlayLead(offset*freq, start+t, dur, .1, .1, leadDecay)
	}
	lead(G5, 0, Beat*3)
	lead(C5*2, Beat*3, Sixteenth)
	lead(Bb4*2, Beat*3+Sixteenth, Sixteenth)
	lead(F5, Beat*3+Eighth, Sixteenth)
	lead(G5, Beat*3+Eighth+Sixteenth, Sixteenth+Beat*3)

	lead(Bb4*2, Measure+Beat*3, Sixteenth)
	lead(G5, Measure+Beat*3+Sixteenth, Sixteenth)
	lead(Eb5, Measure+Beat*3+Eighth, Sixteenth)
	lead(F5, Measure+Beat*3+Eighth+Sixteenth, Sixteenth+Beat*3)

	lead(Eb5, Measure*2+Beat*3, Sixteenth)
	lead(F5, Measure*2+Beat*3+Sixteenth, Sixteenth)
	lead(Bb4, Measure*2+Beat*3+Eighth, Sixteenth)
	lead(C5, Measure*2+Beat*3+Eighth+Sixteenth, Sixteenth+Beat*3)
}

var (
	cm7    = []float64{C5, Eb5, G5, Bb4 * 2}
	fm7    = []float64{F5, Ab5, C5, Eb5}
	f7     = []float64{F5, A5, C5, Eb5}
	ebmaj7 = []float64{Eb5, G5, Bb4 * 2, D5}
	bb7    = []float64{Bb4, D5, F5, Ab5}
)

// PlayIntroChordSequence plays Cm7 F7 Fm7 Cm7, a measure each.
func (s *Score) PlayIntroChordSequence(start, offset float64) {
	for i, chord := range [][]float64{cm7, f7, fm7, cm7} {
		s.PlayPadChord(chord, offset, start+float64(i)*Measure, Measure, padAmp, padAttack, padDecay)
	}
}

// PlayVerseChords plays Ebmaj7 Bb7, a measure each.
func (s *Score) PlayVerseChords(start, offset float64) {
	s.PlayPadChord(ebmaj7, offset, start, Measure, padAmp, padAttack, padDecay)
	s.PlayPadChord(bb7, offset, start+Measure, Measure, padAmp, padAttack, padDecay)
}

// PlayVerseMelody plays a descending line under two fixed notes, then an
// answering phrase in the second measure.
func (s *Score) PlayVerseMelody(start, offset float64) {
	for i, top := range []float64{Eb5, D5, Db5, C5} {
		dur := Beat * .75
		if i == 3 {
			dur = Beat * 1.5
		}
		chord := []float64{Bb4, G5 / 2, top}
		s.PlayLeadChord(chord, offset, start+Beat*.75*float64(i), dur, leadAmp, leadAttack, leadDecay)
	}

	s.PlayLead(Bb4*offset, start+Measure+Beat, Beat*.8, leadAmp, leadAttack, leadDecay)
	s.PlayLead(F5/2*offset, start+Measure+Beat*1.8, Beat*.7, leadAmp, leadAttack, leadDecay)
	s.PlayLead(Ab5/2*offset, start+Measure+Beat*2.5, Beat*1.5, leadAmp, leadAttack, leadDecay)
}

// SequenceA is the whole New Demo song: sixteen measures of rhythm under
// two intros, two verses and a closing note.
func SequenceA() *Score {
	s := new(Score)
	s.PlayRhythm(0, 16)

	s.PlayIntroMelody(0, .5)
	s.PlayIntroChordSequence(0, .5)

	s.PlayIntroMelody(Measure*4, .5)
	s.PlayIntroChordSequence(Measure*4, .5)

	s.PlayVerseChords(Measure*8, .5)
	s.PlayVerseMelody(Measure*8, .5)

	s.PlayVerseChords(Measure*10, .5)
	s.PlayVerseMelody(Measure*10, .5)

	s.PlayLead(Eb5*.5, Measure*12, Measure, leadAmp, leadAttack, leadDecay)
	return s
}
