package synth

import "math"

// The computer keyboard as two piano octaves: the bottom two letter rows
// play from C4, the top two from C5, with the row above each providing the
// black keys.
var asciiMIDI = map[rune]int{
	'z': 60, 's': 61, 'x': 62, 'd': 63, 'c': 64, 'v': 65, 'g': 66, 'b': 67,
	'h': 68, 'n': 69, 'j': 70, 'm': 71, ',': 72, 'l': 73, '.': 74, ';': 75,
	'/': 76,

	'q': 72, '2': 73, 'w': 74, '3': 75, 'e': 76, 'r': 77, '5': 78, 't': 79,
	'6': 80, 'y': 81, '7': 82, 'u': 83, 'i': 84, '9': 85, 'o': 86, '0': 87,
	'p': 88,
}

// ASCIIToMIDI returns the MIDI note for a key, transposed by offset
// semitones, or 0 for keys that play nothing.
func ASCIIToMIDI(key rune, offset int) int {
	if n, ok := asciiMIDI[key]; ok {
		return n + offset
	}
	return 0
}

var asciiRows = []string{"1234567890", "qwertyuiop", "asdfghjkl;", "zxcvbnm,./"}

// ASCIIToIndex numbers the keys row by row from the number row, plus
// offset, or returns -1.
func ASCIIToIndex(key rune, offset int) int {
	for r, row := range asciiRows {
		for i, k := range row {
			if k == key {
				return 10*r + i + offset
			}
		}
	}
	return -1
}

// MIDIToFreq converts a MIDI note number to Hz with A4 at 440.
func MIDIToFreq(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}
