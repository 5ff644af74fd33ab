package app

import (
	"log"

	"github.com/gordonklaus/avsynth/synth"
)

// KeyboardSong plays m's voice from the computer keyboard as a piano.  Shift
// with a key recalls the preset numbered by the key instead.
func KeyboardSong(name string, m *synth.Manager) *Song {
	return &Song{
		Name:    name,
		Manager: m,
		KeyDown: func(k Key) {
			if k.Shift {
				i := synth.ASCIIToIndex(k.Rune, 0)
				if i < 0 {
					return
				}
				if err := m.RecallPreset(i); err != nil {
					log.Println(err)
				}
				return
			}
			note := synth.ASCIIToMIDI(k.Rune, 0)
			if note <= 0 {
				return
			}
			if err := m.SetParam("frequency", synth.MIDIToFreq(float64(note))); err != nil {
				log.Println(err)
				return
			}
			if err := m.TriggerOn(note); err != nil {
				log.Println(err)
			}
		},
		KeyUp: func(k Key) {
			if note := synth.ASCIIToMIDI(k.Rune, 0); note > 0 {
				m.TriggerOff(note)
			}
		},
	}
}
