// Goodgroup plays five recordings, each with its spectrogram.  Keys a s d f
// g start them.
package main

import (
	"log"

	"github.com/gordonklaus/avsynth/app"
	"github.com/gordonklaus/avsynth/score"
	"github.com/gordonklaus/avsynth/synth"
	"github.com/gordonklaus/avsynth/voices"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("goodgroup: ")
	cfg := app.ParseFlags()

	s := synth.New(cfg.Params())
	voices.Register(s)
	for _, t := range score.GoodGroup {
		path := cfg.Asset(t.File)
		if err := voices.Preload(path); err != nil {
			log.Fatal(err)
		}
		s.Register(t.Voice, voices.NewSample(path, t.X))
	}
	m, err := synth.NewManager("Voice", score.GoodGroup[0].Voice, s, cfg.Presets)
	if err != nil {
		log.Fatal(err)
	}
	m.Recorder().Verbose(true)

	song := &app.Song{
		Name:    "Good Group",
		Manager: m,
		KeyDown: func(k app.Key) {
			t, ok := score.TrackForKey(k.Rune)
			if !ok {
				return
			}
			v, err := s.GetVoice(t.Voice)
			if err != nil {
				log.Println(err)
				return
			}
			m.Sequencer().AddVoiceFromNow(v, 0, t.Duration)
		},
	}
	if err := app.Run(cfg, song); err != nil {
		log.Fatal(err)
	}
}
