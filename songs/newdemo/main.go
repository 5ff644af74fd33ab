// Newdemo plays a short song on drums, lead and pads.  Press a to play it
// and s to play the backing track given by -backing.
package main

import (
	"flag"
	"log"

	"github.com/gordonklaus/avsynth/app"
	"github.com/gordonklaus/avsynth/engine"
	"github.com/gordonklaus/avsynth/score"
	"github.com/gordonklaus/avsynth/synth"
	"github.com/gordonklaus/avsynth/voices"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("newdemo: ")
	backingPath := flag.String("backing", "", "sound file played by s")
	cfg := app.ParseFlags()

	hihat := cfg.Asset("open_hihat.wav")
	if err := voices.Preload(hihat); err != nil {
		log.Fatal(err)
	}
	s := synth.New(cfg.Params())
	voices.Register(s)
	s.Register("OpenHihat", voices.NewOpenHihat(hihat))
	m, err := synth.NewManager("Pad", "Pad", s, cfg.Presets)
	if err != nil {
		log.Fatal(err)
	}
	m.Recorder().Verbose(true)

	song := &app.Song{Name: "New Demo", Manager: m}
	var backing *voices.Backing
	if *backingPath != "" {
		backing, err = voices.NewBacking(*backingPath, cfg.Params())
		if err != nil {
			log.Fatal(err)
		}
		song.Sources = []engine.Renderer{backing}
	}

	song.KeyDown = func(k app.Key) {
		switch k.Rune {
		case 'a':
			if err := m.Sequencer().PlaySequence(score.SequenceA().Events); err != nil {
				log.Println(err)
			}
		case 's':
			if backing != nil {
				backing.Restart()
			}
		}
	}
	if err := app.Run(cfg, song); err != nil {
		log.Fatal(err)
	}
}
