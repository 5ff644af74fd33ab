// Slapbass plays the square wave bass from the computer keyboard.
package main

import (
	"log"

	"github.com/gordonklaus/avsynth/app"
	"github.com/gordonklaus/avsynth/synth"
	"github.com/gordonklaus/avsynth/voices"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("slapbass: ")
	cfg := app.ParseFlags()

	s := synth.New(cfg.Params())
	voices.Register(s)
	m, err := synth.NewManager("SquareWave", "SquareWave", s, cfg.Presets)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(cfg, app.KeyboardSong("Slap Bass", m)); err != nil {
		log.Fatal(err)
	}
}
