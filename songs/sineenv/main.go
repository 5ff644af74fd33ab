// Sineenv plays the SineEnv voice from the computer keyboard.  Shift with a
// key recalls a preset, control with a key stores one.
package main

import (
	"log"

	"github.com/gordonklaus/avsynth/app"
	"github.com/gordonklaus/avsynth/synth"
	"github.com/gordonklaus/avsynth/voices"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sineenv: ")
	cfg := app.ParseFlags()

	s := synth.New(cfg.Params())
	voices.Register(s)
	m, err := synth.NewManager("SineEnv", "SineEnv", s, cfg.Presets)
	if err != nil {
		log.Fatal(err)
	}
	m.Recorder().Verbose(true)

	if err := app.Run(cfg, app.KeyboardSong("SineEnv", m)); err != nil {
		log.Fatal(err)
	}
}
