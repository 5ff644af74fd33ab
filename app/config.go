package app

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/gordonklaus/avsynth/audio"
)

// Config holds the command-line settings shared by the songs.
type Config struct {
	Backend    string
	SampleRate float64
	BufferSize int
	Channels   int

	TUI  bool
	Gate float64
	Keys string

	Render  string
	Seconds float64

	Presets string
	Assets  string
	Score   string
	Beat    float64
	Record  string
}

// RegisterFlags defines c's flags on fs, with c's current values as the
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "audio backend: portaudio or oto")
	fs.Float64Var(&c.SampleRate, "rate", c.SampleRate, "sample rate in Hz")
	fs.IntVar(&c.BufferSize, "buffer", c.BufferSize, "frames per audio block")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "use the terminal instead of a window")
	fs.Float64Var(&c.Gate, "gate", c.Gate, "seconds a key is held when its release cannot be seen")
	fs.StringVar(&c.Keys, "keys", c.Keys, "keys to press at the start")
	fs.StringVar(&c.Render, "render", c.Render, "render to this WAV file instead of playing")
	fs.Float64Var(&c.Seconds, "seconds", c.Seconds, "seconds to render; 0 renders until the song ends")
	fs.StringVar(&c.Presets, "presets", c.Presets, "preset directory")
	fs.StringVar(&c.Assets, "assets", c.Assets, "directory of sound files")
	fs.StringVar(&c.Score, "score", c.Score, "sequence file or Lua score to play at the start")
	fs.Float64Var(&c.Beat, "beat", c.Beat, "seconds per beat in Lua scores")
	fs.StringVar(&c.Record, "record", c.Record, "write the notes played to this sequence file")
}

// ParseFlags parses the command line over the defaults: 48kHz stereo in
// blocks of 512 through portaudio.
func ParseFlags() *Config {
	c := &Config{
		Backend:    "portaudio",
		SampleRate: 48000,
		BufferSize: 512,
		Channels:   2,
		Gate:       .3,
		Presets:    "~/.avsynth/presets",
		Assets:     ".",
		Beat:       .5,
	}
	c.RegisterFlags(flag.CommandLine)
	flag.Parse()
	presets, err := homedir.Expand(c.Presets)
	if err != nil {
		log.Fatal(err)
	}
	c.Presets = presets
	return c
}

func (c *Config) Params() audio.Params {
	return audio.Params{SampleRate: c.SampleRate, BufferSize: c.BufferSize, Channels: c.Channels}
}

// Asset returns the path of a sound file.
func (c *Config) Asset(name string) string { return filepath.Join(c.Assets, name) }
