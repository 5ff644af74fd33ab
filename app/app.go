// Package app runs a song: it plays it through an audio device while a
// window or terminal takes keys and shows the voices, or renders it offline
// to a file.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gordonklaus/avsynth/engine"
	"github.com/gordonklaus/avsynth/synth"
)

// Key is a key press, named by the character on the unshifted key.
type Key struct {
	Rune  rune
	Shift bool
}

// Song is what Run plays.
type Song struct {
	Name    string
	Manager *synth.Manager

	// KeyDown and KeyUp get the keys the control panel does not use.
	KeyDown func(Key)
	KeyUp   func(Key)

	// Sources play alongside the manager, such as a backing track.
	Sources []engine.Renderer
}

var ErrUnknownBackend = errors.New("unknown audio backend")

// Run plays song as configured and returns when the user quits, or when an
// offline render is complete.
func Run(cfg *Config, song *Song) error {
	e := engine.New(cfg.Params(), append([]engine.Renderer{song.Manager}, song.Sources...)...)

	if cfg.Score != "" {
		if err := playScore(song.Manager.Sequencer(), cfg.Score, cfg.Beat); err != nil {
			return err
		}
	}
	if cfg.Record != "" {
		song.Manager.Recorder().Start()
		defer writeRecording(song.Manager.Recorder(), cfg.Record)
	}

	if cfg.Render != "" {
		return renderOffline(cfg, song, e)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		return play(ctx, cfg.Backend, e)
	})
	g.Go(func() error {
		pressKeys(ctx, cfg, song)
		return nil
	})

	var err error
	if cfg.TUI {
		err = runTUI(ctx, cfg, song, e)
	} else {
		err = runWindow(ctx, song, e)
	}
	cancel()
	return errors.Join(err, g.Wait())
}

// play runs the audio backend until ctx is done, then fades out.
func play(ctx context.Context, backend string, e *engine.Engine) error {
	switch backend {
	case "portaudio":
		return playPortaudio(ctx, e)
	case "oto":
		return playOto(ctx, e)
	}
	return fmt.Errorf("%w %q", ErrUnknownBackend, backend)
}

// fadeOut waits for e to fade to silence, or gives up if the device has
// stopped asking for audio.
func fadeOut(e *engine.Engine) {
	select {
	case <-e.FadeOut():
	case <-time.After(time.Second):
	}
}

// playScore schedules a sequence file, or a Lua score for files ending in
// .lua.
func playScore(q *synth.Sequencer, path string, beat float64) error {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return synth.RunScript(q, string(src), beat)
	}
	events, err := synth.LoadSequence(path)
	if err != nil {
		return err
	}
	return q.PlaySequence(events)
}

func writeRecording(r *synth.Recorder, path string) {
	r.Stop()
	f, err := os.Create(path)
	if err != nil {
		log.Println(err)
		return
	}
	defer f.Close()
	if _, err := r.WriteTo(f); err != nil {
		log.Println(err)
		return
	}
	log.Printf("wrote %d events to %s", len(r.Events()), path)
}

// pressKeys plays the -keys flag: each key is pressed and released after the
// gate time, the next key following the release.
func pressKeys(ctx context.Context, cfg *Config, song *Song) {
	gate := time.Duration(cfg.Gate * float64(time.Second))
	for _, r := range cfg.Keys {
		k := Key{Rune: r}
		if song.KeyDown != nil {
			song.KeyDown(k)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(gate):
		}
		if song.KeyUp != nil {
			song.KeyUp(k)
		}
	}
}

func renderOffline(cfg *Config, song *Song, e *engine.Engine) error {
	keys := []rune(cfg.Keys)
	gate := engine.NewGate(cfg.Gate, func(k Key) {
		if song.KeyUp != nil {
			song.KeyUp(k)
		}
	})
	seq := song.Manager.Sequencer()
	step := func(t float64) bool {
		gate.Advance(t)
		if len(keys) > 0 && gate.Held() == 0 {
			k := Key{Rune: keys[0]}
			keys = keys[1:]
			gate.Press(k, t)
			if song.KeyDown != nil {
				song.KeyDown(k)
			}
		}
		return len(keys) > 0 || gate.Held() > 0 || seq.Playing() || song.Manager.Synth().ActiveVoices() > 0
	}
	if err := engine.RenderFile(cfg.Render, e, cfg.Seconds, step); err != nil {
		return err
	}
	log.Printf("rendered %.1fs to %s", e.Time(), cfg.Render)
	return nil
}

type arrow int

const (
	arrowUp arrow = iota
	arrowDown
	arrowLeft
	arrowRight
)

// panelKey moves through the control panel with up and down and changes the
// selected parameter with left and right, ten times faster with shift.
func panelKey(m *synth.Manager, a arrow, shift bool) {
	steps := 1.0
	if shift {
		steps = 10
	}
	switch a {
	case arrowUp:
		m.Select(-1)
	case arrowDown:
		m.Select(1)
	case arrowLeft:
		m.Adjust(-steps)
	case arrowRight:
		m.Adjust(steps)
	}
}

// storePreset saves the manager's template as the preset for key k.
func storePreset(m *synth.Manager, k rune) {
	i := synth.ASCIIToIndex(k, 0)
	if i < 0 {
		return
	}
	if err := m.StorePreset(i); err != nil {
		log.Println(err)
		return
	}
	log.Printf("stored preset %d in %s", i, m.PresetPath(i))
}
