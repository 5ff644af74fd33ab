package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/nsf/termbox-go"

	"github.com/gordonklaus/avsynth/engine"
)

const (
	colDef   = termbox.ColorDefault
	colWhite = termbox.ColorWhite
	colCyan  = termbox.ColorCyan
	colGreen = termbox.ColorGreen
)

// shiftedDigits is the US layout's digit row with shift held.
const shiftedDigits = ")!@#$%^&*("

type tui struct {
	song   *Song
	engine *engine.Engine
	gate   *engine.Gate[Key]
	start  time.Time
	exit   bool
}

// runTUI plays song from a terminal.  Terminals report only presses, so
// keys are released after the gate time unless autorepeat holds them.
func runTUI(ctx context.Context, cfg *Config, song *Song, e *engine.Engine) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)

	t := &tui{song: song, engine: e, start: time.Now()}
	t.gate = engine.NewGate(cfg.Gate, func(k Key) {
		if song.KeyUp != nil {
			song.KeyUp(k)
		}
	})

	quit := make(chan struct{})
	events, polled := pollEvents(termbox.PollEvent, quit)
	defer func() {
		close(quit)
		termbox.Interrupt()
		<-polled
	}()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	t.draw()
	for !t.exit {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				t.key(ev)
			case termbox.EventError:
				return fmt.Errorf("terminal: %w", ev.Err)
			}
		case <-ticker.C:
			t.gate.Advance(t.now())
			t.draw()
		}
	}
	return nil
}

// pollEvents forwards the results of poll until poll returns an
// EventInterrupt, then closes done.  Events polled after quit is closed are
// dropped, so the poller always returns to poll and sees the interrupt.
func pollEvents(poll func() termbox.Event, quit <-chan struct{}) (<-chan termbox.Event, <-chan struct{}) {
	events := make(chan termbox.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev := poll()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-quit:
			}
		}
	}()
	return events, done
}

func (t *tui) now() float64 { return time.Since(t.start).Seconds() }

func (t *tui) key(ev termbox.Event) {
	m := t.song.Manager
	switch ev.Key {
	case termbox.KeyEsc:
		t.exit = true
		return
	case termbox.KeyArrowUp:
		panelKey(m, arrowUp, false)
		return
	case termbox.KeyArrowDown:
		panelKey(m, arrowDown, false)
		return
	case termbox.KeyArrowLeft:
		panelKey(m, arrowLeft, false)
		return
	case termbox.KeyArrowRight:
		panelKey(m, arrowRight, false)
		return
	case termbox.KeyTab, termbox.KeyEnter, termbox.KeyBackspace:
		return
	}
	if termbox.KeyCtrlA <= ev.Key && ev.Key <= termbox.KeyCtrlZ {
		storePreset(m, rune('a'+ev.Key-termbox.KeyCtrlA))
		return
	}
	if ev.Key == termbox.KeySpace {
		ev.Ch = ' '
	}
	if ev.Ch == 0 {
		return
	}

	k := Key{Rune: ev.Ch}
	if unicode.IsUpper(k.Rune) {
		k = Key{Rune: unicode.ToLower(k.Rune), Shift: true}
	} else if i := strings.IndexRune(shiftedDigits, k.Rune); i >= 0 {
		k = Key{Rune: rune('0' + i), Shift: true}
	}
	if t.gate.Press(k, t.now()) && t.song.KeyDown != nil {
		t.song.KeyDown(k)
	}
}

func (t *tui) draw() {
	termbox.Clear(colDef, colDef)
	printTB(0, 0, colCyan, colDef, t.song.Name)
	printTB(0, 1, colDef, colDef, "Arrows select and adjust, ctrl+key stores a preset, Esc quits.")
	for i, line := range t.song.Manager.PanelLines() {
		printTB(0, 3+i, colWhite, colDef, line)
	}

	_, h := termbox.Size()
	level := t.engine.Level()
	bar := int(level * 100)
	if bar > 50 {
		bar = 50
	}
	printTB(0, h-1, colGreen, colDef, fmt.Sprintf("level %.3f %s", level, strings.Repeat("|", bar)))
	termbox.Flush()
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}
