package app

import (
	"testing"
	"time"

	"github.com/nsf/termbox-go"
)

func TestPollEventsStopsOnInterrupt(t *testing.T) {
	src := make(chan termbox.Event)
	quit := make(chan struct{})
	events, done := pollEvents(func() termbox.Event { return <-src }, quit)

	src <- termbox.Event{Type: termbox.EventKey, Ch: 'a'}
	select {
	case ev := <-events:
		if ev.Ch != 'a' {
			t.Errorf("got key %q, want 'a'", ev.Ch)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}

	// After quit, nobody reads events; a late key must not wedge the poller.
	close(quit)
	src <- termbox.Event{Type: termbox.EventKey, Ch: 'b'}
	src <- termbox.Event{Type: termbox.EventInterrupt}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller still running after interrupt")
	}
}
