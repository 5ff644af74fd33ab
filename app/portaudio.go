package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"

	"github.com/gordonklaus/avsynth/engine"
)

func playPortaudio(ctx context.Context, e *engine.Engine) (err error) {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer func() {
		if terr := portaudio.Terminate(); err == nil && terr != nil {
			err = fmt.Errorf("portaudio: %w", terr)
		}
	}()

	p := e.Params()
	stream, err := portaudio.OpenDefaultStream(0, p.Channels, p.SampleRate, p.BufferSize, e.Render)
	if err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	log.Printf("playing at %gHz in blocks of %d", p.SampleRate, p.BufferSize)

	<-ctx.Done()
	fadeOut(e)
	return stream.Stop()
}
