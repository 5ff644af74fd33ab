package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gordonklaus/avsynth/engine"
	"github.com/gordonklaus/avsynth/mesh"
)

// keyRunes maps the keys a song can use to the characters on them.
var keyRunes = func() map[ebiten.Key]rune {
	m := map[ebiten.Key]rune{
		ebiten.KeyComma:     ',',
		ebiten.KeyPeriod:    '.',
		ebiten.KeySlash:     '/',
		ebiten.KeySemicolon: ';',
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		switch {
		case len(name) == 1 && 'A' <= name[0] && name[0] <= 'Z':
			m[k] = rune(name[0] - 'A' + 'a')
		case len(name) == 6 && strings.HasPrefix(name, "Digit"):
			m[k] = rune(name[5])
		}
	}
	return m
}()

var background = color.RGBA{0, 0, 0, 0xff}

// maxVertices keeps triangle batches addressable by uint16 indices.
const maxVertices = 1 << 15

type window struct {
	ctx    context.Context
	song   *Song
	engine *engine.Engine

	canvas    *mesh.Canvas
	white     *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
	held      map[ebiten.Key]Key
	showPanel bool
}

func runWindow(ctx context.Context, song *Song, e *engine.Engine) error {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	w := &window{
		ctx:       ctx,
		song:      song,
		engine:    e,
		canvas:    mesh.NewCanvas(1024, 768),
		white:     white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		held:      map[ebiten.Key]Key{},
		showPanel: true,
	}
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle(song.Name)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(w)
}

func (w *window) Update() error {
	if w.ctx.Err() != nil || ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	m := w.song.Manager

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		w.showPanel = !w.showPanel
	}
	for key, a := range map[ebiten.Key]arrow{
		ebiten.KeyArrowUp:    arrowUp,
		ebiten.KeyArrowDown:  arrowDown,
		ebiten.KeyArrowLeft:  arrowLeft,
		ebiten.KeyArrowRight: arrowRight,
	} {
		if inpututil.IsKeyJustPressed(key) || a >= arrowLeft && repeating(key) {
			panelKey(m, a, shift)
		}
	}

	for key, r := range keyRunes {
		if inpututil.IsKeyJustPressed(key) {
			if ctrl {
				storePreset(m, r)
				continue
			}
			k := Key{Rune: r, Shift: shift}
			w.held[key] = k
			if w.song.KeyDown != nil {
				w.song.KeyDown(k)
			}
		}
		if inpututil.IsKeyJustReleased(key) {
			k, ok := w.held[key]
			if !ok {
				continue
			}
			delete(w.held, key)
			if w.song.KeyUp != nil {
				w.song.KeyUp(k)
			}
		}
	}
	return nil
}

// repeating reports whether a held key should repeat this tick.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d > 30 && d%3 == 0
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w.canvas.Clear()
	w.song.Manager.RenderGraphics(w.canvas)

	for _, s := range w.canvas.Shapes() {
		switch s.Primitive {
		case mesh.Triangles:
			if len(w.vertices)+3 > maxVertices {
				w.flush(screen)
			}
			for _, p := range s.Points {
				w.indices = append(w.indices, uint16(len(w.vertices)))
				w.vertices = append(w.vertices, ebiten.Vertex{
					DstX: p.X, DstY: p.Y,
					SrcX: 1, SrcY: 1,
					ColorR: p.Color.R, ColorG: p.Color.G, ColorB: p.Color.B, ColorA: p.Color.A,
				})
			}
		case mesh.Points:
			w.flush(screen)
			for _, p := range s.Points {
				vector.DrawFilledRect(screen, p.X-s.Width/2, p.Y-s.Width/2, s.Width, s.Width, p.Color, false)
			}
		default:
			w.flush(screen)
			step := 1
			if s.Primitive == mesh.Lines {
				step = 2
			}
			for i := 0; i+1 < len(s.Points); i += step {
				a, b := s.Points[i], s.Points[i+1]
				vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, s.Width, a.Color, true)
			}
		}
	}
	w.flush(screen)

	if w.showPanel {
		lines := append(w.song.Manager.PanelLines(), fmt.Sprintf("level %.3f  %.0f fps", w.engine.Level(), ebiten.ActualFPS()))
		ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)
	}
}

func (w *window) flush(screen *ebiten.Image) {
	if len(w.indices) > 0 {
		screen.DrawTriangles(w.vertices, w.indices, w.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	w.vertices, w.indices = w.vertices[:0], w.indices[:0]
}

func (w *window) Layout(width, height int) (int, int) {
	if p := w.canvas.Projector(); p.Width != width || p.Height != height {
		p.Resize(width, height)
	}
	return width, height
}
