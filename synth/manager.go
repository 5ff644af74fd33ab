package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gordonklaus/avsynth/audio"
	"github.com/gordonklaus/avsynth/mesh"
)

// Manager plays one kind of voice from a template whose parameters are
// edited interactively.  Each TriggerOn copies the template into a pooled
// voice.  Templates can be stored to and recalled from numbered presets
// kept as JSON files under <presetDir>/<name>/.
type Manager struct {
	name      string
	kind      string
	presetDir string
	synth     *PolySynth
	seq       *Sequencer
	rec       *Recorder
	template  Voice

	mu       sync.Mutex
	selected int
}

// ErrNoPreset is returned when recalling a preset that was never stored.
var ErrNoPreset = errors.New("no such preset")

// NewManager manages voices of the registered kind on s.  An empty presetDir
// disables presets.
func NewManager(name, kind string, s *PolySynth, presetDir string) (*Manager, error) {
	template, err := s.newTemplate(kind)
	if err != nil {
		return nil, err
	}
	seq := NewSequencer(s)
	return &Manager{
		name:      name,
		kind:      kind,
		presetDir: presetDir,
		synth:     s,
		seq:       seq,
		rec:       NewRecorder(s),
		template:  template,
	}, nil
}

func (m *Manager) Name() string                   { return m.name }
func (m *Manager) Voice() Voice                   { return m.template }
func (m *Manager) Synth() *PolySynth              { return m.synth }
func (m *Manager) Sequencer() *Sequencer          { return m.seq }
func (m *Manager) Recorder() *Recorder            { return m.rec }
func (m *Manager) Params() []*Parameter           { return m.template.base().params }
func (m *Manager) Render(io *audio.IO)            { m.seq.Render(io) }
func (m *Manager) RenderGraphics(g mesh.Graphics) { m.synth.RenderGraphics(g) }

// SetParam sets a template parameter.
func (m *Manager) SetParam(name string, v float64) error {
	return m.template.base().SetParam(name, v)
}

// TriggerOn plays a copy of the template as note id.
func (m *Manager) TriggerOn(id int) error {
	v, err := m.synth.GetVoice(m.kind)
	if err != nil {
		return err
	}
	v.base().CopyParams(m.template)
	m.synth.TriggerOn(v, 0, id)
	return nil
}

func (m *Manager) TriggerOff(id int) { m.synth.TriggerOff(id) }

// Select moves the control panel selection by delta parameters, wrapping.
func (m *Manager) Select(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.Params())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Adjust changes the selected parameter by steps hundredths of its range.
func (m *Manager) Adjust(steps float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	params := m.Params()
	if len(params) == 0 {
		return
	}
	p := params[m.selected]
	p.Set(p.Get() + steps*p.Step())
}

// Selected returns the index of the selected parameter.
func (m *Manager) Selected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// PanelLines describes the control panel, one parameter per line, with the
// selected one marked.
func (m *Manager) PanelLines() []string {
	sel := m.Selected()
	lines := []string{fmt.Sprintf("%s (%d active)", m.name, m.synth.ActiveVoices())}
	for i, p := range m.Params() {
		mark := "  "
		if i == sel {
			mark = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-12s %8.3f  [%g, %g]", mark, p.Name, p.Get(), p.Min, p.Max))
	}
	return lines
}

type preset struct {
	Name   string             `json:"name"`
	Voice  string             `json:"voice"`
	Params map[string]float64 `json:"params"`
}

// PresetPath returns where preset i is stored.
func (m *Manager) PresetPath(i int) string {
	return filepath.Join(m.presetDir, m.name, strconv.Itoa(i)+".json")
}

// StorePreset saves the template's parameters as preset i.
func (m *Manager) StorePreset(i int) error {
	if m.presetDir == "" {
		return errors.New("presets disabled")
	}
	p := preset{Name: m.name, Voice: m.kind, Params: map[string]float64{}}
	for _, param := range m.Params() {
		p.Params[param.Name] = param.Get()
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	path := m.PresetPath(i)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store preset %d: %w", i, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store preset %d: %w", i, err)
	}
	return nil
}

// RecallPreset loads preset i into the template.  Parameters the preset
// does not mention keep their values; ones the voice does not have are
// ignored.
func (m *Manager) RecallPreset(i int) error {
	if m.presetDir == "" || i < 0 {
		return fmt.Errorf("preset %d: %w", i, ErrNoPreset)
	}
	data, err := os.ReadFile(m.PresetPath(i))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("preset %d: %w", i, ErrNoPreset)
	}
	if err != nil {
		return err
	}
	var p preset
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("preset %d: %w", i, err)
	}
	b := m.template.base()
	for name, v := range p.Params {
		if err := b.SetParam(name, v); err != nil && !errors.Is(err, ErrUnknownParameter) {
			return err
		}
	}
	return nil
}
