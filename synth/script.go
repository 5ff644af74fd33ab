package synth

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// RunScript runs a Lua score against q.  Scores call
//
//	note(name, start, duration [, {param = value, ...}])
//
// to schedule a voice from now, with times in beats, and may use hz(midi)
// to get frequencies.  The globals beat and measure hold their lengths in
// seconds; beat is the given beat length.
func RunScript(q *Sequencer, src string, beat float64) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("beat", lua.LNumber(beat))
	L.SetGlobal("measure", lua.LNumber(4*beat))
	L.SetGlobal("hz", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(MIDIToFreq(float64(L.CheckNumber(1)))))
		return 1
	}))
	L.SetGlobal("note", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		start := float64(L.CheckNumber(2))
		dur := float64(L.CheckNumber(3))
		params := L.OptTable(4, nil)

		v, err := q.synth.GetVoice(name)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		if params != nil {
			var perr error
			params.ForEach(func(k, x lua.LValue) {
				n, ok := x.(lua.LNumber)
				if !ok {
					perr = fmt.Errorf("parameter %s: not a number", k)
					return
				}
				if err := v.base().SetParam(k.String(), float64(n)); err != nil && perr == nil {
					perr = err
				}
			})
			if perr != nil {
				q.synth.putBack(v)
				L.RaiseError("%v", perr)
				return 0
			}
		}
		q.AddVoiceFromNow(v, start*beat, dur*beat)
		return 0
	}))

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return nil
}
