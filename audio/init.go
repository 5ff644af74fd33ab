package audio

import (
	"fmt"
	"reflect"
)

// An Initer is a unit generator that needs to know the audio parameters
// before it can produce samples.
type Initer interface {
	InitAudio(Params)
}

type Params struct {
	SampleRate float64
	BufferSize int
	Channels   int
}

func (p *Params) InitAudio(q Params) { *p = q }

// Init walks x (struct fields, slice and array elements, pointers) and calls
// InitAudio on everything implementing Initer.  Values that are themselves
// Initers are not descended into; they are responsible for their own fields.
func Init(x interface{}, p Params) {
	if err := initVal(reflect.ValueOf(x), p); err != nil {
		panic("audio.Init: " + err.Error())
	}
}

var initerType = reflect.TypeOf(new(Initer)).Elem()

func initVal(v reflect.Value, p Params) (err error) {
	if !v.IsValid() || (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() || !v.CanInterface() {
		return
	}

	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	v = reflect.Indirect(v)
	if v.CanAddr() && v.Type().Name() != "" {
		v = v.Addr()
	}
	if x, ok := v.Interface().(Initer); ok {
		x.InitAudio(p)
		return
	}

	defer func() {
		if err != nil {
			// append v to the Init stack trace
			err = fmt.Errorf("%s\n\t%#v", err, v)
		}
	}()
	if t := v.Type(); t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(initerType) {
		return fmt.Errorf("%s does not implement audio.Initer but *%s does.\nInit stack:", t, t)
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err = initVal(v.Field(i), p); err != nil {
				return
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err = initVal(v.Index(i), p); err != nil {
				return
			}
		}
	}

	return
}
