// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom parts built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// hwField describes a struct field tagged as a pin or bus.
type hwField struct {
	index int
	pin   string
	in    bool
	bus   int // bus width, 0 for single pins
}

// MakePart wraps an Updater into a custom part. Input/output pins are
// identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be of type int and buses arrays of int. When the part is mounted,
// a new value of the Updater's type is allocated and its fields are set to the
// pin numbers in the circuit.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	fields := hwFields(typ)
	sp := &PartSpec{Name: typ.Name()}
	for _, f := range fields {
		var pins []string
		if f.bus > 0 {
			pins = busPins(f.pin, f.bus)
		} else {
			pins = []string{f.pin}
		}
		if f.in {
			sp.Inputs = append(sp.Inputs, pins...)
		} else {
			sp.Outputs = append(sp.Outputs, pins...)
		}
	}
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bus == 0 {
				fv.SetInt(int64(s.Pin(f.pin)))
				continue
			}
			for i, n := range s.Bus(f.pin, f.bus) {
				fv.Index(i).SetInt(int64(n))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
	return sp
}

func hwFields(typ reflect.Type) []hwField {
	var fs []hwField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		hf := hwField{index: i, pin: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			hf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			hf.in = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		switch ft := f.Type; {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			hf.bus = ft.Len()
		case ft.Kind() == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
		fs = append(fs, hf)
	}
	return fs
}
