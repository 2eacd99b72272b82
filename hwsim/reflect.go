// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
type Updater interface {
	Update(c *Circuit)
}

type pinField struct {
	index int
	name  string
	bits  int // 0 for a single pin
	input bool
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be of type int and buses arrays of int. When mounted, each field
// is set to the corresponding pin number. Untagged fields are left alone and
// can hold the component's internal state: a new instance is created for
// every mount.
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}

	var fields []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bits = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}

		var names []string
		if pf.bits == 0 {
			names = []string{pf.name}
		} else {
			for b := 0; b < pf.bits; b++ {
				names = append(names, BusPinName(pf.name, b))
			}
		}
		if pf.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
		fields = append(fields, pf)
	}
	sp.Mount = mountPart(typ, fields)
	return sp
}

func mountPart(typ reflect.Type, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, pf := range fields {
			fv := e.Field(pf.index)
			if pf.bits == 0 {
				fv.SetInt(int64(s.Pin(pf.name)))
				continue
			}
			for i, p := range s.Bus(pf.name, pf.bits) {
				fv.Index(i).SetInt(int64(p))
			}
		}
		u := v.Interface().(Updater)
		return []Component{u.Update}
	}
}
