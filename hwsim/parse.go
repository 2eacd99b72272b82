// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// A Connection connects a part pin (PP) to a chip pin (CP). Either side may be
// a single pin, a bus pin like "a[3]", a bus range like "a[0..3]", or a whole
// bus name.
type Connection struct {
	PP string
	CP string
}

// BusPinName returns the name of pin i in bus name.
func BusPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// ParseIOSpec parses a pin specification string and returns individual pin
// names in a slice, expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			if strings.TrimSpace(spec) == "" {
				return nil, nil
			}
			return nil, parseError(spec, "empty pin name")
		}
		name, size := f, -1
		if i := strings.IndexByte(f, '['); i >= 0 {
			if !strings.HasSuffix(f, "]") {
				return nil, parseError(spec, "missing close bracket after "+f)
			}
			n, err := strconv.Atoi(f[i+1 : len(f)-1])
			if err != nil || n <= 0 {
				return nil, parseError(spec, "invalid bus size in "+f)
			}
			name, size = f[:i], n
		}
		if !isIdent(name) {
			return nil, parseError(spec, "invalid pin name "+strconv.Quote(name))
		}
		if seen[name] {
			return nil, parseError(spec, "duplicate pin name "+name)
		}
		seen[name] = true
		if size < 0 {
			out = append(out, name)
			continue
		}
		for i := 0; i < size; i++ {
			out = append(out, BusPinName(name, i))
		}
	}
	return out, nil
}

// ParseConnections parses a connection configuration like "a=a, b=b, out=w"
// into a Connection slice. Buses can be connected with ranges:
//
//	"in[0..1]=bus[2..3]"
//
// or as a whole by their name:
//
//	"in=bus"
func ParseConnections(c string) ([]Connection, error) {
	if strings.TrimSpace(c) == "" {
		return nil, nil
	}
	var conns []Connection
	for _, f := range strings.Split(c, ",") {
		kv := strings.Split(f, "=")
		if len(kv) != 2 {
			return nil, parseError(c, "expected pin=wire in "+strconv.Quote(strings.TrimSpace(f)))
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if k == "" || v == "" {
			return nil, parseError(c, "invalid pin mapping "+k+"="+v)
		}
		conns = append(conns, Connection{PP: k, CP: v})
	}
	return conns, nil
}

func parseError(in string, msg string) error {
	return errors.Errorf("in %q: %s", in, msg)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// expandRange expands a bus range like "a[0..3]" to its individual pin names.
// Other names are returned as is.
func expandRange(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	j := strings.IndexByte(n, ']')
	if j < 0 {
		return nil, errors.New("no terminating ] in " + name)
	}
	n = n[:j]
	r := strings.Index(n, "..")
	if r < 0 {
		if _, err := strconv.Atoi(n); err != nil {
			return nil, errors.Wrap(err, "bad pin index in "+name)
		}
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:r])
	if err != nil {
		return nil, errors.Wrap(err, "bad range start in "+name)
	}
	end, err := strconv.Atoi(n[r+2:])
	if err != nil {
		return nil, errors.Wrap(err, "bad range end in "+name)
	}
	if end < start {
		return nil, errors.New("reversed bus range in " + name)
	}
	out := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, BusPinName(bus, i))
	}
	return out, nil
}

// busSize returns the number of pins in bus name of pins, or 0 if there is no
// such bus.
func busSize(pins []string, name string) int {
	n := 0
	for _, p := range pins {
		if p == BusPinName(name, n) {
			n++
		}
	}
	return n
}

func (p *PartSpec) hasPin(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

// wires expands p's connections into a map of part pin name to chip wire name.
func (p *Part) wires() (map[string]string, error) {
	r := make(map[string]string, len(p.Conns))
	for _, c := range p.Conns {
		ks, err := expandRange(c.PP)
		if err != nil {
			return nil, errors.Wrap(err, "expand part pin "+c.PP)
		}
		vs, err := expandRange(c.CP)
		if err != nil {
			return nil, errors.Wrap(err, "expand chip pin "+c.CP)
		}
		// whole bus
		if len(ks) == 1 && !p.hasPin(ks[0]) {
			n := busSize(p.Inputs, ks[0])
			if n == 0 {
				n = busSize(p.Outputs, ks[0])
			}
			if n > 0 {
				ks = ks[:0]
				for i := 0; i < n; i++ {
					ks = append(ks, BusPinName(c.PP, i))
				}
				if len(vs) == 1 && !strings.ContainsRune(vs[0], '[') && vs[0] != False && vs[0] != True {
					vs = vs[:0]
					for i := 0; i < n; i++ {
						vs = append(vs, BusPinName(c.CP, i))
					}
				}
			}
		}
		switch {
		case len(ks) == len(vs):
		case len(vs) == 1:
			// many to one
			for len(vs) < len(ks) {
				vs = append(vs, vs[0])
			}
		default:
			return nil, errors.New("pin count mismatch in pin mapping: " + c.PP + "=" + c.CP)
		}
		for i, k := range ks {
			if !p.hasPin(k) {
				return nil, errors.New("invalid pin name " + k + " for part " + p.Name)
			}
			if _, ok := r[k]; ok {
				return nil, errors.New("pin " + k + " of part " + p.Name + " connected more than once")
			}
			r[k] = vs[i]
		}
	}
	return r, nil
}
