// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Component is an updatable element of a circuit. It is called once per
// simulation step and must Set every output pin it drives.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for assigned pin numbers and return closures around these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "NOT",
//		Inputs:  In("in"),
//		Outputs: Out("out"),
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// Inputs is a list of input pin names.
//
type Inputs []string

// Outputs is a list of output pin names.
//
type Outputs []string

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Buses are expanded to individual pins, see IO.
	Inputs Inputs
	// Output pin names.
	Outputs Outputs
	// Mount function.
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, cs}
}

func (p *PartSpec) isInput(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

// busWidth returns the number of pins of the named bus in p.
//
func (p *PartSpec) busWidth(name string) int {
	n := 0
	for p.isInput(BusPinName(name, n)) || p.isOutput(BusPinName(name, n)) {
		n++
	}
	return n
}

// A NewPartFn is a function that takes a connection string and returns a new
// Part. See ParseConnections for the syntax of the connection string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// host chip or circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// wires resolves the part's connections into a map of individual part pins
// to wire names in the host.
//
func (p Part) wires() (map[string]string, error) {
	m := make(map[string]string)
	for _, c := range p.Conns {
		ks, whole, err := p.expandPin(c.PP)
		if err != nil {
			return nil, err
		}
		vs, err := expandWire(c.CP, len(ks), whole)
		if err != nil {
			return nil, errors.Wrap(err, p.Name)
		}
		switch {
		case len(ks) == len(vs):
		case len(vs) == 1:
			// many to one, only makes sense for inputs
			for len(vs) < len(ks) {
				vs = append(vs, vs[0])
			}
		default:
			return nil, errors.Errorf("pin count mismatch in connection %s=%s for part %s", c.PP, c.CP, p.Name)
		}
		for i, k := range ks {
			if _, ok := m[k]; ok {
				return nil, errors.Errorf("pin %s of part %s connected more than once", k, p.Name)
			}
			m[k] = vs[i]
		}
	}
	return m, nil
}

// expandPin expands a pin name of the part into individual pin names. Bus
// names without an index expand to the whole bus, in which case whole is true.
//
func (p Part) expandPin(name string) (pins []string, whole bool, err error) {
	ps, err := expandRange(name)
	if err != nil {
		return nil, false, errors.Wrap(err, p.Name)
	}
	if len(ps) > 1 || p.isInput(name) || p.isOutput(name) {
		for _, n := range ps {
			if !p.isInput(n) && !p.isOutput(n) {
				return nil, false, errors.New("invalid pin name " + n + " for part " + p.Name)
			}
		}
		return ps, false, nil
	}
	w := p.busWidth(name)
	if w == 0 {
		return nil, false, errors.New("invalid pin name " + name + " for part " + p.Name)
	}
	return busPins(name, w), true, nil
}

// expandWire expands a wire name. When a whole bus of n pins is connected to
// a plain wire name, that name is taken as a bus of the same width. Constants
// are never expanded.
//
func expandWire(name string, n int, whole bool) ([]string, error) {
	ws, err := expandRange(name)
	if err != nil {
		return nil, err
	}
	if !whole || len(ws) > 1 || name == True || name == False || strings.IndexByte(name, '[') >= 0 {
		return ws, nil
	}
	return busPins(name, n), nil
}

// BusPinName returns the name of the i-th pin in the named bus.
//
func BusPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

func busPins(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = BusPinName(name, i)
	}
	return out
}

// IO parses a pin list like "a, b, bus[4]" and returns the individual pin
// names, expanding buses:
//
//	IO("a, bus[2]") // returns []string{"a", "bus[0]", "bus[1]"}
//
func IO(spec string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			if strings.TrimSpace(spec) == "" {
				return nil, nil
			}
			return nil, errors.Errorf("in %q: empty pin name", spec)
		}
		i := strings.IndexByte(f, '[')
		if i < 0 {
			if !validName(f) {
				return nil, errors.Errorf("in %q: invalid pin name %q", spec, f)
			}
			out = append(out, f)
			continue
		}
		name := f[:i]
		if !validName(name) || !strings.HasSuffix(f, "]") {
			return nil, errors.Errorf("in %q: invalid bus specification %q", spec, f)
		}
		size, err := strconv.Atoi(f[i+1 : len(f)-1])
		if err != nil || size <= 0 {
			return nil, errors.Errorf("in %q: invalid bus size in %q", spec, f)
		}
		out = append(out, busPins(name, size)...)
	}
	return out, nil
}

// In returns the input pin list described by spec. It panics on malformed
// input.
//
func In(spec string) Inputs {
	ps, err := IO(spec)
	if err != nil {
		panic(err)
	}
	return ps
}

// Out returns the output pin list described by spec. It panics on malformed
// input.
//
func Out(spec string) Outputs {
	ps, err := IO(spec)
	if err != nil {
		panic(err)
	}
	return ps
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
