// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

// Constant wire names. Part inputs can be connected to them, part outputs
// cannot.
//
const (
	True  = "true"
	False = "false"
	GND   = False
)

const (
	cstFalse = iota
	cstTrue
	cstCount
)

// A Socket maps a part's pin names to pin numbers in a circuit.
//
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		m: map[string]int{False: cstFalse, True: cstTrue},
		c: c,
	}
}

// Mount mounts the given part into the socket's namespace and returns its
// components. Wires of s are allocated as needed. Unconnected inputs are tied
// to false and unconnected outputs get a private wire.
//
func (s *Socket) Mount(p Part) []Component {
	ws, err := p.wires()
	if err != nil {
		panic(err)
	}
	sub := newSocket(s.c)
	for _, in := range p.Inputs {
		if w, ok := ws[in]; ok {
			sub.m[in] = s.PinOrNew(w)
		} else {
			sub.m[in] = cstFalse
		}
	}
	for _, out := range p.Outputs {
		if w, ok := ws[out]; ok {
			sub.m[out] = s.PinOrNew(w)
		} else {
			sub.m[out] = s.c.allocPin()
		}
	}
	return p.Mount(sub)
}

// Pin returns the pin number allocated to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// PinOrNew returns the pin number allocated to the given pin name.
// If no such pin exists a new one is allocated.
//
func (s *Socket) PinOrNew(name string) int {
	n, ok := s.m[name]
	if !ok {
		n = s.c.allocPin()
		s.m[name] = n
	}
	return n
}

// Bus returns the pin numbers allocated to the given bus name, lsb first.
// It panics if any of the bits pins does not exist.
//
func (s *Socket) Bus(name string, bits int) []int {
	out := make([]int, bits)
	for i := range out {
		out[i] = s.Pin(BusPinName(name, i))
	}
	return out
}
