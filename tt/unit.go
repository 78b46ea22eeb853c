// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

// A Unit is a unit of simulated time, expressed in picoseconds.
//
type Unit uint64

// Time units.
//
const (
	Picosecond  Unit = 1
	Nanosecond  Unit = 1000 * Picosecond
	Microsecond Unit = 1000 * Nanosecond
	Millisecond Unit = 1000 * Microsecond
)

var units = []struct {
	u    Unit
	name string
}{
	{Picosecond, "ps"},
	{Nanosecond, "ns"},
	{Microsecond, "us"},
	{Millisecond, "ms"},
}

// ParseUnit returns the unit for one of "ps", "ns", "us" or "ms".
//
func ParseUnit(s string) (Unit, error) {
	for _, u := range units {
		if u.name == s {
			return u.u, nil
		}
	}
	return 0, configErrorf("unknown time unit " + s)
}

func (u Unit) valid() bool {
	for _, v := range units {
		if v.u == u {
			return true
		}
	}
	return false
}

func (u Unit) String() string {
	for _, v := range units {
		if v.u == u {
			return v.name
		}
	}
	return "invalid unit"
}
