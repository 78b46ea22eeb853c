// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package scenario loads test benches written in YAML and runs them against a
// tt.Harness.
//
// A scenario looks like this:
//
//	name: delay
//	clock: {period: 20, unit: ns}
//	steps:
//	  - assign: {ena: 1, ui_in: 0, uio_in: 0}
//	  - reset: 10
//	  - assign: {ui_in: 128}
//	  - cycles: 1
//	  - expect: {uo_out: 0}
//
// Each step does exactly one thing. Pins in assign and expect steps are
// handled in pin order, not in the order they appear in the file.
//
package scenario

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/db47h/ttsim/tt"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of harness operations.
//
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Clock       Clock  `yaml:"clock"`
	Steps       []Step `yaml:"steps"`
}

// Clock configures the harness clock.
//
type Clock struct {
	Period int    `yaml:"period"`
	Unit   string `yaml:"unit"`
}

// Step is a single scenario step. Exactly one field must be set.
//
type Step struct {
	Log    string            `yaml:"log,omitempty"`
	Assign map[string]uint64 `yaml:"assign,omitempty"`
	Cycles *int              `yaml:"cycles,omitempty"`
	Reset  *int              `yaml:"reset,omitempty"`
	Expect map[string]uint64 `yaml:"expect,omitempty"`
}

func (s *Step) kinds() int {
	n := 0
	for _, set := range []bool{s.Log != "", s.Assign != nil, s.Cycles != nil, s.Reset != nil, s.Expect != nil} {
		if set {
			n++
		}
	}
	return n
}

// Load reads a scenario from a YAML file.
//
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

// Parse reads a scenario from r. Unknown fields are rejected.
//
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &s, nil
}

// Validate checks that the scenario can be run.
//
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Clock.Period <= 0 {
		return errors.Errorf("clock: invalid period %d", s.Clock.Period)
	}
	if _, err := tt.ParseUnit(s.Clock.Unit); err != nil {
		return errors.Wrap(err, "clock")
	}
	if len(s.Steps) == 0 {
		return errors.New("steps list is required and must be non-empty")
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		if k := st.kinds(); k != 1 {
			return errors.Errorf("steps[%d]: expected exactly one action, got %d", i, k)
		}
		switch {
		case st.Cycles != nil && *st.Cycles < 0:
			return errors.Errorf("steps[%d]: negative cycle count %d", i, *st.Cycles)
		case st.Reset != nil && *st.Reset < 0:
			return errors.Errorf("steps[%d]: negative reset cycle count %d", i, *st.Reset)
		}
		if _, err := pinValues(st.Assign, true); err != nil {
			return errors.Wrapf(err, "steps[%d].assign", i)
		}
		if _, err := pinValues(st.Expect, false); err != nil {
			return errors.Wrapf(err, "steps[%d].expect", i)
		}
	}
	return nil
}

type pinValue struct {
	pin tt.Pin
	v   uint64
}

// pinValues resolves pin names and returns the values sorted in pin order.
//
func pinValues(m map[string]uint64, inputs bool) ([]pinValue, error) {
	pvs := make([]pinValue, 0, len(m))
	for name, v := range m {
		p, err := tt.PinByName(name)
		if err != nil {
			return nil, err
		}
		if inputs && (p.Dir() != tt.Input || p == tt.Clk) {
			return nil, &tt.UnknownPinError{Name: name, Input: true}
		}
		if v > p.Max() {
			return nil, &tt.OutOfRangeError{Pin: p, Value: v}
		}
		pvs = append(pvs, pinValue{p, v})
	}
	sort.Slice(pvs, func(i, j int) bool { return pvs[i].pin < pvs[j].pin })
	return pvs, nil
}
