// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package scenario

import (
	"github.com/db47h/ttsim/tt"
	"github.com/pkg/errors"
)

// Result sums up a scenario run.
//
type Result struct {
	RunID  string
	Steps  int    // steps completed
	Checks int    // pin values checked
	Cycles uint64 // clock cycles run
	Time   uint64 // simulated time in picoseconds
}

// Run starts the harness clock and runs all steps of s in order. It stops at
// the first error, which is either an *tt.AssertionFailure or a harness
// error. The returned result is valid in both cases.
//
func Run(h *tt.Harness, s *Scenario) (*Result, error) {
	res := &Result{RunID: h.RunID().String()}
	defer func() {
		res.Cycles = h.Cycles()
		res.Time = h.Now()
	}()

	if err := s.Validate(); err != nil {
		return res, errors.Wrap(err, s.Name)
	}
	unit, _ := tt.ParseUnit(s.Clock.Unit)
	if _, err := h.StartClock(s.Clock.Period, unit); err != nil {
		return res, errors.Wrap(err, s.Name)
	}
	log := h.Logger().With("scenario", s.Name)
	log.Info("start", "steps", len(s.Steps))
	for i := range s.Steps {
		if err := runStep(h, &s.Steps[i], res); err != nil {
			return res, errors.Wrapf(err, "%s: steps[%d]", s.Name, i)
		}
		res.Steps++
	}
	log.Info("done", "cycles", h.Cycles(), "checks", res.Checks)
	return res, nil
}

func runStep(h *tt.Harness, st *Step, res *Result) error {
	switch {
	case st.Log != "":
		h.Logger().Info(st.Log, "cycle", h.Cycles())
	case st.Assign != nil:
		pvs, err := pinValues(st.Assign, true)
		if err != nil {
			return err
		}
		for _, pv := range pvs {
			if err = h.Assign(pv.pin, pv.v); err != nil {
				return err
			}
		}
	case st.Cycles != nil:
		return h.AdvanceCycles(*st.Cycles)
	case st.Reset != nil:
		return h.Reset(*st.Reset)
	case st.Expect != nil:
		pvs, err := pinValues(st.Expect, false)
		if err != nil {
			return err
		}
		for _, pv := range pvs {
			if err = h.Expect(pv.pin, pv.v); err != nil {
				return err
			}
			res.Checks++
		}
	}
	return nil
}
