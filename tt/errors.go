// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import "strconv"

// A ConfigurationError reports an invalid clock or harness configuration, or
// a harness operation that is not allowed in the current state.
//
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Msg }

func configErrorf(msg string) error { return &ConfigurationError{Msg: msg} }

// An UnknownPinError reports a reference to a pin that the device does not
// have. Input is set when the reference required an input pin.
//
type UnknownPinError struct {
	Name  string
	Input bool
}

func (e *UnknownPinError) Error() string {
	if e.Input {
		return "no input pin named " + e.Name
	}
	return "no pin named " + e.Name
}

// An OutOfRangeError reports a value that does not fit in a pin.
//
type OutOfRangeError struct {
	Pin   Pin
	Value uint64
}

func (e *OutOfRangeError) Error() string {
	return "value " + strconv.FormatUint(e.Value, 10) + " out of range for " +
		strconv.Itoa(e.Pin.Width()) + " bits pin " + e.Pin.String()
}

// An AssertionFailure reports an output value that does not match the
// expected value at a checkpoint. It ends the run.
//
type AssertionFailure struct {
	Pin   Pin
	Cycle uint64
	Want  uint64
	Got   uint64
}

func (e *AssertionFailure) Error() string {
	return "assertion failed at cycle " + strconv.FormatUint(e.Cycle, 10) + ": " +
		e.Pin.String() + " = " + strconv.FormatUint(e.Got, 10) +
		", expected " + strconv.FormatUint(e.Want, 10)
}
