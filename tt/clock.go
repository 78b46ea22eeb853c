// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tt

import (
	"sync"

	"github.com/pkg/errors"
)

var errClockStopped = errors.New("clock stopped")

// A Clock drives the clk pin of a device from its own goroutine. The
// goroutine only runs while a harness waits for it to complete a cycle, so a
// run is fully deterministic.
//
type Clock struct {
	period uint64 // picoseconds
	edge   func(high bool) error

	req  chan struct{}
	done chan error
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func newClock(period uint64, edge func(high bool) error) *Clock {
	c := &Clock{
		period: period,
		edge:   edge,
		req:    make(chan struct{}),
		done:   make(chan error, 1),
		quit:   make(chan struct{}),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

func (c *Clock) run() {
	defer c.wg.Done()
	for {
		select {
		case <-c.quit:
			return
		case <-c.req:
			// a cycle starts with clk high: falling edge first.
			err := c.edge(false)
			if err == nil {
				err = c.edge(true)
			}
			c.done <- err
		}
	}
}

// cycle runs one full clock cycle and waits for its completion.
//
func (c *Clock) cycle() error {
	select {
	case c.req <- struct{}{}:
	case <-c.quit:
		return errClockStopped
	}
	return <-c.done
}

// Period returns the clock period in picoseconds.
//
func (c *Clock) Period() uint64 { return c.period }

// HalfPeriod returns the time between two edges in picoseconds.
//
func (c *Clock) HalfPeriod() uint64 { return c.period / 2 }

// Stop stops the clock goroutine and waits for it to terminate. It is safe to
// call Stop more than once.
//
func (c *Clock) Stop() {
	c.once.Do(func() {
		close(c.quit)
		c.wg.Wait()
	})
}
