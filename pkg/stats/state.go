// Package stats holds the collection window state of the connectivity
// statistics object and the sampler that feeds it raw interface counters.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/irctrakz/connstats/pkg/core"
)

var (
	// ErrNotCollecting is returned by Stop when no collection window is open.
	ErrNotCollecting = errors.New("not collecting")

	// ErrInvalidArgument is returned for a collection period outside [0, MaxUint32].
	ErrInvalidArgument = errors.New("invalid argument")
)

// Counters yields the current cumulative byte count for one direction of the
// measured interface.
type Counters interface {
	Sample(dir core.Direction) (uint64, error)
}

// State is the collection window of a single object instance.
//
// While idle, baselineTx/baselineRx hold the delta of the last finished window
// (zero if none). While collecting they hold the counter values read at Start.
// The zero value is an idle, never-started state.
type State struct {
	baselineTx uint64
	baselineRx uint64
	collecting bool
	period     uint32
}

// Reset discards any open window and zeroes every field.
func (s *State) Reset() {
	*s = State{}
}

// Collecting reports whether a window is open.
func (s *State) Collecting() bool {
	return s.collecting
}

// CollectionPeriod returns the stored period in seconds. It has no scheduling effect.
func (s *State) CollectionPeriod() uint32 {
	return s.period
}

// Start snapshots the current counters and opens a window. Calling Start on an
// open window re-arms it: the bytes counted so far are dropped unreported.
func (s *State) Start(c Counters) error {
	tx, rx, err := sampleBoth(c)
	if err != nil {
		return err
	}
	s.baselineTx = tx
	s.baselineRx = rx
	s.collecting = true
	return nil
}

// Stop closes the window and keeps its delta for later reads.
func (s *State) Stop(c Counters) error {
	if !s.collecting {
		return ErrNotCollecting
	}
	tx, rx, err := sampleBoth(c)
	if err != nil {
		return err
	}
	// Unsigned subtraction; a counter reset inside the window wraps around.
	s.baselineTx = tx - s.baselineTx
	s.baselineRx = rx - s.baselineRx
	s.collecting = false
	return nil
}

// TxDelta returns bytes transmitted in the current or last window.
func (s *State) TxDelta(c Counters) (uint64, error) {
	return s.delta(c, core.Tx, s.baselineTx)
}

// RxDelta returns bytes received in the current or last window.
func (s *State) RxDelta(c Counters) (uint64, error) {
	return s.delta(c, core.Rx, s.baselineRx)
}

func (s *State) delta(c Counters, dir core.Direction, baseline uint64) (uint64, error) {
	if !s.collecting {
		return baseline, nil
	}
	cur, err := c.Sample(dir)
	if err != nil {
		return 0, err
	}
	return cur - baseline, nil
}

// SetCollectionPeriod stores v seconds.
func (s *State) SetCollectionPeriod(v int64) error {
	if v < 0 || v > math.MaxUint32 {
		return fmt.Errorf("collection period %d: %w", v, ErrInvalidArgument)
	}
	s.period = uint32(v)
	return nil
}

// sampleBoth reads tx then rx so that a failure leaves the caller's state untouched.
func sampleBoth(c Counters) (tx, rx uint64, err error) {
	if tx, err = c.Sample(core.Tx); err != nil {
		return 0, 0, err
	}
	if rx, err = c.Sample(core.Rx); err != nil {
		return 0, 0, err
	}
	return tx, rx, nil
}
