package counters

import (
	"errors"

	"github.com/irctrakz/connstats/pkg/core"
)

// Chain asks each source in turn and returns the first successful read.
type Chain []core.CounterSource

// ReadCounter implements core.CounterSource. When every source fails the
// errors are joined.
func (c Chain) ReadCounter(iface string, dir core.Direction) (uint64, error) {
	if len(c) == 0 {
		return 0, errors.New("no counter sources configured")
	}
	var errs []error
	for _, src := range c {
		v, err := src.ReadCounter(iface, dir)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	return 0, errors.Join(errs...)
}
