package stats

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/irctrakz/connstats/pkg/core"
	"github.com/irctrakz/connstats/pkg/logging"
)

// Fallback decides what a failed counter read turns into.
type Fallback int

const (
	// FallbackZero reports an unreadable counter as 0 bytes. An unreachable
	// interface and an idle one are indistinguishable under this policy.
	FallbackZero Fallback = iota
	// FallbackStrict returns the read error to the caller.
	FallbackStrict
)

func (f Fallback) String() string {
	if f == FallbackStrict {
		return "strict"
	}
	return "zero"
}

// Sampler reads the counters of whatever interface the resolver currently
// names. The interface is resolved on every sample.
type Sampler struct {
	source   core.CounterSource
	resolver core.InterfaceResolver
	fallback Fallback
	log      *logrus.Entry
}

// NewSampler binds a counter source to an interface resolver.
func NewSampler(source core.CounterSource, resolver core.InterfaceResolver, fallback Fallback) *Sampler {
	return &Sampler{
		source:   source,
		resolver: resolver,
		fallback: fallback,
		log:      logging.For("sampler"),
	}
}

// Fallback returns the sampler's failure policy.
func (s *Sampler) Fallback() Fallback {
	return s.fallback
}

// Sample implements Counters.
func (s *Sampler) Sample(dir core.Direction) (uint64, error) {
	v, err := s.read(dir)
	if err == nil {
		return v, nil
	}
	if s.fallback == FallbackStrict {
		return 0, err
	}
	s.log.WithField("dir", dir.String()).Debugf("counter unavailable, using 0: %v", err)
	return 0, nil
}

func (s *Sampler) read(dir core.Direction) (uint64, error) {
	if s.resolver == nil || s.source == nil {
		return 0, core.ErrNoInterface
	}
	iface, ok := s.resolver.PrimaryInterface()
	if !ok {
		return 0, core.ErrNoInterface
	}
	v, err := s.source.ReadCounter(iface, dir)
	if err != nil {
		return 0, fmt.Errorf("read %s_bytes of %s: %w", dir, iface, err)
	}
	return v, nil
}
