package counters

import (
	"fmt"
	"sync"

	"github.com/irctrakz/connstats/pkg/core"
)

type mockKey struct {
	iface string
	dir   core.Direction
}

// MockSource is a scripted core.CounterSource for tests and dry runs.
// Each (interface, direction) pair has a queue of values; reads pop the queue
// until one value is left, which then repeats.
type MockSource struct {
	mu     sync.Mutex
	values map[mockKey][]uint64
	err    error
	reads  int
}

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{values: make(map[mockKey][]uint64)}
}

// Set replaces the scripted values for iface/dir.
func (m *MockSource) Set(iface string, dir core.Direction, values ...uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[mockKey{iface, dir}] = append([]uint64(nil), values...)
}

// Push appends values to the iface/dir queue.
func (m *MockSource) Push(iface string, dir core.Direction, values ...uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := mockKey{iface, dir}
	m.values[k] = append(m.values[k], values...)
}

// Fail makes every subsequent read return err; nil clears it.
func (m *MockSource) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Reads returns how many reads were served, failed ones included.
func (m *MockSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// ReadCounter implements core.CounterSource.
func (m *MockSource) ReadCounter(iface string, dir core.Direction) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.err != nil {
		return 0, m.err
	}
	k := mockKey{iface, dir}
	q := m.values[k]
	if len(q) == 0 {
		return 0, fmt.Errorf("mock: no %s counter for %s", dir, iface)
	}
	v := q[0]
	if len(q) > 1 {
		m.values[k] = q[1:]
	}
	return v, nil
}
