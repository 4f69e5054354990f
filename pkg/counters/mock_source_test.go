package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irctrakz/connstats/pkg/core"
)

func TestMockSource_QueueThenRepeat(t *testing.T) {
	m := NewMockSource()
	m.Set("eth0", core.Tx, 1000, 1500)
	m.Push("eth0", core.Tx, 1800)

	for _, want := range []uint64{1000, 1500, 1800, 1800} {
		v, err := m.ReadCounter("eth0", core.Tx)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	_, err := m.ReadCounter("eth0", core.Rx)
	assert.Error(t, err)
	assert.Equal(t, 5, m.Reads())
}
