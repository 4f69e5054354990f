package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irctrakz/connstats/pkg/core"
	"github.com/irctrakz/connstats/pkg/counters"
)

func TestSampler_ReadsResolvedInterface(t *testing.T) {
	src := counters.NewMockSource()
	src.Set("eth0", core.Tx, 4096)
	src.Set("eth0", core.Rx, 2048)

	s := NewSampler(src, counters.StaticResolver("eth0"), FallbackStrict)

	tx, err := s.Sample(core.Tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), tx)
	rx, err := s.Sample(core.Rx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2048), rx)
}

func TestSampler_FallbackZero(t *testing.T) {
	src := counters.NewMockSource()
	src.Fail(errors.New("permission denied"))

	s := NewSampler(src, counters.StaticResolver("eth0"), FallbackZero)
	v, err := s.Sample(core.Tx)
	require.NoError(t, err)
	assert.Zero(t, v)

	// No interface at all is also zero.
	s = NewSampler(src, counters.StaticResolver(""), FallbackZero)
	v, err = s.Sample(core.Rx)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Equal(t, "zero", s.Fallback().String())
}

func TestSampler_FallbackStrict(t *testing.T) {
	src := counters.NewMockSource()
	src.Fail(errors.New("permission denied"))

	s := NewSampler(src, counters.StaticResolver("eth0"), FallbackStrict)
	_, err := s.Sample(core.Tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tx_bytes of eth0")

	s = NewSampler(src, counters.NewConnResolver(), FallbackStrict)
	_, err = s.Sample(core.Tx)
	assert.ErrorIs(t, err, core.ErrNoInterface)
	assert.Equal(t, "strict", s.Fallback().String())
}

func TestSampler_DrivesState(t *testing.T) {
	src := counters.NewMockSource()
	src.Set("eth0", core.Tx, 1000, 1500, 1800)
	src.Set("eth0", core.Rx, 0, 0, 4096)

	s := NewSampler(src, counters.StaticResolver("eth0"), FallbackZero)
	var st State
	require.NoError(t, st.Start(s))
	require.NoError(t, st.Start(s))
	require.NoError(t, st.Stop(s))

	tx, _ := st.TxDelta(s)
	rx, _ := st.RxDelta(s)
	assert.Equal(t, uint64(300), tx)
	assert.Equal(t, uint64(4096), rx)
}
