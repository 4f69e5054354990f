package wireguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeHandshakes(t *testing.T) {
	now := time.Unix(1700000100, 0)
	peers := []PeerTransfer{
		{PublicKey: "a", LastHandshakeUnix: 1700000090},                   // 10s, fresh
		{PublicKey: "b", LastHandshakeUnix: 1700000000},                   // 100s, stale at 60s
		{PublicKey: "c", LastHandshakeUnix: 1700000000, KeepaliveSec: 50}, // 100s < 150s, fresh
		{PublicKey: "d"}, // never
	}

	s := SummarizeHandshakes(peers, now)
	assert.Equal(t, HandshakeSummary{
		Peers:     4,
		Fresh:     2,
		Stale:     2,
		OldestSec: 100,
		NewestSec: 10,
	}, s)
}

func TestSummarizeHandshakes_FromState(t *testing.T) {
	peers := ParseTransfer(uapiSample)
	s := SummarizeHandshakes(peers, time.Unix(1700000030, 0))
	assert.Equal(t, uint64(2), s.Peers)
	assert.Equal(t, uint64(1), s.Fresh)
	assert.Equal(t, uint64(30), s.OldestSec)
	assert.Equal(t, uint64(25), peers[0].KeepaliveSec)
}

func TestSummarizeHandshakes_JustNow(t *testing.T) {
	now := time.Unix(1700000100, 0)
	peers := []PeerTransfer{
		{PublicKey: "a", LastHandshakeUnix: 1700000100},
		{PublicKey: "b", LastHandshakeUnix: 1700000070},
	}

	s := SummarizeHandshakes(peers, now)
	assert.Equal(t, uint64(0), s.NewestSec)
	assert.Equal(t, uint64(30), s.OldestSec)
	assert.Equal(t, uint64(2), s.Fresh)

	// Order does not matter.
	s = SummarizeHandshakes([]PeerTransfer{peers[1], peers[0]}, now)
	assert.Equal(t, uint64(0), s.NewestSec)
	assert.Equal(t, uint64(30), s.OldestSec)
}
