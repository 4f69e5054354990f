package wireguard

import "time"

// defaultStaleAfter is the handshake age past which a peer without a
// keepalive is reported stale.
const defaultStaleAfter = 60 * time.Second

// HandshakeSummary condenses the handshake ages of all peers.
type HandshakeSummary struct {
	Peers     uint64 `json:"peers"`
	Fresh     uint64 `json:"fresh"`
	Stale     uint64 `json:"stale"`
	OldestSec uint64 `json:"oldest_sec"`
	NewestSec uint64 `json:"newest_sec"`
}

// SummarizeHandshakes reports how many peers handshook recently, as of now.
// A peer is fresh while its last handshake is younger than three keepalive
// intervals (at least 60s); peers that never handshook count as stale.
func SummarizeHandshakes(peers []PeerTransfer, now time.Time) HandshakeSummary {
	var s HandshakeSummary
	seen := false
	for _, p := range peers {
		s.Peers++
		if p.LastHandshakeUnix <= 0 {
			continue
		}
		age := now.Sub(time.Unix(p.LastHandshakeUnix, 0))
		if age < 0 {
			age = 0
		}
		sec := uint64(age / time.Second)
		if !seen || sec > s.OldestSec {
			s.OldestSec = sec
		}
		if !seen || sec < s.NewestSec {
			s.NewestSec = sec
		}
		seen = true

		thr := defaultStaleAfter
		if p.KeepaliveSec > 0 {
			thr = time.Duration(p.KeepaliveSec*3) * time.Second
			if thr < defaultStaleAfter {
				thr = defaultStaleAfter
			}
		}
		if age < thr {
			s.Fresh++
		}
	}
	s.Stale = s.Peers - s.Fresh
	return s
}
