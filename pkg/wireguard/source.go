package wireguard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/irctrakz/connstats/pkg/core"
)

// PeerTransfer is the transfer accounting of one peer in UAPI state.
type PeerTransfer struct {
	PublicKey         string
	Endpoint          string
	LastHandshakeUnix int64
	KeepaliveSec      uint64
	RxBytes           uint64
	TxBytes           uint64
}

// ParseTransfer extracts per-peer transfer counters from UAPI get output.
func ParseTransfer(state string) []PeerTransfer {
	var peers []PeerTransfer
	var cur *PeerTransfer

	for _, line := range strings.Split(state, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		if key == "public_key" {
			peers = append(peers, PeerTransfer{PublicKey: val})
			cur = &peers[len(peers)-1]
			continue
		}
		if cur == nil {
			continue
		}
		switch key {
		case "endpoint":
			cur.Endpoint = val
		case "last_handshake_time_sec":
			cur.LastHandshakeUnix, _ = strconv.ParseInt(val, 10, 64)
		case "persistent_keepalive_interval":
			cur.KeepaliveSec, _ = strconv.ParseUint(val, 10, 64)
		case "rx_bytes":
			cur.RxBytes, _ = strconv.ParseUint(val, 10, 64)
		case "tx_bytes":
			cur.TxBytes, _ = strconv.ParseUint(val, 10, 64)
		}
	}
	return peers
}

// StateGetter is the part of a device the Source needs.
type StateGetter interface {
	IpcGet() (string, error)
}

// Source is a core.CounterSource summing transfer counters over all peers of
// a WireGuard device. Only the device's own interface name is served.
type Source struct {
	dev  StateGetter
	name string
}

// NewSource reads counters from dev, answering for interface name.
func NewSource(dev StateGetter, name string) *Source {
	return &Source{dev: dev, name: name}
}

// ReadCounter implements core.CounterSource.
func (s *Source) ReadCounter(iface string, dir core.Direction) (uint64, error) {
	if s.name != "" && iface != s.name {
		return 0, fmt.Errorf("wireguard source serves %s, not %s", s.name, iface)
	}
	state, err := s.dev.IpcGet()
	if err != nil {
		return 0, fmt.Errorf("wireguard state: %w", err)
	}
	var total uint64
	for _, p := range ParseTransfer(state) {
		if dir == core.Tx {
			total += p.TxBytes
		} else {
			total += p.RxBytes
		}
	}
	return total, nil
}
