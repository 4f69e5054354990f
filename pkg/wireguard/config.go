package wireguard

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PeerConfig holds a single WireGuard peer configuration.
type PeerConfig struct {
	PublicKey              string   `json:"publicKey" yaml:"publicKey"`   // base64
	AllowedIPs             []string `json:"allowedIPs" yaml:"allowedIPs"` // CIDRs
	Endpoint               string   `json:"endpoint" yaml:"endpoint"`      // host:port
	PersistentKeepaliveSec int      `json:"persistentKeepalive" yaml:"persistentKeepalive"`
}

// DeviceConfig holds the configuration of the WireGuard transport device.
type DeviceConfig struct {
	Interface  string       `json:"interface" yaml:"interface"`
	ListenPort int          `json:"listenPort" yaml:"listenPort"`
	PrivateKey string       `json:"privateKey" yaml:"privateKey"` // base64
	MTU        int          `json:"mtu" yaml:"mtu"`
	Peers      []PeerConfig `json:"peers,omitempty" yaml:"peers,omitempty"`
}

// DefaultDeviceConfig returns the defaults used when no overrides are given.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Interface:  "wg0",
		ListenPort: 51820,
		MTU:        1420,
	}
}

// LoadFromEnv overrides c from environment variables.
//
// Optional:
//
//	WG_INTERFACE, WG_PRIVATE_KEY (base64), WG_LISTEN_PORT, WG_MTU,
//	WG_PEERS (comma-separated peer indices, e.g., "0,1")
//
// For each index i in WG_PEERS, read:
//
//	WG_PEER_i_PUBLIC_KEY
//	WG_PEER_i_ALLOWED_IPS (comma-separated CIDRs)
//	WG_PEER_i_ENDPOINT (host:port)
//	WG_PEER_i_KEEPALIVE (seconds, optional)
func (c *DeviceConfig) LoadFromEnv() {
	if v := strings.TrimSpace(os.Getenv("WG_INTERFACE")); v != "" {
		c.Interface = v
	}
	if v := strings.TrimSpace(os.Getenv("WG_PRIVATE_KEY")); v != "" {
		c.PrivateKey = v
	}
	if v := os.Getenv("WG_LISTEN_PORT"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			c.ListenPort = x
		}
	}
	if v := os.Getenv("WG_MTU"); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x > 0 {
			c.MTU = x
		}
	}

	idxs := strings.TrimSpace(os.Getenv("WG_PEERS"))
	if idxs == "" {
		return
	}
	var peers []PeerConfig
	for _, i := range splitCSV(idxs) {
		p := PeerConfig{}
		p.PublicKey = strings.TrimSpace(os.Getenv("WG_PEER_" + i + "_PUBLIC_KEY"))
		if allowed := strings.TrimSpace(os.Getenv("WG_PEER_" + i + "_ALLOWED_IPS")); allowed != "" {
			p.AllowedIPs = splitCSV(allowed)
		}
		p.Endpoint = strings.TrimSpace(os.Getenv("WG_PEER_" + i + "_ENDPOINT"))
		if ka := strings.TrimSpace(os.Getenv("WG_PEER_" + i + "_KEEPALIVE")); ka != "" {
			if x, err := strconv.Atoi(ka); err == nil {
				p.PersistentKeepaliveSec = x
			}
		}
		if p.PublicKey != "" {
			peers = append(peers, p)
		}
	}
	c.Peers = peers
}

// Validate checks the fields StartDevice depends on.
func (c *DeviceConfig) Validate() error {
	if c.Interface == "" {
		return fmt.Errorf("wireguard interface name cannot be empty")
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("wireguard private key is required")
	}
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid wireguard listen port: %d", c.ListenPort)
	}
	for i, p := range c.Peers {
		if p.PublicKey == "" {
			return fmt.Errorf("wireguard peer %d: public key is required", i)
		}
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
