// Package wireguard runs the optional WireGuard transport and reads its
// transfer counters through the UAPI state.
package wireguard

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.zx2c4.com/wireguard/conn"
	wgdev "golang.zx2c4.com/wireguard/device"
	"golang.zx2c4.com/wireguard/tun"

	"github.com/irctrakz/connstats/pkg/logging"
)

// DeviceHandle is a minimal lifecycle for the WG device.
type DeviceHandle interface {
	// Name returns the TUN interface name.
	Name() string
	// IpcGet returns the current device state in UAPI text form.
	IpcGet() (string, error)
	Close() error
}

type wgHandle struct {
	name string
	dev  *wgdev.Device
}

func (h *wgHandle) Name() string { return h.name }

func (h *wgHandle) Close() error {
	if h.dev != nil {
		h.dev.Close()
	}
	return nil
}

func (h *wgHandle) IpcGet() (string, error) {
	if h == nil || h.dev == nil {
		return "", fmt.Errorf("nil device")
	}
	return h.dev.IpcGet()
}

// CreateTUN opens a kernel TUN device for cfg.
func CreateTUN(cfg DeviceConfig) (tun.Device, error) {
	return tun.CreateTUN(cfg.Interface, cfg.MTU)
}

// StartDevice brings up a wireguard-go device on tdev and applies cfg via IpcSet.
func StartDevice(cfg DeviceConfig, tdev tun.Device) (DeviceHandle, error) {
	if tdev == nil {
		return nil, fmt.Errorf("nil tun")
	}
	name, err := tdev.Name()
	if err != nil {
		return nil, fmt.Errorf("tun name: %w", err)
	}

	wgLevel := wgdev.LogLevelError
	if logging.IsDebug() {
		wgLevel = wgdev.LogLevelVerbose
	}
	dev := wgdev.NewDevice(tdev, conn.NewDefaultBind(), wgdev.NewLogger(wgLevel, "[wg] "))

	uapi, keyHex, err := buildUAPI(cfg)
	if err != nil {
		dev.Close()
		return nil, err
	}
	if logging.IsDebug() {
		masked := strings.Repeat("*", len(keyHex)-6) + keyHex[len(keyHex)-6:]
		logging.Debugf("WG UAPI IpcSet applying:\n%s", strings.ReplaceAll(uapi, keyHex, masked))
	}
	if err := dev.IpcSet(uapi); err != nil {
		dev.Close()
		return nil, fmt.Errorf("IpcSet: %w", err)
	}
	if err := dev.Up(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("device up: %w", err)
	}
	logging.Infof("wireguard device %s up on UDP :%d", name, cfg.ListenPort)

	return &wgHandle{name: name, dev: dev}, nil
}

// buildUAPI renders cfg as a UAPI set operation; keys are sent hex-encoded.
func buildUAPI(cfg DeviceConfig) (uapi, keyHex string, err error) {
	rawPriv, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cfg.PrivateKey))
	if err != nil || len(rawPriv) != 32 {
		return "", "", fmt.Errorf("invalid wireguard private key: must be base64 of 32 bytes")
	}
	keyHex = hex.EncodeToString(rawPriv)

	var b strings.Builder
	fmt.Fprintf(&b, "private_key=%s\nlisten_port=%d\nreplace_peers=true\n", keyHex, cfg.ListenPort)
	for _, p := range cfg.Peers {
		pub := strings.TrimSpace(p.PublicKey)
		if raw, err := base64.StdEncoding.DecodeString(pub); err == nil && len(raw) == 32 {
			pub = hex.EncodeToString(raw)
		}
		fmt.Fprintf(&b, "public_key=%s\n", pub)
		for _, ip := range p.AllowedIPs {
			fmt.Fprintf(&b, "allowed_ip=%s\n", ip)
		}
		if p.Endpoint != "" {
			fmt.Fprintf(&b, "endpoint=%s\n", p.Endpoint)
		}
		if p.PersistentKeepaliveSec > 0 {
			fmt.Fprintf(&b, "persistent_keepalive_interval=%d\n", p.PersistentKeepaliveSec)
		}
	}
	return b.String(), keyHex, nil
}
