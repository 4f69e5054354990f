package wireguard

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.zx2c4.com/wireguard/tun/tuntest"

	"github.com/irctrakz/connstats/pkg/core"
)

func testKey(seed byte) string {
	k := make([]byte, 32)
	for i := range k {
		k[i] = seed + byte(i)
	}
	return base64.StdEncoding.EncodeToString(k)
}

var testPrivateKey = testKey(1)

func TestBuildUAPI(t *testing.T) {
	cfg := DeviceConfig{
		ListenPort: 51820,
		PrivateKey: testPrivateKey,
		Peers: []PeerConfig{{
			PublicKey:              testKey(100),
			AllowedIPs:             []string{"10.0.0.0/24"},
			Endpoint:               "192.0.2.1:51820",
			PersistentKeepaliveSec: 25,
		}},
	}
	uapi, keyHex, err := buildUAPI(cfg)
	require.NoError(t, err)
	assert.Len(t, keyHex, 64)
	assert.Contains(t, uapi, "private_key="+keyHex+"\n")
	assert.Contains(t, uapi, "listen_port=51820\n")
	assert.Contains(t, uapi, "allowed_ip=10.0.0.0/24\n")
	assert.Contains(t, uapi, "endpoint=192.0.2.1:51820\n")
	assert.Contains(t, uapi, "persistent_keepalive_interval=25\n")

	cfg.PrivateKey = "short"
	_, _, err = buildUAPI(cfg)
	assert.Error(t, err)
}

func TestStartDevice_ChannelTUN(t *testing.T) {
	ctun := tuntest.NewChannelTUN()
	cfg := DeviceConfig{
		ListenPort: 0,
		PrivateKey: testPrivateKey,
		Peers: []PeerConfig{{
			PublicKey:  testKey(100),
			AllowedIPs: []string{"10.9.0.2/32"},
		}},
	}

	h, err := StartDevice(cfg, ctun.TUN())
	require.NoError(t, err)
	defer h.Close()

	name, _ := ctun.TUN().Name()
	assert.Equal(t, name, h.Name())

	state, err := h.IpcGet()
	require.NoError(t, err)
	peers := ParseTransfer(state)
	require.Len(t, peers, 1)

	src := NewSource(h, h.Name())
	tx, err := src.ReadCounter(h.Name(), core.Tx)
	require.NoError(t, err)
	assert.Zero(t, tx)
}

func TestStartDevice_NilTUN(t *testing.T) {
	_, err := StartDevice(DeviceConfig{PrivateKey: testPrivateKey}, nil)
	assert.Error(t, err)
}
