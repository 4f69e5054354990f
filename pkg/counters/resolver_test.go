package counters

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

type fixedAddr struct{ addr net.Addr }

func (f fixedAddr) LocalAddr() net.Addr { return f.addr }

func TestStaticResolver(t *testing.T) {
	name, ok := StaticResolver("eth0").PrimaryInterface()
	assert.True(t, ok)
	assert.Equal(t, "eth0", name)

	_, ok = StaticResolver("").PrimaryInterface()
	assert.False(t, ok)
}

func TestConnResolver_NoConnection(t *testing.T) {
	r := NewConnResolver()
	_, ok := r.PrimaryInterface()
	assert.False(t, ok)
}

func TestConnResolver_Loopback(t *testing.T) {
	lo, err := nettest.LoopbackInterface()
	if err != nil {
		t.Skipf("no loopback interface: %v", err)
	}

	pc, err := nettest.NewLocalPacketListener("udp")
	require.NoError(t, err)
	defer pc.Close()

	r := NewConnResolver()
	r.Track(pc)

	name, ok := r.PrimaryInterface()
	require.True(t, ok)
	assert.Equal(t, lo.Name, name)

	r.Untrack(pc)
	_, ok = r.PrimaryInterface()
	assert.False(t, ok)
}

func TestConnResolver_FirstTrackedIsPrimary(t *testing.T) {
	r := NewConnResolver()
	r.interfaces = func() ([]net.Interface, error) {
		return nil, errors.New("interfaces unavailable")
	}

	unspecified := fixedAddr{&net.UDPAddr{IP: net.IPv4zero, Port: 5683}}
	r.Track(unspecified)
	_, ok := r.PrimaryInterface()
	assert.False(t, ok, "unspecified local address cannot name an interface")

	r.Track(fixedAddr{&net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 1}})
	_, ok = r.PrimaryInterface()
	assert.False(t, ok, "first tracked connection stays primary")

	r.Untrack(unspecified)
	_, ok = r.PrimaryInterface()
	assert.False(t, ok, "interface listing failure resolves to nothing")
}
