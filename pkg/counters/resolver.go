package counters

import (
	"net"
	"sync"
)

// StaticResolver always names the same interface. The empty string resolves
// to nothing.
type StaticResolver string

// PrimaryInterface implements core.InterfaceResolver.
func (s StaticResolver) PrimaryInterface() (string, bool) {
	return string(s), s != ""
}

// Endpoint is anything with a local socket address: net.Conn, net.PacketConn,
// net.Listener-accepted connections.
type Endpoint interface {
	LocalAddr() net.Addr
}

// ConnResolver names the interface owning the local address of the first
// tracked transport connection.
type ConnResolver struct {
	mu    sync.Mutex
	conns []Endpoint

	// interfaces lists the host interfaces; replaced in tests.
	interfaces func() ([]net.Interface, error)
}

// NewConnResolver creates a resolver with no tracked connections.
func NewConnResolver() *ConnResolver {
	return &ConnResolver{interfaces: net.Interfaces}
}

// Track appends c to the connection list. The first tracked connection is primary.
func (r *ConnResolver) Track(c Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = append(r.conns, c)
}

// Untrack removes c; the next tracked connection, if any, becomes primary.
func (r *ConnResolver) Untrack(c Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.conns {
		if x == c {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return
		}
	}
}

// PrimaryInterface implements core.InterfaceResolver.
func (r *ConnResolver) PrimaryInterface() (string, bool) {
	r.mu.Lock()
	var first Endpoint
	if len(r.conns) > 0 {
		first = r.conns[0]
	}
	r.mu.Unlock()

	if first == nil {
		return "", false
	}
	ip := addrIP(first.LocalAddr())
	if ip == nil || ip.IsUnspecified() {
		return "", false
	}
	return r.interfaceFor(ip)
}

func (r *ConnResolver) interfaceFor(ip net.IP) (string, bool) {
	ifaces, err := r.interfaces()
	if err != nil {
		return "", false
	}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipn, ok := a.(*net.IPNet); ok && ipn.IP.Equal(ip) {
				return iface.Name, true
			}
		}
	}
	return "", false
}

func addrIP(a net.Addr) net.IP {
	switch v := a.(type) {
	case *net.UDPAddr:
		return v.IP
	case *net.TCPAddr:
		return v.IP
	case *net.IPAddr:
		return v.IP
	}
	return nil
}
