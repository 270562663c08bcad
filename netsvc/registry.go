package netsvc

import (
	"net"
	"sync"
	"time"
)

// monitorLease is how long a registered monitor keeps receiving control
// messages without re-sending its registration request.
const monitorLease = 10 * time.Second

// MonitorRegistry tracks the monitors currently entitled to receive the
// true (undelayed) game, keyed by source address. A monitor's entry expires
// monitorLease after its last registration request, so a monitor that
// disappears stops being sent to without explicit deregistration.
type MonitorRegistry struct {
	mu      sync.Mutex
	leases  map[string]monitorEntry
	nowFunc func() time.Time
}

type monitorEntry struct {
	addr    *net.UDPAddr
	expires time.Time
}

// NewMonitorRegistry returns an empty MonitorRegistry.
func NewMonitorRegistry() *MonitorRegistry {
	return &MonitorRegistry{
		leases:  make(map[string]monitorEntry),
		nowFunc: time.Now,
	}
}

// Register (re-)grants addr a lease, extending it if already registered.
func (r *MonitorRegistry) Register(addr *net.UDPAddr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leases[addr.String()] = monitorEntry{
		addr:    addr,
		expires: r.nowFunc().Add(monitorLease),
	}
}

// Active returns the addresses of every monitor whose lease has not
// expired, pruning expired entries as a side effect.
func (r *MonitorRegistry) Active() []*net.UDPAddr {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	var out []*net.UDPAddr
	for key, entry := range r.leases {
		if now.After(entry.expires) {
			delete(r.leases, key)
			continue
		}
		out = append(out, entry.addr)
	}
	return out
}

// DeregisterHost immediately tears down every lease belonging to ip,
// regardless of source port. A host that turns out to be a player (it has
// sent a status message) must stop receiving the true game the instant
// that's discovered, rather than waiting out its lease.
func (r *MonitorRegistry) DeregisterHost(ip net.IP) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, entry := range r.leases {
		if entry.addr.IP.Equal(ip) {
			delete(r.leases, key)
		}
	}
}

// PlayerHosts remembers every host address that has ever sent a status
// message, so a MonitorRequest from that host can be recognized as coming
// from a player and ignored (spec.md §4.5's "if the host has ever sent a
// status message it is 'a player'").
type PlayerHosts struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewPlayerHosts returns an empty PlayerHosts set.
func NewPlayerHosts() *PlayerHosts {
	return &PlayerHosts{seen: make(map[string]bool)}
}

// Mark records ip as belonging to a player. Once marked, a host is a player
// forever; spec.md has no provision for a player host reverting.
func (p *PlayerHosts) Mark(ip net.IP) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen[ip.String()] = true
}

// IsPlayer reports whether ip has ever sent a status message.
func (p *PlayerHosts) IsPlayer(ip net.IP) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen[ip.String()]
}
