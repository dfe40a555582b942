// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package inetaddr generates IPv4 addresses for socket arguments.
//
// Addresses are biased toward loopback, with occasional excursions into other
// interesting network classes. A generated address is remembered and handed out
// again for the next few requests, so that a run of related calls
// (bind, connect, multicast join) operates on the same address.
package inetaddr

import (
	"fmt"
	"net/netip"

	"github.com/sockgen/sockgen/pkg/rnd"
)

// Addresses are kept as uint32 with the first octet in the most significant byte.
const (
	Loopback  uint32 = 0x7f000001
	Multicast uint32 = 0xe0000000

	// ReuseWindow is how many subsequent requests get the previous address back.
	ReuseWindow = 5
)

const (
	slash8  = 0xffffff
	slash12 = 0xfffff
	slash16 = 0xffff
	slash24 = 0xff
	slash32 = 0
)

type Class struct {
	Name string
	Base string
	// HostMask covers the low bits that may be randomized.
	HostMask uint32
}

var Classes = []Class{
	{"any", "0.0.0.0", slash8},
	{"private-a", "10.0.0.0", slash8},
	{"loopback", "127.0.0.0", slash8},
	{"link-local", "169.254.0.0", slash16},
	{"private-b", "172.16.0.0", slash12},
	{"6to4-anycast", "192.88.99.0", slash24},
	{"private-c", "192.168.0.0", slash16},
	{"multicast", "224.0.0.0", slash24},
	{"broadcast", "255.255.255.255", slash32},
}

var classBases = func() []uint32 {
	bases := make([]uint32, len(Classes))
	for i, c := range Classes {
		bases[i] = mustParse(c.Base)
		if bases[i]&c.HostMask != 0 {
			panic(fmt.Sprintf("class %v: base %v has host bits set", c.Name, c.Base))
		}
		if c.HostMask&(c.HostMask+1) != 0 {
			panic(fmt.Sprintf("class %v: host mask %#x is not contiguous", c.Name, c.HostMask))
		}
	}
	return bases
}()

func mustParse(s string) uint32 {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		panic(fmt.Sprintf("bad address class base %q: %v", s, err))
	}
	return FromAddr(addr)
}

// BaseOf returns the parsed network prefix of the class.
func (c Class) BaseOf() uint32 {
	return mustParse(c.Base)
}

// Contains says if addr lies inside the class network.
func (c Class) Contains(addr uint32) bool {
	return addr&^c.HostMask == c.BaseOf()
}

// ClassOf returns the first class whose network contains addr.
func ClassOf(addr uint32) (Class, bool) {
	for i, c := range Classes {
		if addr&^c.HostMask == classBases[i] {
			return c, true
		}
	}
	return Class{}, false
}

// NewClassAddr draws an address from a uniformly selected class.
func NewClassAddr(r rnd.Source) uint32 {
	idx := r.Rand(len(Classes))
	addr := classBases[idx]
	if mask := Classes[idx].HostMask; mask != slash32 {
		addr |= uint32(r.Rand(int(mask)))
	}
	return addr
}

// Sampler remembers the last generated address.
// Each worker owns its own Sampler; it must not be shared without locking.
type Sampler struct {
	last     uint32
	lifetime int
}

// Sample returns the remembered address while it is still alive,
// otherwise generates a new one: loopback 9 times out of 10,
// an address from a random class otherwise.
func (s *Sampler) Sample(r rnd.Source) uint32 {
	if s.lifetime != 0 {
		s.lifetime--
		statReused.Add(1)
		return s.last
	}
	addr := Loopback
	if r.OneOf(10) {
		addr = NewClassAddr(r)
	}
	s.last = addr
	s.lifetime = ReuseWindow
	statFresh.Add(1)
	return addr
}

// Reset forgets the remembered address.
func (s *Sampler) Reset() {
	s.last = 0
	s.lifetime = 0
}

// Bytes returns addr in network byte order, ready to be copied into in_addr.
func Bytes(addr uint32) [4]byte {
	return [4]byte{byte(addr >> 24), byte(addr >> 16), byte(addr >> 8), byte(addr)}
}

func FromAddr(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func ToAddr(addr uint32) netip.Addr {
	return netip.AddrFrom4(Bytes(addr))
}

func String(addr uint32) string {
	return ToAddr(addr).String()
}
